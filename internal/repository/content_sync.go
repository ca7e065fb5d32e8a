package repository

import "github.com/iliyamo/universe-repo/internal/model"

// ContentSyncPlan is the set of writes needed to make a repository's
// contents match a target list.
type ContentSyncPlan struct {
	Inserts []model.ContentItem // target items whose title is not stored yet
	Deletes []model.Content     // stored rows whose title is not in the target
}

// Empty reports whether applying the plan would write nothing.
func (p ContentSyncPlan) Empty() bool { return len(p.Inserts) == 0 && len(p.Deletes) == 0 }

// InsertedTitles lists the titles the plan inserts, in target order.
func (p ContentSyncPlan) InsertedTitles() []string {
	out := make([]string, 0, len(p.Inserts))
	for _, it := range p.Inserts {
		out = append(out, it.Title)
	}
	return out
}

// DeletedTitles lists the titles of the rows the plan deletes.
func (p ContentSyncPlan) DeletedTitles() []string {
	out := make([]string, 0, len(p.Deletes))
	for _, c := range p.Deletes {
		out = append(out, c.Title)
	}
	return out
}

// PlanContentSync diffs current against target using exact title equality.
//
// A target title that already exists is left alone, even when the target
// carries a different value: reconciliation never updates a value. A title
// repeated in target is inserted once, with the first occurrence's value.
// Every stored row whose title is absent from target is deleted.
func PlanContentSync(current []model.Content, target []model.ContentItem) ContentSyncPlan {
	stored := make(map[string]struct{}, len(current))
	for _, c := range current {
		stored[c.Title] = struct{}{}
	}
	wanted := make(map[string]struct{}, len(target))

	var plan ContentSyncPlan
	for _, it := range target {
		if _, dup := wanted[it.Title]; dup {
			continue
		}
		wanted[it.Title] = struct{}{}
		if _, ok := stored[it.Title]; !ok {
			plan.Inserts = append(plan.Inserts, it)
		}
	}
	for _, c := range current {
		if _, ok := wanted[c.Title]; !ok {
			plan.Deletes = append(plan.Deletes, c)
		}
	}
	return plan
}
