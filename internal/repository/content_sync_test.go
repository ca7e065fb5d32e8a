package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/universe-repo/internal/model"
)

func stored(titles ...string) []model.Content {
	repoID := uuid.New()
	out := make([]model.Content, 0, len(titles))
	for _, t := range titles {
		out = append(out, model.Content{ID: uuid.New(), Title: t, Value: "stored " + t, RepositoryID: repoID})
	}
	return out
}

func items(titles ...string) []model.ContentItem {
	out := make([]model.ContentItem, 0, len(titles))
	for _, t := range titles {
		out = append(out, model.ContentItem{Title: t, Value: "new " + t})
	}
	return out
}

// applyPlan simulates the store: drop deleted rows, append inserted ones.
func applyPlan(current []model.Content, p ContentSyncPlan) []model.Content {
	gone := map[uuid.UUID]bool{}
	for _, d := range p.Deletes {
		gone[d.ID] = true
	}
	var out []model.Content
	for _, c := range current {
		if !gone[c.ID] {
			out = append(out, c)
		}
	}
	for _, it := range p.Inserts {
		out = append(out, model.Content{ID: uuid.New(), Title: it.Title, Value: it.Value})
	}
	return out
}

func titleSet(cs []model.Content) map[string]bool {
	m := map[string]bool{}
	for _, c := range cs {
		m[c.Title] = true
	}
	return m
}

func TestPlanContentSync_InsertsAndDeletes(t *testing.T) {
	current := stored("intro", "notes")
	target := []model.ContentItem{{Title: "intro", Value: "changed"}, {Title: "todo", Value: "x"}}

	p := PlanContentSync(current, target)

	assert.Equal(t, []string{"todo"}, p.InsertedTitles())
	assert.Equal(t, []string{"notes"}, p.DeletedTitles())
	assert.Equal(t, "x", p.Inserts[0].Value)
}

func TestPlanContentSync_ExistingTitleKeepsStoredValue(t *testing.T) {
	current := stored("intro")
	p := PlanContentSync(current, []model.ContentItem{{Title: "intro", Value: "something else"}})

	assert.True(t, p.Empty())
	after := applyPlan(current, p)
	assert.Equal(t, "stored intro", after[0].Value)
}

func TestPlanContentSync_EmptyTargetDeletesEverything(t *testing.T) {
	current := stored("a", "b", "c")
	p := PlanContentSync(current, nil)

	assert.Empty(t, p.Inserts)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, p.DeletedTitles())
}

func TestPlanContentSync_EmptyCurrentInsertsEverything(t *testing.T) {
	p := PlanContentSync(nil, items("a", "b"))

	assert.Equal(t, []string{"a", "b"}, p.InsertedTitles())
	assert.Empty(t, p.Deletes)
}

func TestPlanContentSync_DuplicateTargetTitleInsertedOnce(t *testing.T) {
	target := []model.ContentItem{{Title: "a", Value: "first"}, {Title: "a", Value: "second"}}
	p := PlanContentSync(nil, target)

	assert.Len(t, p.Inserts, 1)
	assert.Equal(t, "first", p.Inserts[0].Value)
}

func TestPlanContentSync_TitlesAreExact(t *testing.T) {
	p := PlanContentSync(stored("Intro"), items("intro"))

	assert.Equal(t, []string{"intro"}, p.InsertedTitles())
	assert.Equal(t, []string{"Intro"}, p.DeletedTitles())
}

func TestPlanContentSync_ResultTitlesEqualTargetTitles(t *testing.T) {
	cases := []struct {
		current []string
		target  []string
	}{
		{nil, nil},
		{[]string{"a"}, []string{"a"}},
		{[]string{"a", "b"}, []string{"b", "c", "d"}},
		{[]string{"x", "y", "z"}, []string{"q"}},
		{nil, []string{"a", "a", "b"}},
	}
	for _, tc := range cases {
		current := stored(tc.current...)
		after := applyPlan(current, PlanContentSync(current, items(tc.target...)))
		want := map[string]bool{}
		for _, ti := range tc.target {
			want[ti] = true
		}
		assert.Equal(t, want, titleSet(after), "current=%v target=%v", tc.current, tc.target)
	}
}

func TestPlanContentSync_SecondRunIsNoop(t *testing.T) {
	current := stored("intro", "notes")
	target := items("intro", "todo")

	after := applyPlan(current, PlanContentSync(current, target))
	second := PlanContentSync(after, target)

	assert.True(t, second.Empty())
}
