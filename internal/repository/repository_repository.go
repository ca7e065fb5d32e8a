package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/universe-repo/internal/dbx"
	"github.com/iliyamo/universe-repo/internal/model"
)

// RepositoryRepo stores repositories and their contents.
type RepositoryRepo struct {
	DB    *sql.DB
	now   func() time.Time
	newID func() uuid.UUID
}

func NewRepositoryRepo(db *sql.DB) *RepositoryRepo {
	return &RepositoryRepo{DB: db, now: time.Now, newID: uuid.New}
}

const repositoryColumns = "id,name,description,type,created_at,owner_id"

// GetOwned returns every repository owned by ownerID, oldest first. An
// unknown owner yields an empty slice.
func (r *RepositoryRepo) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.RepositoryView, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+repositoryColumns+" FROM repositories WHERE owner_id=? ORDER BY created_at, id",
		ownerID)
	if err != nil {
		return nil, err
	}
	repos, err := scanRepositories(rows)
	if err != nil {
		return nil, err
	}
	return r.expand(ctx, r.DB, repos)
}

// GetByID returns one repository with its contents regardless of owner or
// visibility.
func (r *RepositoryRepo) GetByID(ctx context.Context, id uuid.UUID) (model.RepositoryView, error) {
	return loadRepositoryView(ctx, r.DB, id)
}

// SearchByName returns PUBLIC repositories whose name contains fragment.
// Matching is a plain substring match; LIKE wildcards in fragment are
// escaped. Case sensitivity follows the column collation.
func (r *RepositoryRepo) SearchByName(ctx context.Context, fragment string) ([]model.RepositoryView, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+repositoryColumns+" FROM repositories WHERE type=? AND name LIKE ? ORDER BY name, id",
		model.RepositoryPublic, "%"+escapeLike(fragment)+"%")
	if err != nil {
		return nil, err
	}
	repos, err := scanRepositories(rows)
	if err != nil {
		return nil, err
	}
	return r.expand(ctx, r.DB, repos)
}

// Register creates a repository owned by ownerID together with its initial
// contents, all in one transaction.
func (r *RepositoryRepo) Register(ctx context.Context, ownerID uuid.UUID, in model.RepositoryRegistration) (model.RepositoryView, error) {
	var view model.RepositoryView
	err := dbx.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var one int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=? LIMIT 1", ownerID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOwnerNotFound
		}
		if err != nil {
			return err
		}

		id := r.newID()
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO repositories ("+repositoryColumns+") VALUES (?,?,?,?,?,?)",
			id, in.Name, in.Description, in.Type, r.now().UTC(), ownerID); err != nil {
			return err
		}
		if err := r.insertContents(ctx, tx, id, in.Contents); err != nil {
			return err
		}
		view, err = loadRepositoryView(ctx, tx, id)
		return err
	})
	return view, err
}

// Update overwrites name, description and type. Contents are untouched.
func (r *RepositoryRepo) Update(ctx context.Context, in model.RepositoryUpdate) (model.RepositoryView, error) {
	var view model.RepositoryView
	err := dbx.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockRepository(ctx, tx, in.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE repositories SET name=?, description=?, type=? WHERE id=?",
			in.Name, in.Description, in.Type, in.ID); err != nil {
			return err
		}
		var err error
		view, err = loadRepositoryView(ctx, tx, in.ID)
		return err
	})
	return view, err
}

// ReconcileContents makes the repository's contents match the target list
// by title: missing titles are inserted, titles absent from the target are
// deleted, existing titles keep their stored value. The repository row is
// locked for the duration so concurrent reconciles serialize, and the
// contents are read at READ COMMITTED so the second of two racing reconciles
// plans against the rows the first one wrote. The applied
// plan is returned alongside the resulting view.
func (r *RepositoryRepo) ReconcileContents(ctx context.Context, in model.ContentSync) (model.RepositoryView, ContentSyncPlan, error) {
	var (
		view model.RepositoryView
		plan ContentSyncPlan
	)
	err := dbx.WithTx(ctx, r.DB, dbx.ReadCommitted, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockRepository(ctx, tx, in.ID); err != nil {
			return err
		}
		current, err := listContents(ctx, tx, in.ID)
		if err != nil {
			return err
		}
		plan = PlanContentSync(current, in.Contents)
		if err := r.insertContents(ctx, tx, in.ID, plan.Inserts); err != nil {
			return err
		}
		if err := deleteContents(ctx, tx, plan.Deletes); err != nil {
			return err
		}
		view, err = loadRepositoryView(ctx, tx, in.ID)
		return err
	})
	return view, plan, err
}

// Delete removes the repository and all of its contents.
func (r *RepositoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return dbx.WithTx(ctx, r.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lockRepository(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM contents WHERE repository_id=?", id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM repositories WHERE id=?", id)
		return err
	})
}

func (r *RepositoryRepo) insertContents(ctx context.Context, q dbx.DBTX, repoID uuid.UUID, items []model.ContentItem) error {
	if len(items) == 0 {
		return nil
	}
	// one multi-row insert per call
	var sb strings.Builder
	sb.WriteString("INSERT INTO contents (id,title,value,repository_id) VALUES ")
	args := make([]any, 0, len(items)*4)
	for i, it := range items {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?,?,?,?)")
		args = append(args, r.newID(), it.Title, it.Value, repoID)
	}
	_, err := q.ExecContext(ctx, sb.String(), args...)
	return err
}

func (r *RepositoryRepo) expand(ctx context.Context, q dbx.DBTX, repos []model.Repository) ([]model.RepositoryView, error) {
	out := make([]model.RepositoryView, 0, len(repos))
	for _, repo := range repos {
		contents, err := listContents(ctx, q, repo.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toView(repo, contents))
	}
	return out, nil
}

func deleteContents(ctx context.Context, q dbx.DBTX, rows []model.Content) error {
	if len(rows) == 0 {
		return nil
	}
	ph := make([]string, len(rows))
	args := make([]any, len(rows))
	for i, c := range rows {
		ph[i] = "?"
		args[i] = c.ID
	}
	_, err := q.ExecContext(ctx, "DELETE FROM contents WHERE id IN ("+strings.Join(ph, ",")+")", args...)
	return err
}

// lockRepository takes a row lock on the repository, or reports it missing.
func lockRepository(ctx context.Context, q dbx.DBTX, id uuid.UUID) error {
	var got uuid.UUID
	err := q.QueryRowContext(ctx, "SELECT id FROM repositories WHERE id=? FOR UPDATE", id).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRepositoryNotFound
	}
	return err
}

func loadRepositoryView(ctx context.Context, q dbx.DBTX, id uuid.UUID) (model.RepositoryView, error) {
	var repo model.Repository
	err := q.QueryRowContext(ctx,
		"SELECT "+repositoryColumns+" FROM repositories WHERE id=? LIMIT 1", id).
		Scan(&repo.ID, &repo.Name, &repo.Description, &repo.Type, &repo.CreatedAt, &repo.OwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RepositoryView{}, ErrRepositoryNotFound
	}
	if err != nil {
		return model.RepositoryView{}, err
	}
	contents, err := listContents(ctx, q, id)
	if err != nil {
		return model.RepositoryView{}, err
	}
	return toView(repo, contents), nil
}

func listContents(ctx context.Context, q dbx.DBTX, repoID uuid.UUID) ([]model.Content, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id,title,value,repository_id FROM contents WHERE repository_id=? ORDER BY title, id", repoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Content
	for rows.Next() {
		var c model.Content
		if err := rows.Scan(&c.ID, &c.Title, &c.Value, &c.RepositoryID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanRepositories(rows *sql.Rows) ([]model.Repository, error) {
	defer rows.Close()
	var out []model.Repository
	for rows.Next() {
		var repo model.Repository
		if err := rows.Scan(&repo.ID, &repo.Name, &repo.Description, &repo.Type, &repo.CreatedAt, &repo.OwnerID); err != nil {
			return nil, err
		}
		out = append(out, repo)
	}
	return out, rows.Err()
}

func toView(repo model.Repository, contents []model.Content) model.RepositoryView {
	v := model.RepositoryView{
		ID:          repo.ID,
		Name:        repo.Name,
		Description: repo.Description,
		Type:        repo.Type,
		CreatedAt:   repo.CreatedAt,
		OwnerID:     repo.OwnerID,
		Contents:    make([]model.ContentView, 0, len(contents)),
	}
	for _, c := range contents {
		v.Contents = append(v.Contents, model.ContentView{ID: c.ID, Title: c.Title, Value: c.Value})
	}
	return v
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
