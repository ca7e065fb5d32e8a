package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/universe-repo/internal/model"
	"github.com/iliyamo/universe-repo/internal/queue"
	"github.com/iliyamo/universe-repo/internal/repository"
)

type fakeUsers struct {
	register     func(model.UserRegistration) (model.UserView, error)
	getByID      func(uuid.UUID) (model.UserView, error)
	update       func(model.UserUpdate) (model.UserView, error)
	disable      func(uuid.UUID) error
	authenticate func(model.Credentials) (model.User, error)
}

func (f *fakeUsers) Register(_ context.Context, in model.UserRegistration) (model.UserView, error) {
	return f.register(in)
}
func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (model.UserView, error) {
	return f.getByID(id)
}
func (f *fakeUsers) GetMe(_ context.Context, id uuid.UUID) (model.UserView, error) {
	return f.getByID(id)
}
func (f *fakeUsers) Update(_ context.Context, in model.UserUpdate) (model.UserView, error) {
	return f.update(in)
}
func (f *fakeUsers) Disable(_ context.Context, id uuid.UUID) error { return f.disable(id) }
func (f *fakeUsers) Authenticate(_ context.Context, c model.Credentials) (model.User, error) {
	return f.authenticate(c)
}

type fakeRepos struct {
	getOwned  func(uuid.UUID) ([]model.RepositoryView, error)
	getByID   func(uuid.UUID) (model.RepositoryView, error)
	search    func(string) ([]model.RepositoryView, error)
	register  func(uuid.UUID, model.RepositoryRegistration) (model.RepositoryView, error)
	update    func(model.RepositoryUpdate) (model.RepositoryView, error)
	reconcile func(model.ContentSync) (model.RepositoryView, repository.ContentSyncPlan, error)
	delete    func(uuid.UUID) error
}

func (f *fakeRepos) GetOwned(_ context.Context, id uuid.UUID) ([]model.RepositoryView, error) {
	return f.getOwned(id)
}
func (f *fakeRepos) GetByID(_ context.Context, id uuid.UUID) (model.RepositoryView, error) {
	return f.getByID(id)
}
func (f *fakeRepos) SearchByName(_ context.Context, s string) ([]model.RepositoryView, error) {
	return f.search(s)
}
func (f *fakeRepos) Register(_ context.Context, owner uuid.UUID, in model.RepositoryRegistration) (model.RepositoryView, error) {
	return f.register(owner, in)
}
func (f *fakeRepos) Update(_ context.Context, in model.RepositoryUpdate) (model.RepositoryView, error) {
	return f.update(in)
}
func (f *fakeRepos) ReconcileContents(_ context.Context, in model.ContentSync) (model.RepositoryView, repository.ContentSyncPlan, error) {
	return f.reconcile(in)
}
func (f *fakeRepos) Delete(_ context.Context, id uuid.UUID) error { return f.delete(id) }

// fixedResolver returns the same identity for any header.
type fixedResolver struct {
	id  string
	err error
}

func (r fixedResolver) RequesterID(string) (string, error) { return r.id, r.err }

type recordingPublisher struct {
	events []queue.RepositoryEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.RepositoryEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

type countingInvalidator struct {
	calls int
	err   error
}

func (i *countingInvalidator) Invalidate(context.Context) error {
	i.calls++
	return i.err
}

// newContext builds an echo context for a JSON request. params are
// alternating name/value pairs for path parameters.
func newContext(method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(echo.HeaderAuthorization, "Bearer test")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

