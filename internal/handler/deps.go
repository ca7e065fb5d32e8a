package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/iliyamo/universe-repo/internal/auth"
	"github.com/iliyamo/universe-repo/internal/model"
	"github.com/iliyamo/universe-repo/internal/queue"
	"github.com/iliyamo/universe-repo/internal/repository"
)

// UserStore is the subset of repository.UserRepo used by the handlers.
type UserStore interface {
	Register(ctx context.Context, in model.UserRegistration) (model.UserView, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.UserView, error)
	GetMe(ctx context.Context, requesterID uuid.UUID) (model.UserView, error)
	Update(ctx context.Context, in model.UserUpdate) (model.UserView, error)
	Disable(ctx context.Context, id uuid.UUID) error
	Authenticate(ctx context.Context, c model.Credentials) (model.User, error)
}

// RepositoryStore is the subset of repository.RepositoryRepo used by the
// handlers.
type RepositoryStore interface {
	GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.RepositoryView, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.RepositoryView, error)
	SearchByName(ctx context.Context, fragment string) ([]model.RepositoryView, error)
	Register(ctx context.Context, ownerID uuid.UUID, in model.RepositoryRegistration) (model.RepositoryView, error)
	Update(ctx context.Context, in model.RepositoryUpdate) (model.RepositoryView, error)
	ReconcileContents(ctx context.Context, in model.ContentSync) (model.RepositoryView, repository.ContentSyncPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenIssuer mints the login response for an authenticated user.
type TokenIssuer interface {
	Issue(user model.User) (auth.LoginResponse, error)
}

// RequesterResolver turns an Authorization header into the caller's id.
type RequesterResolver interface {
	RequesterID(header string) (string, error)
}

// EventPublisher sends activity events; failures never reach the client.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.RepositoryEvent) error
}

// SearchInvalidator drops cached search responses after a repository write.
type SearchInvalidator interface {
	Invalidate(ctx context.Context) error
}

var (
	_ UserStore         = (*repository.UserRepo)(nil)
	_ RepositoryStore   = (*repository.RepositoryRepo)(nil)
	_ TokenIssuer       = (*auth.Codec)(nil)
	_ RequesterResolver = (*auth.Resolver)(nil)
)
