package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/universe-repo/internal/model"
	"github.com/iliyamo/universe-repo/internal/queue"
)

// RepositoryHandler serves the /v1/repositories endpoints. Every route
// requires a bearer token; the requester id comes from its sid claim.
type RepositoryHandler struct {
	Repos       RepositoryStore
	Identity    RequesterResolver
	Events      EventPublisher
	SearchCache SearchInvalidator
	Log         *zap.Logger
}

func NewRepositoryHandler(r RepositoryStore, id RequesterResolver, ev EventPublisher, search SearchInvalidator, log *zap.Logger) *RepositoryHandler {
	return &RepositoryHandler{Repos: r, Identity: id, Events: ev, SearchCache: search, Log: log}
}

// ListOwned handles GET /v1/repositories.
func (h *RepositoryHandler) ListOwned(c echo.Context) error {
	me, err := requester(c, h.Identity)
	if err != nil {
		return fail(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	views, err := h.Repos.GetOwned(ctx, me)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, views)
}

// Get handles GET /v1/repositories/:id. Visibility and ownership are not
// checked; any authenticated caller can fetch any repository by id.
func (h *RepositoryHandler) Get(c echo.Context) error {
	if _, err := requester(c, h.Identity); err != nil {
		return fail(c, h.Log, err)
	}
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := h.Repos.GetByID(ctx, id)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Search handles GET /v1/repositories/search?name=. Only PUBLIC
// repositories are returned; an empty name matches all of them.
func (h *RepositoryHandler) Search(c echo.Context) error {
	if _, err := requester(c, h.Identity); err != nil {
		return fail(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	views, err := h.Repos.SearchByName(ctx, c.QueryParam("name"))
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, views)
}

// Register handles POST /v1/repositories; the caller becomes the owner.
func (h *RepositoryHandler) Register(c echo.Context) error {
	me, err := requester(c, h.Identity)
	if err != nil {
		return fail(c, h.Log, err)
	}
	var req model.RepositoryRegistration
	if err := bindValid(c, &req); err != nil {
		return fail(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := h.Repos.Register(ctx, me, req)
	if err != nil {
		return fail(c, h.Log, err)
	}
	h.invalidateSearch(ctx)

	ev := queue.NewRepositoryEvent(queue.EventRepositoryRegistered, view.ID.String(), me.String())
	ev.Name = view.Name
	h.emit(ctx, ev)
	return c.JSON(http.StatusCreated, view)
}

// Update handles PUT /v1/repositories. Contents are not touched.
func (h *RepositoryHandler) Update(c echo.Context) error {
	if _, err := requester(c, h.Identity); err != nil {
		return fail(c, h.Log, err)
	}
	var req model.RepositoryUpdate
	if err := bindValid(c, &req); err != nil {
		return fail(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := h.Repos.Update(ctx, req)
	if err != nil {
		return fail(c, h.Log, err)
	}
	h.invalidateSearch(ctx)
	return c.JSON(http.StatusOK, view)
}

// SyncContents handles PUT /v1/repositories/content. The body's contents
// become the repository's full content list by title.
func (h *RepositoryHandler) SyncContents(c echo.Context) error {
	me, err := requester(c, h.Identity)
	if err != nil {
		return fail(c, h.Log, err)
	}
	var req model.ContentSync
	if err := bindValid(c, &req); err != nil {
		return fail(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	view, plan, err := h.Repos.ReconcileContents(ctx, req)
	if err != nil {
		return fail(c, h.Log, err)
	}

	if !plan.Empty() {
		h.invalidateSearch(ctx)
		ev := queue.NewRepositoryEvent(queue.EventContentReconciled, view.ID.String(), me.String())
		ev.Name = view.Name
		ev.Inserted = plan.InsertedTitles()
		ev.Deleted = plan.DeletedTitles()
		h.emit(ctx, ev)
	}
	return c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /v1/repositories/:id.
func (h *RepositoryHandler) Delete(c echo.Context) error {
	me, err := requester(c, h.Identity)
	if err != nil {
		return fail(c, h.Log, err)
	}
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Repos.Delete(ctx, id); err != nil {
		return fail(c, h.Log, err)
	}
	h.invalidateSearch(ctx)
	h.emit(ctx, queue.NewRepositoryEvent(queue.EventRepositoryDeleted, id.String(), me.String()))
	return c.NoContent(http.StatusNoContent)
}

// emit publishes ev; a failure is logged and otherwise ignored.
func (h *RepositoryHandler) emit(ctx context.Context, ev queue.RepositoryEvent) {
	if h.Events == nil {
		return
	}
	if err := h.Events.Publish(ctx, ev); err != nil {
		h.Log.Warn("activity event not published",
			zap.Error(err),
			zap.String("type", string(ev.Type)),
			zap.String("repository_id", ev.RepositoryID),
		)
	}
}

// invalidateSearch runs after every committed write. A failure leaves stale
// search pages until their TTL runs out.
func (h *RepositoryHandler) invalidateSearch(ctx context.Context) {
	if h.SearchCache == nil {
		return
	}
	if err := h.SearchCache.Invalidate(ctx); err != nil {
		h.Log.Warn("search cache not invalidated", zap.Error(err))
	}
}
