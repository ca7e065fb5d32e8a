package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/universe-repo/internal/model"
)

// UserHandler serves the /v1/users endpoints.
type UserHandler struct {
	Users    UserStore
	Identity RequesterResolver
	Log      *zap.Logger
}

func NewUserHandler(u UserStore, id RequesterResolver, log *zap.Logger) *UserHandler {
	return &UserHandler{Users: u, Identity: id, Log: log}
}

// Register handles POST /v1/users. It is open to anonymous callers.
func (h *UserHandler) Register(c echo.Context) error {
	var req model.UserRegistration
	if err := bindValid(c, &req); err != nil {
		return fail(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := h.Users.Register(ctx, req)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// Me handles GET /v1/users/me.
func (h *UserHandler) Me(c echo.Context) error {
	me, err := requester(c, h.Identity)
	if err != nil {
		return fail(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := h.Users.GetMe(ctx, me)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Get handles GET /v1/users/:id. Any authenticated caller may read any
// active user's profile.
func (h *UserHandler) Get(c echo.Context) error {
	if _, err := requester(c, h.Identity); err != nil {
		return fail(c, h.Log, err)
	}
	id, err := pathID(c)
	if err != nil {
		return fail(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Update handles PUT /v1/users. The id in the body is replaced with the
// caller's own id, so users can only edit themselves.
func (h *UserHandler) Update(c echo.Context) error {
	me, err := requester(c, h.Identity)
	if err != nil {
		return fail(c, h.Log, err)
	}
	var req model.UserUpdate
	if err := c.Bind(&req); err != nil {
		return fail(c, h.Log, errInvalidBody)
	}
	req.ID = me
	if err := validated(req); err != nil {
		return fail(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := h.Users.Update(ctx, req)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Disable handles DELETE /v1/users/me by deactivating the caller's account.
func (h *UserHandler) Disable(c echo.Context) error {
	me, err := requester(c, h.Identity)
	if err != nil {
		return fail(c, h.Log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.Users.Disable(ctx, me); err != nil {
		return fail(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
