package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/universe-repo/internal/model"
)

// AuthHandler bundles dependencies for the login endpoint.
type AuthHandler struct {
	Users  UserStore
	Tokens TokenIssuer
	Log    *zap.Logger
}

func NewAuthHandler(u UserStore, t TokenIssuer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: u, Tokens: t, Log: log}
}

// Login verifies the credentials and returns a signed access token together
// with the stored refresh token and the access token's expiry.
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.Credentials
	if err := c.Bind(&req); err != nil {
		return fail(c, h.Log, errInvalidBody)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	// blank fields and bad passwords both surface as 401
	u, err := h.Users.Authenticate(ctx, req)
	if err != nil {
		return fail(c, h.Log, err)
	}
	resp, err := h.Tokens.Issue(u)
	if err != nil {
		return fail(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, resp)
}
