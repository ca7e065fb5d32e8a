package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/universe-repo/internal/common"
)

// requestTimeout bounds every store call made by a handler.
const requestTimeout = 5 * time.Second

var (
	errInvalidBody      = fmt.Errorf("invalid request body: %w", common.ErrValidation)
	errInvalidID        = fmt.Errorf("invalid id: %w", common.ErrValidation)
	errMalformedSubject = fmt.Errorf("identity claim is not a valid id: %w", common.ErrInvalidOperation)
)

// validatable is implemented by every request DTO in package model.
type validatable interface {
	Validate() error
}

func requestContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// bindValid binds the JSON body into dst and runs its Validate method.
func bindValid(c echo.Context, dst validatable) error {
	if err := c.Bind(dst); err != nil {
		return errInvalidBody
	}
	return validated(dst)
}

// validated runs v.Validate and tags a failure with common.ErrValidation.
func validated(v validatable) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	return nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

// requester resolves the caller from the raw Authorization header.
func requester(c echo.Context, r RequesterResolver) (uuid.UUID, error) {
	sid, err := r.RequesterID(c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(sid)
	if err != nil {
		return uuid.Nil, errMalformedSubject
	}
	return id, nil
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrInvalidOperation), errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error body. Unknown errors are logged and hidden
// behind a generic message.
func fail(c echo.Context, log *zap.Logger, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
		)
		return c.JSON(status, echo.Map{"error": "internal error"})
	}

	var fields validation.Errors
	if errors.As(err, &fields) {
		return c.JSON(status, echo.Map{"error": "validation failed", "fields": fields})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
