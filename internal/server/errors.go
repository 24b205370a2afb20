package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/portfolio-builder/internal/editor"
	"github.com/jonathan/portfolio-builder/internal/schemas"
	"github.com/jonathan/portfolio-builder/internal/services"
)

// ErrSessionNotFound indicates the session id is unknown or expired
type ErrSessionNotFound struct {
	SessionID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		editErr       *editor.EditError
		sessionErr    *ErrSessionNotFound
		notFoundErr   *services.NotFoundError
		schemaErr     *schemas.ValidationError
		fieldErrs     validator.ValidationErrors
		upstreamErr   *services.HTTPError
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &validationErr), errors.As(err, &editErr):
		return http.StatusBadRequest
	case errors.Is(err, editor.ErrBusy), errors.Is(err, editor.ErrTemplateNotLoaded):
		return http.StatusConflict
	case errors.As(err, &sessionErr), errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &schemaErr), errors.As(err, &fieldErrs):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
