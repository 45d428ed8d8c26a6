package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	kindValidation  = "validation"
	kindNotFound    = "not_found"
	kindInvalidCode = "invalid_code"
	kindConflict    = "conflict"
	kindStore       = "store"
)

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeError(c echo.Context, status int, kind, message string) error {
	return c.JSON(status, Error{
		Code:    status,
		Kind:    kind,
		Message: message,
	})
}

// classify maps a use case error to a status code and an error kind.
// Anything unrecognised is treated as a storage failure.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, order.ErrInvalidDeliveryCode):
		return http.StatusBadRequest, kindInvalidCode
	case errors.Is(err, product.ErrProductIsNotAvailable),
		errors.Is(err, order.ErrLineAlreadyCompleted),
		errors.Is(err, order.ErrDeliveryCodeSuperseded):
		return http.StatusConflict, kindConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, kindNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, kindValidation
	default:
		return http.StatusInternalServerError, kindStore
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	status, kind := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		message = "internal error"
	}
	return writeError(c, status, kind, message)
}

// failVerification keeps the not found answer of verify-otp at 400: a seller
// presenting a code for a product nobody bought gets the same class of answer
// as a wrong code.
func (s *Server) failVerification(c echo.Context, err error) error {
	if errors.Is(err, commands.ErrOrderNotFound) || errors.Is(err, order.ErrLineNotFound) {
		return writeError(c, http.StatusBadRequest, kindNotFound, err.Error())
	}
	return s.fail(c, err)
}
