package http

import (
	"errors"
	"fmt"
	"net/http"

	"tokenorders/internal/core/application/usecases/commands"
	"tokenorders/internal/core/domain/model/account"
	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/generated/servers"
	"tokenorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// retryAfterSeconds is advertised on Busy responses.
const retryAfterSeconds = "1"

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrStorageFailure):
		return http.StatusInternalServerError
	case errors.Is(err, commands.ErrIdempotencyKeyReused):
		return http.StatusUnprocessableEntity
	case errors.Is(err, account.ErrInsufficientBalance),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderAlreadyCompleted):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// problem writes err as an Error body. Internal failures are not echoed back.
func problem(c echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusServiceUnavailable {
		c.Response().Header().Set("Retry-After", retryAfterSeconds)
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}
	return writeError(c, status, message)
}

func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, servers.Error{Code: status, Message: message})
}

// errorHandler renders echo errors, such as unknown routes and parameter
// binding failures, in the same Error shape.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = writeError(c, status, message)
}
