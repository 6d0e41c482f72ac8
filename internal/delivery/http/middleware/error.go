package middleware

import (
	"errors"
	"log"

	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/infrastructure/upstream"
	"github.com/DanielNebe/student-advisor-matcher-frontend/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	// Redirect carries the screen the caller should land on instead, e.g.
	// the login path after a 401 cleared the session.
	Redirect string
	Cause    error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

func NewRedirectError(statusCode int, message string, redirectPath string, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Redirect: redirectPath, Cause: cause}
}

// MapUpstreamError translates the backend client's taxonomy into transport
// responses. Unauthorized becomes a 401 pointing at the login screen;
// transient failures become a 502 flagged retryable so the UI always gets a
// terminal answer instead of a hung spinner.
func MapUpstreamError(err error, loginPath string) *AppError {
	if err == nil {
		return nil
	}

	var apiErr *upstream.APIError
	switch {
	case errors.Is(err, upstream.ErrUnauthorized):
		return NewRedirectError(fiber.StatusUnauthorized, response.MessageUnauthorized, loginPath, err)
	case errors.Is(err, upstream.ErrNotFound):
		return NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	case errors.As(err, &apiErr):
		return NewAppError(apiErr.Status, apiErr.Message, nil, err)
	case upstream.IsTransient(err):
		return &AppError{
			StatusCode: fiber.StatusBadGateway,
			Message:    response.MessageUpstreamUnavailable,
			Data:       map[string]any{"retryable": true},
			Cause:      err,
		}
	default:
		return NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("panic recovered | path=%s panic=%v", c.Path(), r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			status := appErr.StatusCode
			if status <= 0 {
				status = fiber.StatusInternalServerError
			}
			if status >= 500 && status != fiber.StatusBadGateway {
				// Internal detail never leaks; 502 is the one 5xx with
				// meaning to the client (retryable upstream outage).
				m.logger.Printf("request failed | path=%s status=%d err=%v", c.Path(), status, appErr)
				return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
			return response.WithRedirect(c, status, appErr.Message, appErr.Data, appErr.Redirect)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status := fiberErr.Code
			if status <= 0 || status >= 500 {
				return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
			return response.Error(c, status, fiberErr.Message, nil)
		}

		m.logger.Printf("unhandled error | path=%s err=%v", c.Path(), err)
		return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
	}
}
