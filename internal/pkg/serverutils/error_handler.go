package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// HttpError carries a status code through the service layer up to the
// handler without losing the user-facing message.
type HttpError struct {
	Code    int
	Message string
}

func (e *HttpError) Error() string {
	return e.Message
}

func NewHttpError(code int, message string) *HttpError {
	return &HttpError{Code: code, Message: message}
}

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// standard envelope. Unknown errors become 500s with a generic message so
// internals never leak to clients.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var httpErr *HttpError
		if errors.As(err, &httpErr) {
			return ctx.Status(httpErr.Code).JSON(ErrorResponse(httpErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}
