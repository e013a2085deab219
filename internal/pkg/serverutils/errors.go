package serverutils

import "github.com/gofiber/fiber/v2"

// AppError carries an HTTP status alongside a user-safe message.
// Services return these; ErrorHandlerMiddleware maps them onto the response envelope.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: fiber.StatusUnauthorized, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: fiber.StatusForbidden, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func NewGoneError(message string) *AppError {
	return &AppError{Code: fiber.StatusGone, Message: message}
}

// NewStoreError hides backing-store details behind a generic message.
func NewStoreError() *AppError {
	return &AppError{Code: fiber.StatusInternalServerError, Message: "Something went wrong, please try again"}
}

// NewUpstreamError covers third-party API failures (LLM, live context providers).
func NewUpstreamError() *AppError {
	return &AppError{Code: fiber.StatusBadGateway, Message: "Upstream service unavailable, please try again"}
}
