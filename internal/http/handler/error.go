package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"marketplace/internal/http/middleware"
	"marketplace/internal/repository"
	"marketplace/internal/service"
)

// errorPayload is the body of every non-2xx response.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// apiError is a response status paired with the code and safe message sent
// to clients.
type apiError struct {
	status  int
	code    string
	message string
}

var (
	errInternal = apiError{fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"}

	// Matched with errors.Is in order.
	serviceErrors = []struct {
		target error
		apiError
	}{
		{service.ErrNotFound, apiError{fiber.StatusNotFound, "NOT_FOUND", "resource not found"}},
		{service.ErrInvalidInput, apiError{fiber.StatusBadRequest, "INVALID_INPUT", "invalid input"}},
		{service.ErrInvalidQuantity, apiError{fiber.StatusBadRequest, "INVALID_QUANTITY", "quantity must be positive"}},
		{service.ErrEmptyOrder, apiError{fiber.StatusBadRequest, "EMPTY_ORDER", "order has no items"}},
		{service.ErrOutOfStock, apiError{fiber.StatusConflict, "OUT_OF_STOCK", "insufficient stock"}},
		{service.ErrInvalidOrderState, apiError{fiber.StatusConflict, "INVALID_ORDER_STATE", "order can no longer be changed"}},
		{repository.ErrConcurrencyConflict, apiError{fiber.StatusConflict, "CONFLICT", "resource was modified concurrently"}},
	}

	routingErrors = map[int]apiError{
		fiber.StatusBadRequest:       {fiber.StatusBadRequest, "BAD_REQUEST", "bad request"},
		fiber.StatusNotFound:         {fiber.StatusNotFound, "NOT_FOUND", "resource not found"},
		fiber.StatusMethodNotAllowed: {fiber.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed"},
	}
)

func requestIDFromCtx(c *fiber.Ctx) string {
	rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	return rid
}

// writeError sends the standard error body. message must never carry
// internal error text.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

func (e apiError) write(c *fiber.Ctx) error {
	return writeError(c, e.status, e.code, e.message)
}

// classify resolves the response for err. Service and repository sentinels
// are found through any wrapping; fiber errors keep their own status.
func classify(err error) apiError {
	for _, se := range serviceErrors {
		if errors.Is(err, se.target) {
			return se.apiError
		}
	}

	var fe *fiber.Error
	if !errors.As(err, &fe) {
		return errInternal
	}
	if known, ok := routingErrors[fe.Code]; ok {
		return known
	}
	return apiError{fe.Code, errInternal.code, errInternal.message}
}

func writeServiceError(c *fiber.Ctx, err error) error {
	return classify(err).write(c)
}

// ErrorHandler is the app-wide fiber error handler.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return classify(err).write(c)
	}
}
