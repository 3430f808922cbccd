package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeUpstreamGateway = "UPSTREAM_GATEWAY_ERROR"
	CodeStorage         = "STORAGE_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
	// Status is an optional HTTP status override, used when an upstream
	// response code should be forwarded verbatim.
	Status int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// NewUpstreamGatewayError wraps a non-success payment gateway response. The
// upstream status code is preserved so handlers can forward it.
func NewUpstreamGatewayError(status int, err error) *AppError {
	return &AppError{
		Code:    CodeUpstreamGateway,
		Message: "Payment gateway request failed",
		Err:     err,
		Status:  status,
	}
}

// NewStorageError wraps a record-store failure.
func NewStorageError(err error) *AppError {
	return &AppError{
		Code:    CodeStorage,
		Message: "Storage operation failed",
		Err:     err,
	}
}

// StatusForError maps an error to the HTTP status a user-facing handler
// should respond with.
func StatusForError(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Status != 0 {
			return appErr.Status
		}
		switch appErr.Code {
		case CodeValidation:
			return fiber.StatusBadRequest
		case CodeNotFound:
			return fiber.StatusNotFound
		case CodeUnauthorized:
			return fiber.StatusUnauthorized
		}
	}
	return fiber.StatusInternalServerError
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
