package errors

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "validation"
	ErrorTypeAuthentication ErrorType = "authentication"
	ErrorTypeAuthorization  ErrorType = "authorization"
	ErrorTypeNotFound       ErrorType = "not_found"
	ErrorTypeConflict       ErrorType = "conflict"
	ErrorTypeInternal       ErrorType = "internal"
)

// FieldDetail describes a single invalid request field
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError represents a structured API error
type APIError struct {
	Type        ErrorType     `json:"type"`
	Code        string        `json:"code"`
	Message     string        `json:"message"`
	Fields      []FieldDetail `json:"fields,omitempty"`
	HTTPStatus  int           `json:"-"`
	InternalErr error         `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.InternalErr
}

// NewAPIError creates a new API error
func NewAPIError(errorType ErrorType, code, message string, httpStatus int) *APIError {
	return &APIError{
		Type:       errorType,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// ValidationError creates a validation error
func ValidationError(message string) *APIError {
	return NewAPIError(ErrorTypeValidation, "VALIDATION_ERROR", message, http.StatusBadRequest)
}

// ValidationErrorWithFields creates a validation error carrying field-level details
func ValidationErrorWithFields(message string, fields []FieldDetail) *APIError {
	err := ValidationError(message)
	err.Fields = fields
	return err
}

// AuthenticationError creates an authentication error
func AuthenticationError(message string) *APIError {
	if message == "" {
		message = "Authentication required"
	}
	return NewAPIError(ErrorTypeAuthentication, "AUTHENTICATION_ERROR", message, http.StatusUnauthorized)
}

// AuthorizationError creates an authorization error
func AuthorizationError(message string) *APIError {
	if message == "" {
		message = "Insufficient permissions"
	}
	return NewAPIError(ErrorTypeAuthorization, "AUTHORIZATION_ERROR", message, http.StatusForbidden)
}

// NotFoundError creates a not found error for the named resource
func NotFoundError(resource string) *APIError {
	return NewAPIError(ErrorTypeNotFound, "NOT_FOUND", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// ConflictError creates a conflict error
func ConflictError(message string) *APIError {
	return NewAPIError(ErrorTypeConflict, "CONFLICT", message, http.StatusConflict)
}

// InternalError creates an internal server error
func InternalError(message string) *APIError {
	return NewAPIError(ErrorTypeInternal, "INTERNAL_ERROR", message, http.StatusInternalServerError)
}

// InternalErrorWithCause creates an internal server error wrapping its cause
func InternalErrorWithCause(message string, cause error) *APIError {
	err := InternalError(message)
	err.InternalErr = cause
	return err
}

// IsAPIError checks if an error is an APIError
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// GetAPIError extracts an APIError from an error chain, or nil
func GetAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// HandleDatabaseError maps GORM errors onto the API taxonomy.
// Unique-constraint violations become conflicts so that concurrent
// duplicate inserts surface exactly one success and one 409.
func HandleDatabaseError(err error, resource string) *APIError {
	if err == nil {
		return nil
	}
	if apiErr := GetAPIError(err); apiErr != nil {
		return apiErr
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFoundError(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ConflictError(fmt.Sprintf("%s already exists", resource))
	default:
		return InternalErrorWithCause(fmt.Sprintf("database operation failed on %s", resource), err)
	}
}

// ErrorResponse represents the JSON structure for error responses
type ErrorResponse struct {
	Error *APIError `json:"error"`
}
