package api

import "fmt"

// ErrorType represents the category of an API error.
type ErrorType string

const (
	ErrorTypeServerError       ErrorType = "server_error"
	ErrorTypeInvalidRequest    ErrorType = "invalid_request"
	ErrorTypeNotFound          ErrorType = "not_found"
	ErrorTypeUnsupportedVendor ErrorType = "unsupported_vendor"
	ErrorTypeUnavailable       ErrorType = "unavailable"
)

// APIError is a categorized error. Only Message is exposed to clients; Type
// selects the HTTP status and Param names the offending request field.
type APIError struct {
	Type    ErrorType `json:"-"`
	Param   string    `json:"-"`
	Message string    `json:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Type, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// NewInvalidRequestError creates an APIError for malformed client input.
func NewInvalidRequestError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Param:   param,
		Message: message,
	}
}

// NewNotFoundError creates an APIError for unknown providers or instruction sets.
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewUnsupportedVendorError creates an APIError for a vendor tag with no
// registered adapter.
func NewUnsupportedVendorError(vendor string) *APIError {
	return &APIError{
		Type:    ErrorTypeUnsupportedVendor,
		Param:   "provider",
		Message: fmt.Sprintf("Unsupported provider: %s", vendor),
	}
}

// NewUnavailableError creates an APIError for a catalog that could not be loaded.
func NewUnavailableError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeUnavailable,
		Message: message,
	}
}

// NewServerError creates an APIError for internal server errors.
func NewServerError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeServerError,
		Message: message,
	}
}
