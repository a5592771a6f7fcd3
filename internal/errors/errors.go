package errors

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

// Taxonomy roots. Specific errors wrap one of these so callers can match by category.
var (
	// ErrValidation is returned when submitted input fails validation.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized is returned when an action requires a signed-in user.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden is returned when the signed-in user does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a resource does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write collides with existing state.
	ErrConflict = errors.New("conflict")
)

var (
	// ErrBidTooLow is returned when a bid does not beat the current maximum or the starting bid.
	ErrBidTooLow = errors.New("bid amount too low")
	// ErrListingClosed is returned when acting on an auction that has been closed.
	ErrListingClosed = errors.New("listing is closed")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username and/or password")

	ErrListingNotFound  = wrap(ErrNotFound, "listing not found")
	ErrCategoryNotFound = wrap(ErrNotFound, "category not found")
	ErrUserNotFound     = wrap(ErrNotFound, "user not found")
	ErrPageNotFound     = wrap(ErrNotFound, "invalid page")

	ErrUsernameTaken = wrap(ErrConflict, "username already taken")
	ErrSlugTaken     = wrap(ErrConflict, "such category already exists")
	ErrSlugReserved  = wrap(ErrConflict, "slug may not be 'create'")

	// ErrPasswordMismatch is the registration rule that password and confirmation agree.
	ErrPasswordMismatch = wrap(ErrValidation, "passwords must match")
)

type taggedError struct {
	parent error
	msg    string
}

func wrap(parent error, msg string) error { return &taggedError{parent: parent, msg: msg} }

func (e *taggedError) Error() string { return e.msg }
func (e *taggedError) Unwrap() error { return e.parent }

// ValidationError carries per-field messages for inline re-display.
// Reason optionally names the specific rule that failed.
type ValidationError struct {
	Fields map[string]string
	Reason error
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Field returns a ValidationError with a single field message.
func Field(name, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{name: message}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	if e.Reason != nil {
		return []error{ErrValidation, e.Reason}
	}
	return []error{ErrValidation}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     map[string]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		httpErr := NewHTTPError(http.StatusUnprocessableEntity, ErrValidation.Error(), "VALIDATION_ERROR")
		httpErr.Fields = verr.Fields
		return httpErr
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrBidTooLow):
		return NewHTTPError(http.StatusConflict, ErrBidTooLow.Error(), "BID_TOO_LOW")
	case errors.Is(err, ErrListingClosed):
		return NewHTTPError(http.StatusConflict, ErrListingClosed.Error(), "LISTING_CLOSED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrListingNotFound):
		return NewHTTPError(http.StatusNotFound, ErrListingNotFound.Error(), "LISTING_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, ErrCategoryNotFound.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrPageNotFound):
		return NewHTTPError(http.StatusNotFound, ErrPageNotFound.Error(), "PAGE_NOT_FOUND")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, ErrUsernameTaken.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrSlugTaken), errors.Is(err, ErrSlugReserved):
		return NewHTTPError(http.StatusConflict, err.Error(), "SLUG_CONFLICT")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, ErrConflict.Error(), "CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
