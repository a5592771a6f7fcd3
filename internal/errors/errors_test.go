package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", Field("title", "is required"), http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"wrapped bid too low", fmt.Errorf("place bid: %w", ErrBidTooLow), http.StatusConflict, "BID_TOO_LOW"},
		{"listing closed", ErrListingClosed, http.StatusConflict, "LISTING_CLOSED"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"forbidden", fmt.Errorf("close listing 4: %w", ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
		{"listing not found", ErrListingNotFound, http.StatusNotFound, "LISTING_NOT_FOUND"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"page out of range", fmt.Errorf("list: %w", ErrPageNotFound), http.StatusNotFound, "PAGE_NOT_FOUND"},
		{"username taken", ErrUsernameTaken, http.StatusConflict, "USERNAME_TAKEN"},
		{"slug reserved", ErrSlugReserved, http.StatusConflict, "SLUG_CONFLICT"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestTaxonomyRoots(t *testing.T) {
	assert.ErrorIs(t, ErrListingNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrSlugTaken, ErrConflict)
	assert.ErrorIs(t, Field("amount", "must be a number"), ErrValidation)
	assert.NotErrorIs(t, ErrBidTooLow, ErrValidation)

	mismatch := &ValidationError{Fields: map[string]string{"confirmation": "Passwords must match."}, Reason: ErrPasswordMismatch}
	assert.ErrorIs(t, mismatch, ErrPasswordMismatch)
	assert.ErrorIs(t, mismatch, ErrValidation)
	assert.Equal(t, http.StatusUnprocessableEntity, MapErrorToHTTP(mismatch).StatusCode)
}

func TestValidationError_Message(t *testing.T) {
	err := NewValidationError(map[string]string{"b": "two", "a": "one"})
	assert.Equal(t, "validation failed: a: one; b: two", err.Error())

	httpErr := MapErrorToHTTP(fmt.Errorf("wrapped: %w", err))
	assert.Equal(t, map[string]string{"a": "one", "b": "two"}, httpErr.ToErrorResponse().Fields)
}
