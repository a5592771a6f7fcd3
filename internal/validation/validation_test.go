package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auctions/internal/errors"
)

type sample struct {
	Title string `form:"title" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
	Image string `form:"image_url" validate:"omitempty,url"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name   string
		input  sample
		fields map[string]string
	}{
		{name: "valid", input: sample{Title: "Lamp"}},
		{
			name:   "missing title",
			input:  sample{},
			fields: map[string]string{"title": "This field is required."},
		},
		{
			name:  "too long and bad email",
			input: sample{Title: "Bicycle", Email: "nope", Image: "not a url"},
			fields: map[string]string{
				"title":     "Ensure this value has at most 5 characters.",
				"email":     "Enter a valid email address.",
				"image_url": "Enter a valid URL.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verr *errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.fields, verr.Fields)
			assert.ErrorIs(t, err, errors.ErrValidation)
		})
	}
}

func TestMerge(t *testing.T) {
	err := Merge(nil, map[string]string{"amount": "Enter a number."})
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Enter a number.", verr.Fields["amount"])

	err = Merge(Struct(sample{}), map[string]string{"title": "ignored", "amount": "Enter a number."})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "This field is required.", verr.Fields["title"])
	assert.Len(t, verr.Fields, 2)

	assert.NoError(t, Merge(nil, nil))
}
