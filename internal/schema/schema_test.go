package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    map[string]any
		wantErr string
	}{
		{
			name: "valid payload",
			data: map[string]any{
				"product_category": "computer",
				"product_title":    "Ergo Mouse",
			},
		},
		{
			name: "extra fields ignored",
			data: map[string]any{
				"product_category": "computer",
				"product_title":    "Ergo Mouse",
				"unknown":          42,
			},
		},
		{
			name:    "missing category",
			data:    map[string]any{"product_title": "Ergo Mouse"},
			wantErr: "'product_category' is a required property",
		},
		{
			name:    "missing title",
			data:    map[string]any{"product_category": "computer"},
			wantErr: "'product_title' is a required property",
		},
		{
			name: "non-string category",
			data: map[string]any{
				"product_category": 7,
				"product_title":    "Ergo Mouse",
			},
			wantErr: "'product_category' must be a string",
		},
		{
			name: "empty title",
			data: map[string]any{
				"product_category": "computer",
				"product_title":    "",
			},
			wantErr: "'product_title' must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in, err := ValidateCreate(tt.data)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)

				var validationErr *ValidationError
				assert.True(t, errors.As(err, &validationErr))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "computer", in.Category)
			assert.Equal(t, "Ergo Mouse", in.Title)
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    map[string]any
		wantErr string
	}{
		{
			name: "valid payload",
			data: map[string]any{
				"product_id":       "id-1",
				"product_category": "computer",
				"product_title":    "Ergo Mouse",
			},
		},
		{
			name: "missing id",
			data: map[string]any{
				"product_category": "computer",
				"product_title":    "Ergo Mouse",
			},
			wantErr: "'product_id' is a required property",
		},
		{
			name: "missing title",
			data: map[string]any{
				"product_id":       "id-1",
				"product_category": "computer",
			},
			wantErr: "'product_title' is a required property",
		},
		{
			name: "non-string id",
			data: map[string]any{
				"product_id":       12.5,
				"product_category": "computer",
				"product_title":    "Ergo Mouse",
			},
			wantErr: "'product_id' must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in, err := ValidateUpdate(tt.data)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "id-1", in.ID)
			assert.Equal(t, "computer", in.Category)
			assert.Equal(t, "Ergo Mouse", in.Title)
		})
	}
}

func TestValidationError_ReportsFirstViolation(t *testing.T) {
	t.Parallel()

	// Both fields are absent; the error must name the first constraint
	// checked, not all of them.
	_, err := ValidateCreate(map[string]any{})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "product_category", validationErr.Field)
}
