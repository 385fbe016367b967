// Package schema validates untyped create/update payloads and converts
// them into typed inputs for the data access layer.
//
// Both schemas are fixed: the create payload requires product_category and
// product_title, the update payload additionally requires product_id. All
// three fields must be non-empty strings. Validation reports the first
// violated constraint and has no side effects.
package schema

import "fmt"

// Payload field names.
const (
	FieldProductID       = "product_id"
	FieldProductCategory = "product_category"
	FieldProductTitle    = "product_title"
)

// ValidationError describes the first constraint violated by a payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ProductInput is a validated create payload.
type ProductInput struct {
	Category string
	Title    string
}

// UpdateInput is a validated update payload.
type UpdateInput struct {
	ID       string
	Category string
	Title    string
}

// ValidateCreate checks a create payload and returns its typed form.
// The payload must contain product_category and product_title as non-empty
// strings. Unknown fields are ignored.
func ValidateCreate(data map[string]any) (*ProductInput, error) {
	category, err := requireString(data, FieldProductCategory)
	if err != nil {
		return nil, err
	}

	title, err := requireString(data, FieldProductTitle)
	if err != nil {
		return nil, err
	}

	return &ProductInput{
		Category: category,
		Title:    title,
	}, nil
}

// ValidateUpdate checks an update payload and returns its typed form.
// The payload must contain product_id, product_category and product_title
// as non-empty strings. Unknown fields are ignored.
func ValidateUpdate(data map[string]any) (*UpdateInput, error) {
	id, err := requireString(data, FieldProductID)
	if err != nil {
		return nil, err
	}

	category, err := requireString(data, FieldProductCategory)
	if err != nil {
		return nil, err
	}

	title, err := requireString(data, FieldProductTitle)
	if err != nil {
		return nil, err
	}

	return &UpdateInput{
		ID:       id,
		Category: category,
		Title:    title,
	}, nil
}

func requireString(data map[string]any, field string) (string, error) {
	value, ok := data[field]
	if !ok {
		return "", &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("'%s' is a required property", field),
		}
	}

	s, ok := value.(string)
	if !ok {
		return "", &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("'%s' must be a string", field),
		}
	}

	if s == "" {
		return "", &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("'%s' must not be empty", field),
		}
	}

	return s, nil
}
