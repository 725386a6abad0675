package model

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports the first invalid field of a payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// messages maps "Field.tag" to the message shown to clients.
var messages = map[string]string{
	"Name.required":     "Name is required",
	"Name.min":          "Name cannot be empty",
	"Quantity.min":      "Quantity must be at least 1",
	"Category.required": "Category is required",
}

func fieldError(fe validator.FieldError) *ValidationError {
	msg, ok := messages[fe.StructField()+"."+fe.Tag()]
	if !ok {
		msg = fe.StructField() + " is invalid"
	}
	return &ValidationError{Field: fe.StructField(), Message: msg}
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fieldError(verrs[0])
	}
	return err
}

// CreateItemRequest is the body of POST /api/items and one entry of a bulk create.
type CreateItemRequest struct {
	Name     string `json:"name"`
	Quantity *int   `json:"quantity,omitempty"`
	Category string `json:"category,omitempty"`
}

// NewItem is a create payload after trimming and defaults have been applied.
type NewItem struct {
	Name     string `validate:"required"`
	Quantity int    `validate:"min=1"`
	Category string `validate:"required"`
}

// Normalize trims the name and fills in the default quantity and category.
func (r CreateItemRequest) Normalize() NewItem {
	n := NewItem{
		Name:     strings.TrimSpace(r.Name),
		Quantity: 1,
		Category: strings.TrimSpace(r.Category),
	}
	if r.Quantity != nil {
		n.Quantity = *r.Quantity
	}
	if n.Category == "" {
		n.Category = DefaultCategory
	}
	return n
}

// Validate checks the normalized payload.
func (n NewItem) Validate() error {
	if err := validate.Struct(n); err != nil {
		return validationError(err)
	}
	return nil
}

// UpdateItemRequest is a partial update: only non-nil fields are applied.
type UpdateItemRequest struct {
	Name      *string `json:"name,omitempty"`
	Quantity  *int    `json:"quantity,omitempty"`
	Category  *string `json:"category,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Normalize returns a copy with the name and category trimmed. A blank
// category becomes DefaultCategory.
func (r UpdateItemRequest) Normalize() UpdateItemRequest {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Category != nil {
		category := strings.TrimSpace(*r.Category)
		if category == "" {
			category = DefaultCategory
		}
		r.Category = &category
	}
	return r
}

// Validate checks the supplied fields.
func (r UpdateItemRequest) Validate() error {
	if r.Name != nil {
		if err := validate.Var(*r.Name, "min=1"); err != nil {
			return &ValidationError{Field: "Name", Message: messages["Name.min"]}
		}
	}
	if r.Quantity != nil {
		if err := validate.Var(*r.Quantity, "min=1"); err != nil {
			return &ValidationError{Field: "Quantity", Message: messages["Quantity.min"]}
		}
	}
	return nil
}

// Empty reports whether no field is supplied.
func (r UpdateItemRequest) Empty() bool {
	return r.Name == nil && r.Quantity == nil && r.Category == nil && r.Completed == nil
}

// BulkCreateRequest is the body of POST /api/items/bulk.
type BulkCreateRequest struct {
	Items []CreateItemRequest `json:"items"`
}

// BulkUpdateEntry is one entry of a bulk update.
type BulkUpdateEntry struct {
	ID int64 `json:"id"`
	UpdateItemRequest
}

// BulkUpdateRequest is the body of PUT /api/items/bulk.
type BulkUpdateRequest struct {
	Updates []BulkUpdateEntry `json:"updates"`
}

// BulkDeleteRequest is the body of DELETE /api/items/bulk.
type BulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

// BulkDeleteResult is returned by a bulk delete.
type BulkDeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
