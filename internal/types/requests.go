package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ExportFormat selects which document format(s) to generate.
type ExportFormat string

// Supported export formats.
const (
	FormatPDF  ExportFormat = "pdf"
	FormatDOCX ExportFormat = "docx"
	FormatBoth ExportFormat = "both"
)

// ToggleRequest toggles a single line item's inclusion in the final resume.
type ToggleRequest struct {
	Key      string `json:"key" validate:"required"`
	Selected bool   `json:"selected"`
}

// SelectAllRequest bulk-selects (or clears) every item of one side.
type SelectAllRequest struct {
	Side Side `json:"side" validate:"required,oneof=original enhanced"`
}

// EditContentRequest replaces the text of one final-resume item.
type EditContentRequest struct {
	Section string `json:"section" validate:"required"`
	Index   int    `json:"index" validate:"min=0"`
	Content string `json:"content"`
}

// AddLineRequest appends an empty user-added line to a section.
type AddLineRequest struct {
	Section string `json:"section" validate:"required"`
}

// RemoveLineRequest removes one line from a section.
type RemoveLineRequest struct {
	Section string `json:"section" validate:"required"`
	Index   int    `json:"index" validate:"min=0"`
}

// AddSectionRequest creates a new user-added section.
type AddSectionRequest struct {
	Name string `json:"name" validate:"required"`
}

// RemoveSectionRequest removes a non-canonical section.
type RemoveSectionRequest struct {
	Name string `json:"name" validate:"required"`
}

// ExportRequest asks for the final resume as a downloadable document.
type ExportRequest struct {
	UserID uuid.UUID    `json:"user_id" validate:"required"`
	Format ExportFormat `json:"format" validate:"required,oneof=pdf docx both"`
}

// Validate validates the ToggleRequest using the validator.
func (r *ToggleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SelectAllRequest using the validator.
func (r *SelectAllRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the EditContentRequest using the validator.
func (r *EditContentRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AddLineRequest using the validator.
func (r *AddLineRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RemoveLineRequest using the validator.
func (r *RemoveLineRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AddSectionRequest using the validator.
func (r *AddSectionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RemoveSectionRequest using the validator.
func (r *RemoveSectionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ExportRequest using the validator.
func (r *ExportRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
