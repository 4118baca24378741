// Package schemas provides JSON Schema validation for raw resume payloads
// at the ingest boundary.
package schemas

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// payloadSchema describes the resume payload handed over by the data
// source. Section values are deliberately unconstrained: values that are
// neither arrays nor non-empty strings count as "no data for this section"
// and are skipped by the normalizer, not rejected here.
const payloadSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Raw resume payload",
  "type": "object",
  "required": ["parsed_resumes"],
  "properties": {
    "parsed_resumes": {
      "type": "object",
      "required": ["current_resumes", "enhanced_resume"],
      "properties": {
        "current_resumes": {"$ref": "#/definitions/sectionMap"},
        "enhanced_resume": {"$ref": "#/definitions/sectionMap"}
      }
    }
  },
  "definitions": {
    "sectionMap": {
      "type": ["object", "null"]
    }
  }
}`

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("payload validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load payload schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load payload schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidatePayload validates raw payload JSON against the embedded schema.
// It returns a *ValidationError describing every violated field (a payload
// that is not valid JSON at all counts as one), or nil when the payload
// conforms.
func ValidatePayload(payload []byte) error {
	if !json.Valid(payload) {
		return &ValidationError{
			Errors: []FieldError{{Field: "(root)", Message: "payload is not valid JSON"}},
		}
	}

	schemaLoader := gojsonschema.NewStringLoader(payloadSchema)
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
