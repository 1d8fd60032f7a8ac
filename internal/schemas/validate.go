// Package schemas provides JSON Schema validation for the report wire contract.
//
// The embedded schema mirrors the JSON tags on types.Report. The extractor
// itself is deliberately lenient; this package exists so tools and tests can
// check a serialized report against the contract the prompt promises.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed report.schema.json
var schemaFS embed.FS

// ValidationError represents a schema validation failure with field paths
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
	sb.WriteString("report validation failed:\n")
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
		return fmt.Sprintf("failed to load report schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load report schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ReportSchema returns the embedded report schema document
func ReportSchema() (string, error) {
	data, err := schemaFS.ReadFile("report.schema.json")
	if err != nil {
		return "", &SchemaLoadError{Message: "embedded schema missing", Cause: err}
	}
	return string(data), nil
}

// ValidateReport validates serialized report JSON against the wire contract
func ValidateReport(reportJSON []byte) error {
	schema, err := ReportSchema()
	if err != nil {
		return err
	}

	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(reportJSON)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{Message: "validation failed during load", Cause: err}
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
