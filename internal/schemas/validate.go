// Package schemas provides JSON Schema validation for the documents the builder persists.
package schemas

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/portfolio-builder/internal/types"
	embedded "github.com/jonathan/portfolio-builder/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	templateDataOnce   sync.Once
	templateDataSchema *gojsonschema.Schema
	templateDataErr    error
)

func compiledTemplateData() (*gojsonschema.Schema, error) {
	templateDataOnce.Do(func() {
		raw, err := embedded.Read(embedded.TemplateDataFile)
		if err != nil {
			templateDataErr = &SchemaLoadError{Path: embedded.TemplateDataFile, Message: "schema not embedded", Cause: err}
			return
		}
		templateDataSchema, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			templateDataErr = &SchemaLoadError{Path: embedded.TemplateDataFile, Message: "invalid schema", Cause: err}
		}
	})
	return templateDataSchema, templateDataErr
}

// ValidateTemplateData checks a Template Data document against the embedded schema
func ValidateTemplateData(data *types.TemplateData) error {
	if data == nil {
		data = &types.TemplateData{}
	}
	doc, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode template data: %w", err)
	}
	return ValidateTemplateDataJSON(doc)
}

// ValidateTemplateDataJSON checks raw JSON against the embedded Template Data schema
func ValidateTemplateDataJSON(doc []byte) error {
	schema, err := compiledTemplateData()
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	return toValidationError(result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
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
