package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema defines the structure for tool input/output schemas
type JSONSchema struct {
	Type                 string              `json:"type"`
	Description          string              `json:"description,omitempty"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties *bool               `json:"additionalProperties,omitempty"`
	Items                *Property           `json:"items,omitempty"` // top-level arrays
}

type Property struct {
	Type        interface{}         `json:"type,omitempty"` // string, or []string for nullable fields
	Description string              `json:"description,omitempty"`
	Default     interface{}         `json:"default,omitempty"`
	Minimum     *float64            `json:"minimum,omitempty"`
	Maximum     *float64            `json:"maximum,omitempty"`
	Enum        []string            `json:"enum,omitempty"`
	Pattern     *string             `json:"pattern,omitempty"`
	Format      string              `json:"format,omitempty"`
	MinLength   *int                `json:"minLength,omitempty"`
	MaxLength   *int                `json:"maxLength,omitempty"`
	MinItems    *int                `json:"minItems,omitempty"`
	Items       *Property           `json:"items,omitempty"`      // For array validation
	Properties  map[string]Property `json:"properties,omitempty"` // For nested objects
	Required    []string            `json:"required,omitempty"`   // For nested objects
}

// MarshalJSON emits "properties": {} for object schemas without fields and
// drops it for other types.
func (s JSONSchema) MarshalJSON() ([]byte, error) {
	type plain JSONSchema
	if s.Type != "object" {
		return json.Marshal(struct {
			plain
			Properties map[string]Property `json:"properties,omitempty"`
		}{plain: plain(s), Properties: s.Properties})
	}
	if s.Properties == nil {
		s.Properties = map[string]Property{}
	}
	return json.Marshal(plain(s))
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator is a compiled schema, safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
	source JSONSchema
}

// Compile checks that schema is a well-formed JSON Schema and prepares it for validation.
func Compile(schema JSONSchema) (*Validator, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: compiled, source: schema}, nil
}

// CompileRaw compiles a schema document given as JSON text, e.g. an embedded file.
func CompileRaw(raw []byte) (*gojsonschema.Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return compiled, nil
}

// Schema returns the schema the validator was compiled from.
func (v *Validator) Schema() JSONSchema {
	return v.source
}

// ValidateJSON validates a raw JSON document.
func (v *Validator) ValidateJSON(doc []byte) *ValidationResult {
	if len(strings.TrimSpace(string(doc))) == 0 {
		doc = []byte("{}")
	}
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(doc))
	return toValidationResult(result, err)
}

// ValidateValue validates any Go value by its JSON encoding.
func (v *Validator) ValidateValue(value interface{}) *ValidationResult {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(value))
	return toValidationResult(result, err)
}

// ValidateDocument validates doc against a compiled raw schema.
func ValidateDocument(schema *gojsonschema.Schema, doc []byte) *ValidationResult {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	return toValidationResult(result, err)
}

// ValidateInput validates input against JSON schema with detailed errors
func ValidateInput(input map[string]interface{}, schema JSONSchema) *ValidationResult {
	v, err := Compile(schema)
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{Field: "(schema)", Message: err.Error(), Code: "INVALID_SCHEMA"}}}
	}
	return v.ValidateValue(input)
}

func toValidationResult(result *gojsonschema.Result, err error) *ValidationResult {
	if err != nil {
		return &ValidationResult{Errors: []ValidationError{{Field: "(root)", Message: err.Error(), Code: "INVALID_JSON"}}}
	}
	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		field := re.Field()
		if re.Type() == "required" {
			if prop, ok := re.Details()["property"].(string); ok {
				if field == "(root)" {
					field = prop
				} else {
					field = field + "." + prop
				}
			}
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Message: re.Description(),
			Code:    strings.ToUpper(re.Type()),
		})
	}
	return &ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// ValidateToolName validates a tool name is snake_case
func ValidateToolName(name string) error {
	if !toolNamePattern.MatchString(name) {
		return fmt.Errorf("tool name must be snake_case (e.g., find_services_by_keyword), got %q", name)
	}
	return nil
}

var (
	toolNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrorsForField returns errors for a specific field
func (vr *ValidationResult) GetErrorsForField(field string) []ValidationError {
	var fieldErrors []ValidationError
	for _, err := range vr.Errors {
		if err.Field == field || strings.HasPrefix(err.Field, field+".") {
			fieldErrors = append(fieldErrors, err)
		}
	}
	return fieldErrors
}

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Bool returns a pointer to b, for AdditionalProperties.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i, for length and item constraints.
func Int(i int) *int { return &i }

// Float returns a pointer to f, for Minimum and Maximum.
func Float(f float64) *float64 { return &f }
