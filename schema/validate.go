package schema

import (
	"fmt"
	"strings"
)

// FieldError describes a single structural violation: the dotted/indexed
// path of the offending field, the rule that was violated and a
// human-readable message.
type FieldError struct {
	Path    string `json:"path"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Error implements the error interface for FieldError.
func (e *FieldError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Path, e.Message)
}

// ValidationErrors aggregates every violation found in a single validation
// pass. Validate always reports the complete set, not just the first.
type ValidationErrors struct {
	Errors []*FieldError `json:"errors"`
}

// Error implements the error interface, joining all field errors.
func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("%d validation error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Add appends a field error.
func (e *ValidationErrors) Add(fe *FieldError) { e.Errors = append(e.Errors, fe) }

// Empty reports whether no violations were recorded.
func (e *ValidationErrors) Empty() bool { return len(e.Errors) == 0 }

// Validate checks data against an object schema. It returns nil on success
// or a *ValidationErrors carrying every violation found: missing required
// fields, type mismatches, enum violations, and failures inside nested
// objects and array items. Unknown extra fields are allowed.
func Validate(data map[string]any, schema map[string]any) error {
	errs := &ValidationErrors{}
	validateObject("", data, schema, errs)
	if errs.Empty() {
		return nil
	}
	return errs
}

func validateObject(path string, data map[string]any, schema map[string]any, errs *ValidationErrors) {
	for _, name := range requiredFields(schema) {
		if _, exists := data[name]; !exists {
			errs.Add(&FieldError{
				Path:    joinPath(path, name),
				Rule:    "required",
				Message: "required field is missing",
			})
		}
	}

	properties, _ := schema["properties"].(map[string]any)
	for fieldName, value := range data {
		propSchema, exists := properties[fieldName]
		if !exists {
			continue
		}

		propMap, ok := propSchema.(map[string]any)
		if !ok {
			continue
		}

		validateValue(joinPath(path, fieldName), value, propMap, errs)
	}
}

func validateValue(path string, value any, schema map[string]any, errs *ValidationErrors) {
	expectedType, _ := schema["type"].(string)
	if !isValidType(value, expectedType) {
		errs.Add(&FieldError{
			Path:    path,
			Rule:    "type",
			Message: fmt.Sprintf("expected type %s, got %T", expectedType, value),
			Value:   value,
		})
		return
	}

	if enum, ok := schema["enum"].([]any); ok && value != nil {
		if !enumContains(enum, value) {
			errs.Add(&FieldError{
				Path:    path,
				Rule:    "enum",
				Message: fmt.Sprintf("value %v is not one of the allowed values", value),
				Value:   value,
			})
			return
		}
	}

	switch expectedType {
	case "object":
		obj, ok := value.(map[string]any)
		if ok && schema["properties"] != nil {
			validateObject(path, obj, schema, errs)
		}
	case "array":
		items, ok := schema["items"].(map[string]any)
		if !ok {
			return
		}
		arr, ok := value.([]any)
		if !ok {
			return
		}
		for i, item := range arr {
			validateValue(fmt.Sprintf("%s[%d]", path, i), item, items, errs)
		}
	}
}

// requiredFields normalizes the "required" entry, which may be []string when
// built by Create or []any when decoded from JSON.
func requiredFields(schema map[string]any) []string {
	switch req := schema["required"].(type) {
	case []string:
		return req
	case []any:
		names := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				names = append(names, s)
			}
		}
		return names
	default:
		return nil
	}
}

func enumContains(enum []any, value any) bool {
	for _, allowed := range enum {
		if fmt.Sprintf("%v", allowed) == fmt.Sprintf("%v", value) {
			return true
		}
	}
	return false
}

func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

// isValidType checks a value against the expected JSON schema type. nil is
// valid for any type; JSON numbers arrive as float64 and count as integers
// only when whole.
func isValidType(value any, expectedType string) bool {
	if value == nil {
		return true
	}

	switch expectedType {
	case "string":
		_, ok := value.(string)
		return ok
	case "integer":
		switch v := value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return true
		case float64:
			return v == float64(int64(v))
		}
		return false
	case "number":
		switch value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
			float32, float64:
			return true
		}
		return false
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	default:
		return true
	}
}
