package schema

import (
	"encoding/json"
	"reflect"
	"strings"
)

// For derives the JSON schema for the struct type T. It is the generic
// counterpart of Create and the form used by cell construction.
func For[T any]() map[string]any {
	var v T
	return Create(v)
}

// Create builds a JSON schema from a Go struct using reflection.
//
// Supported struct tags:
//
//	json:"name,omitempty" - property name; omitempty makes the field optional
//	description:"..."     - property description
//	enum:"a,b,c"          - allowed values (string fields)
//
// Pointer fields are optional; everything else exported is required.
// Nested structs, slices and maps are described recursively.
func Create(structType any) map[string]any {
	t := reflect.TypeOf(structType)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}
	}

	return structSchema(t)
}

func structSchema(t reflect.Type) map[string]any {
	properties := make(map[string]any)
	required := make([]string, 0)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}

		fieldName := field.Name
		if jsonTag != "" {
			parts := strings.Split(jsonTag, ",")
			if parts[0] != "" {
				fieldName = parts[0]
			}
		}

		properties[fieldName] = fieldSchema(field)

		if !hasOmitEmpty(jsonTag) && field.Type.Kind() != reflect.Ptr {
			required = append(required, fieldName)
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

func fieldSchema(field reflect.StructField) map[string]any {
	s := typeSchema(field.Type)

	if description := field.Tag.Get("description"); description != "" {
		s["description"] = description
	}

	if enum := field.Tag.Get("enum"); enum != "" {
		values := strings.Split(enum, ",")
		anyValues := make([]any, len(values))
		for i, v := range values {
			anyValues[i] = strings.TrimSpace(v)
		}
		s["enum"] = anyValues
	}

	return s
}

func typeSchema(t reflect.Type) map[string]any {
	switch t.Kind() {
	case reflect.Ptr:
		return typeSchema(t.Elem())
	case reflect.Struct:
		return structSchema(t)
	case reflect.Slice, reflect.Array:
		return map[string]any{
			"type":  "array",
			"items": typeSchema(t.Elem()),
		}
	case reflect.Map:
		return map[string]any{"type": "object"}
	default:
		return map[string]any{"type": jsonType(t)}
	}
}

// jsonType returns the JSON schema type name for a Go type.
func jsonType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Ptr:
		return jsonType(t.Elem())
	default:
		return "string"
	}
}

// hasOmitEmpty checks if a JSON tag has the "omitempty" option.
func hasOmitEmpty(tag string) bool {
	parts := strings.Split(tag, ",")
	for _, part := range parts[1:] {
		if strings.TrimSpace(part) == "omitempty" {
			return true
		}
	}
	return false
}

// MarshalIndent renders a schema as indented JSON, the form exposed by cell
// introspection accessors.
func MarshalIndent(schema map[string]any) (string, error) {
	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
