package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func objectSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"value1": map[string]any{"type": "integer"},
			"value2": map[string]any{"type": "string"},
		},
		"required": []string{"value1", "value2"},
	}
}

func TestValidateSuccess(t *testing.T) {
	err := Validate(map[string]any{"value1": 10, "value2": "example"}, objectSchema())
	assert.NoError(t, err)

	// JSON decoding produces float64 for numbers; whole values count as integers.
	err = Validate(map[string]any{"value1": 10.0, "value2": "example"}, objectSchema())
	assert.NoError(t, err)
}

func TestValidateWrongType(t *testing.T) {
	err := Validate(map[string]any{"value1": "ten", "value2": "example"}, objectSchema())
	require.Error(t, err)

	verrs, ok := err.(*ValidationErrors)
	require.True(t, ok)
	require.Len(t, verrs.Errors, 1)
	assert.Equal(t, "value1", verrs.Errors[0].Path)
	assert.Equal(t, "type", verrs.Errors[0].Rule)
	assert.Contains(t, verrs.Errors[0].Message, "expected type integer")
}

func TestValidateMissingRequiredBatch(t *testing.T) {
	err := Validate(map[string]any{}, objectSchema())
	require.Error(t, err)

	verrs, ok := err.(*ValidationErrors)
	require.True(t, ok)

	var paths []string
	for _, fe := range verrs.Errors {
		assert.Equal(t, "required", fe.Rule)
		paths = append(paths, fe.Path)
	}
	// Every missing field is reported, not just the first.
	assert.ElementsMatch(t, []string{"value1", "value2"}, paths)
}

func TestValidateCollectsAllViolations(t *testing.T) {
	err := Validate(map[string]any{"value1": "ten"}, objectSchema())
	require.Error(t, err)

	verrs, ok := err.(*ValidationErrors)
	require.True(t, ok)
	assert.Len(t, verrs.Errors, 2) // missing value2 + wrong type for value1
}

func TestValidateRequiredAsAnySlice(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"x": map[string]any{"type": "integer"},
		},
		// Mirror the JSON decoded schema shape.
		"required": []any{"x"},
	}

	err := Validate(map[string]any{}, schema)
	require.Error(t, err)
	verrs := err.(*ValidationErrors)
	assert.Equal(t, "x", verrs.Errors[0].Path)
}

func TestValidateNestedPaths(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"address": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"city": map[string]any{"type": "string"},
				},
				"required": []string{"city"},
			},
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"address"},
	}

	err := Validate(map[string]any{
		"address": map[string]any{},
		"tags":    []any{"ok", 7},
	}, schema)
	require.Error(t, err)

	verrs := err.(*ValidationErrors)
	var paths []string
	for _, fe := range verrs.Errors {
		paths = append(paths, fe.Path)
	}
	assert.ElementsMatch(t, []string{"address.city", "tags[1]"}, paths)
}

func TestValidateEnum(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mode": map[string]any{"type": "string", "enum": []any{"fast", "slow"}},
		},
	}

	assert.NoError(t, Validate(map[string]any{"mode": "fast"}, schema))

	err := Validate(map[string]any{"mode": "turbo"}, schema)
	require.Error(t, err)
	verrs := err.(*ValidationErrors)
	assert.Equal(t, "enum", verrs.Errors[0].Rule)
}

func TestValidateAllowsExtraFields(t *testing.T) {
	err := Validate(map[string]any{"value1": 1, "value2": "a", "extra": true}, objectSchema())
	assert.NoError(t, err)
}
