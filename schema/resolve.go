package schema

import (
	"fmt"
	"strings"
)

const defsPrefix = "#/$defs/"

// ResolveRefs returns a copy of schema with every internal "$ref" replaced
// by the referenced definition from the schema's "$defs" section and the
// "$defs" section removed. Schemas produced by Create never contain refs;
// this exists for externally authored schema overrides, which LLM tool
// formats require in flattened form.
//
// It fails when a $ref points outside $defs or when refs are present but no
// $defs section exists.
func ResolveRefs(schema map[string]any) (map[string]any, error) {
	defs, _ := schema["$defs"].(map[string]any)

	resolved, err := resolveNode(schema, defs, 0)
	if err != nil {
		return nil, err
	}

	out, ok := resolved.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema root is not an object")
	}
	delete(out, "$defs")

	return out, nil
}

// maxRefDepth guards against definition cycles.
const maxRefDepth = 32

func resolveNode(node any, defs map[string]any, depth int) (any, error) {
	if depth > maxRefDepth {
		return nil, fmt.Errorf("schema $ref nesting exceeds %d levels (cycle?)", maxRefDepth)
	}

	switch n := node.(type) {
	case map[string]any:
		if ref, ok := n["$ref"].(string); ok {
			target, err := lookupRef(ref, defs)
			if err != nil {
				return nil, err
			}
			return resolveNode(target, defs, depth+1)
		}

		out := make(map[string]any, len(n))
		for k, v := range n {
			rv, err := resolveNode(v, defs, depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = rv
		}
		return out, nil
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			rv, err := resolveNode(v, defs, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = rv
		}
		return out, nil
	default:
		return node, nil
	}
}

func lookupRef(ref string, defs map[string]any) (any, error) {
	if !strings.HasPrefix(ref, defsPrefix) {
		return nil, fmt.Errorf("unsupported $ref %q: only %s references can be resolved", ref, defsPrefix)
	}
	if defs == nil {
		return nil, fmt.Errorf("schema contains $ref %q but no $defs section", ref)
	}

	var node any = defs
	for _, key := range strings.Split(strings.TrimPrefix(ref, defsPrefix), "/") {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("$ref %q: path segment %q is not an object", ref, key)
		}
		node, ok = obj[key]
		if !ok {
			return nil, fmt.Errorf("$ref %q: definition %q not found", ref, key)
		}
	}

	return node, nil
}
