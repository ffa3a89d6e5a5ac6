package tool

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/DigitalKin-ai/kin-kernel/cell"
)

// AnthropicTool exposes a cell as an Anthropic messages-API tool. The
// cell's role becomes the tool name and its input schema the tool input
// schema.
type AnthropicTool struct {
	cell cell.Runner
}

// NewAnthropicTool wraps a cell for Anthropic tool use.
func NewAnthropicTool(c cell.Runner) *AnthropicTool {
	return &AnthropicTool{cell: c}
}

// Name returns the tool name exposed to the model.
func (t *AnthropicTool) Name() string { return t.cell.Role() }

// Description returns the tool description exposed to the model.
func (t *AnthropicTool) Description() string { return t.cell.Description() }

// Param builds the tool declaration for a messages request.
func (t *AnthropicTool) Param() (anthropic.ToolUnionParam, error) {
	params, err := parameters(t.cell)
	if err != nil {
		return anthropic.ToolUnionParam{}, err
	}

	inputSchema := anthropic.ToolInputSchemaParam{
		Type: constant.Object("object"),
	}
	if properties, exists := params["properties"]; exists {
		inputSchema.Properties = properties
	}
	inputSchema.Required = requiredNames(params)

	tool := anthropic.ToolUnionParamOfTool(inputSchema, t.cell.Role())
	if tool.OfTool != nil && t.cell.Description() != "" {
		tool.OfTool.Description = anthropic.String(t.cell.Description())
	}

	return tool, nil
}

// Invoke executes the cell with the raw input of a model tool-use block and
// returns the validated output content.
func (t *AnthropicTool) Invoke(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	return invoke(ctx, t.cell, input)
}

// requiredNames normalizes the schema's required list, which may be
// []string when reflection-derived or []any when decoded from JSON.
func requiredNames(params map[string]any) []string {
	switch req := params["required"].(type) {
	case []string:
		return req
	case []any:
		var names []string
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

// AnthropicTools wraps a list of cells for Anthropic tool use.
func AnthropicTools(cells ...cell.Runner) []*AnthropicTool {
	tools := make([]*AnthropicTool, len(cells))
	for i, c := range cells {
		tools[i] = NewAnthropicTool(c)
	}
	return tools
}
