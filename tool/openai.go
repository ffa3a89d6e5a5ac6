package tool

import (
	"context"
	"encoding/json"

	"github.com/openai/openai-go"

	"github.com/DigitalKin-ai/kin-kernel/cell"
)

// OpenAIFunction exposes a cell as an OpenAI chat-completions function
// tool. The cell's role becomes the function name and its input schema the
// function parameters.
type OpenAIFunction struct {
	cell cell.Runner
}

// NewOpenAIFunction wraps a cell for OpenAI function calling.
func NewOpenAIFunction(c cell.Runner) *OpenAIFunction {
	return &OpenAIFunction{cell: c}
}

// Name returns the function name exposed to the model.
func (f *OpenAIFunction) Name() string { return f.cell.Role() }

// Description returns the function description exposed to the model.
func (f *OpenAIFunction) Description() string { return f.cell.Description() }

// Definition builds the tool declaration for a chat-completions request.
func (f *OpenAIFunction) Definition() (openai.ChatCompletionToolParam, error) {
	params, err := parameters(f.cell)
	if err != nil {
		return openai.ChatCompletionToolParam{}, err
	}

	return openai.ChatCompletionToolParam{
		Type: "function",
		Function: openai.FunctionDefinitionParam{
			Name:        f.cell.Role(),
			Description: openai.String(f.cell.Description()),
			Parameters:  params,
		},
	}, nil
}

// Invoke executes the cell with the raw arguments string of a model tool
// call and returns the validated output content.
func (f *OpenAIFunction) Invoke(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	return invoke(ctx, f.cell, args)
}

// OpenAIFunctions wraps a list of cells for OpenAI function calling.
func OpenAIFunctions(cells ...cell.Runner) []*OpenAIFunction {
	fns := make([]*OpenAIFunction, len(cells))
	for i, c := range cells {
		fns[i] = NewOpenAIFunction(c)
	}
	return fns
}
