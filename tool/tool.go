package tool

import (
	"context"
	"encoding/json"

	"github.com/DigitalKin-ai/kin-kernel/cell"
	"github.com/DigitalKin-ai/kin-kernel/schema"
)

// invoke runs a cell against raw tool-call arguments and unwraps the
// response envelope: the validated output content on success, the
// structured cell error otherwise.
func invoke(ctx context.Context, c cell.Runner, args json.RawMessage) (json.RawMessage, error) {
	encoded, err := c.Run(ctx, args)
	if err != nil {
		return nil, err
	}

	resp, err := cell.ParseResponse(encoded)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, resp.Err()
	}

	return resp.Content, nil
}

// parameters returns the cell's input schema in the flattened form tool
// declarations require (no $defs indirection).
func parameters(c cell.Runner) (map[string]any, error) {
	return schema.ResolveRefs(c.InputSchema())
}
