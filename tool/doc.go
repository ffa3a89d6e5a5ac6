// Package tool adapts cells to LLM function-calling formats. An adapter
// exposes a cell's role, description and flattened input schema as a
// provider-specific tool declaration and routes raw tool-call arguments
// through the cell's validation-wrapped execution, unwrapping the response
// envelope for the caller.
package tool
