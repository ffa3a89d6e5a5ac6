package cell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DigitalKin-ai/kin-kernel/config"
	"github.com/DigitalKin-ai/kin-kernel/logging"
	"github.com/DigitalKin-ai/kin-kernel/schema"
)

// Handler is the sole extension point of a cell: the business logic invoked
// with an already validated, typed input. It receives the caller's context
// and may block on I/O-bound work; synchronous logic simply ignores the
// context. Returning an error aborts execution with code EXECUTION_ERROR
// (or CANCELED when the context expired).
type Handler[I, O any] func(ctx context.Context, input I) (O, error)

// Options configures cell construction.
type Options struct {
	// Config declares the cell's environment surface. It is resolved once,
	// during New; a resolution failure fails construction.
	Config *config.Model

	// Logger receives structured execution events. Defaults to a no-op.
	Logger logging.Logger

	// InputSchema / OutputSchema override the reflection-derived schemas
	// with externally authored ones. $defs/$ref indirections are resolved
	// at construction.
	InputSchema  map[string]any
	OutputSchema map[string]any
}

// WithConfig declares the environment surface resolved at construction.
func WithConfig(m *config.Model) func(o *Options) {
	return func(o *Options) { o.Config = m }
}

// WithLogger sets the structured logger used for execution events.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// WithInputSchema overrides the derived input schema.
func WithInputSchema(s map[string]any) func(o *Options) {
	return func(o *Options) { o.InputSchema = s }
}

// WithOutputSchema overrides the derived output schema.
func WithOutputSchema(s map[string]any) func(o *Options) {
	return func(o *Options) { o.OutputSchema = s }
}

// Cell is a self-describing unit of computation bound to exactly one input
// type I and one output type O, fixed for its lifetime.
//
// A Cell has no internal mutable state after construction and is safe for
// concurrent Execute calls as long as the handler itself is; the kernel
// shares only the immutable schemas and resolved configuration across
// calls.
type Cell[I, O any] struct {
	id          string
	role        string
	description string

	inputSchema  map[string]any
	outputSchema map[string]any

	cfg     *config.Config
	handler Handler[I, O]
	logger  logging.Logger
}

// New constructs a cell. The input and output schemas are derived from I
// and O by reflection (unless overridden), and the declared configuration,
// if any, is resolved against the process environment exactly once. A
// failed resolution yields an Error with code CONFIG_ERROR wrapping the
// *config.ResolutionError and no cell is created.
func New[I, O any](role, description string, handler Handler[I, O], optFns ...func(o *Options)) (*Cell[I, O], error) {
	if role == "" {
		return nil, fmt.Errorf("cell: role must not be empty")
	}
	if handler == nil {
		return nil, fmt.Errorf("cell: handler must not be nil")
	}

	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	inputSchema, err := buildSchema[I](opts.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("cell %s: input schema: %w", role, err)
	}

	outputSchema, err := buildSchema[O](opts.OutputSchema)
	if err != nil {
		return nil, fmt.Errorf("cell %s: output schema: %w", role, err)
	}

	var cfg *config.Config
	if opts.Config != nil {
		cfg, err = opts.Config.Resolve()
		if err != nil {
			return nil, &Error{
				Cell:    role,
				Code:    CodeConfig,
				Message: err.Error(),
				Err:     err,
			}
		}
	}

	return &Cell[I, O]{
		id:           uuid.NewString(),
		role:         role,
		description:  description,
		inputSchema:  inputSchema,
		outputSchema: outputSchema,
		cfg:          cfg,
		handler:      handler,
		logger:       opts.Logger,
	}, nil
}

func buildSchema[T any](override map[string]any) (map[string]any, error) {
	if override == nil {
		return schema.For[T](), nil
	}
	return schema.ResolveRefs(override)
}

// ID returns the unique instance identifier.
func (c *Cell[I, O]) ID() string { return c.id }

// Role returns the short classifier for the cell's function.
func (c *Cell[I, O]) Role() string { return c.role }

// Description returns the human-readable description of the cell.
func (c *Cell[I, O]) Description() string { return c.description }

// Config returns the resolved configuration, or nil when none was declared.
func (c *Cell[I, O]) Config() *config.Config { return c.cfg }

// InputSchema returns the structural description of the input contract.
// The schema is built once at construction; callers must treat it as
// read-only.
func (c *Cell[I, O]) InputSchema() map[string]any { return c.inputSchema }

// OutputSchema returns the structural description of the output contract.
func (c *Cell[I, O]) OutputSchema() map[string]any { return c.outputSchema }

// InputSchemaJSON renders the input schema as indented JSON for
// documentation generators and compatibility checkers.
func (c *Cell[I, O]) InputSchemaJSON() (string, error) {
	return schema.MarshalIndent(c.inputSchema)
}

// OutputSchemaJSON renders the output schema as indented JSON.
func (c *Cell[I, O]) OutputSchemaJSON() (string, error) {
	return schema.MarshalIndent(c.outputSchema)
}

// Execute validates raw JSON input against the input schema, invokes the
// handler with the typed value, validates the handler's output against the
// output schema and returns it.
//
// Error Semantics:
//
//	*Error (returned by the handler)   -> forwarded unchanged
//	input or output schema violation   -> *Error{Code: VALIDATION_ERROR}
//	context canceled / deadline passed -> *Error{Code: CANCELED}
//	other handler error                -> *Error{Code: EXECUTION_ERROR}
//
// The handler is never invoked on invalid input, and whatever crosses the
// Execute boundary going out is schema-valid, not merely whatever the
// handler happened to return.
func (c *Cell[I, O]) Execute(ctx context.Context, raw []byte) (O, error) {
	var zero O

	start := time.Now()
	c.logger.Debug("cell.execute.start", "role", c.role, "cell_id", c.id)

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		c.logger.Warn("cell.execute.validation_failed", "role", c.role, "error", err.Error())

		return zero, &Error{
			Cell:    c.role,
			Code:    CodeValidation,
			Message: fmt.Sprintf("input is not a JSON object: %v", err),
			Err:     err,
		}
	}

	if err := schema.Validate(data, c.inputSchema); err != nil {
		c.logger.Warn("cell.execute.validation_failed", "role", c.role, "error", err.Error())

		return zero, &Error{
			Cell:    c.role,
			Code:    CodeValidation,
			Message: fmt.Sprintf("input validation failed: %v", err),
			Details: err,
			Err:     err,
		}
	}

	var input I
	if err := json.Unmarshal(raw, &input); err != nil {
		c.logger.Warn("cell.execute.validation_failed", "role", c.role, "error", err.Error())

		return zero, &Error{
			Cell:    c.role,
			Code:    CodeValidation,
			Message: fmt.Sprintf("input does not bind to the input type: %v", err),
			Err:     err,
		}
	}

	output, err := c.handler(ctx, input)
	if err != nil {
		return zero, c.classifyHandlerError(ctx, err)
	}

	if err := c.validateOutput(output); err != nil {
		c.logger.Warn("cell.execute.output_invalid", "role", c.role, "error", err.Error())

		return zero, err
	}

	c.logger.Info("cell.execute.success", "role", c.role, "cell_id", c.id,
		"duration_ms", time.Since(start).Milliseconds())

	return output, nil
}

// classifyHandlerError maps a handler failure onto the error taxonomy. A
// *Error is forwarded unchanged so handlers can surface custom codes.
func (c *Cell[I, O]) classifyHandlerError(ctx context.Context, err error) error {
	var cellErr *Error
	if errors.As(err, &cellErr) {
		c.logger.Error("cell.execute.error", "role", c.role, "error", cellErr.Message)
		return cellErr
	}

	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		c.logger.Error("cell.execute.canceled", "role", c.role, "error", err.Error())

		return &Error{
			Cell:    c.role,
			Code:    CodeCanceled,
			Message: err.Error(),
			Err:     err,
		}
	}

	c.logger.Error("cell.execute.error", "role", c.role, "error", err.Error())

	return &Error{
		Cell:    c.role,
		Code:    CodeExecution,
		Message: err.Error(),
		Err:     err,
	}
}

// validateOutput re-checks the handler's result against the output schema.
// The handler may construct output from loosely typed intermediate data;
// only schema-valid values may leave the cell.
func (c *Cell[I, O]) validateOutput(output O) error {
	encoded, err := json.Marshal(output)
	if err != nil {
		return &Error{
			Cell:    c.role,
			Code:    CodeValidation,
			Message: fmt.Sprintf("output is not serializable: %v", err),
			Err:     err,
		}
	}

	var data map[string]any
	if err := json.Unmarshal(encoded, &data); err != nil {
		return &Error{
			Cell:    c.role,
			Code:    CodeValidation,
			Message: fmt.Sprintf("output is not a JSON object: %v", err),
			Err:     err,
		}
	}

	if err := schema.Validate(data, c.outputSchema); err != nil {
		return &Error{
			Cell:    c.role,
			Code:    CodeValidation,
			Message: fmt.Sprintf("output validation failed: %v", err),
			Details: err,
			Err:     err,
		}
	}

	return nil
}

// Run executes the cell and folds the outcome into the serialized Response
// envelope. The returned error is reserved for envelope serialization
// failures; validation and execution failures travel inside the envelope.
func (c *Cell[I, O]) Run(ctx context.Context, raw []byte) ([]byte, error) {
	resp := Response{Type: ResponseSuccess}

	output, err := c.Execute(ctx, raw)
	if err != nil {
		resp.Type = ResponseError
		resp.Content = marshalError(c.role, err)
	} else {
		content, mErr := json.Marshal(output)
		if mErr != nil {
			return nil, fmt.Errorf("cell %s: marshal output: %w", c.role, mErr)
		}
		resp.Content = content
	}

	encoded, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("cell %s: marshal response: %w", c.role, err)
	}

	return encoded, nil
}

func marshalError(role string, err error) json.RawMessage {
	var cellErr *Error
	if !errors.As(err, &cellErr) {
		cellErr = &Error{Cell: role, Code: CodeExecution, Message: err.Error()}
	}

	encoded, mErr := json.Marshal(cellErr)
	if mErr != nil {
		// Details may carry unserializable context; fall back to the message.
		encoded, _ = json.Marshal(&Error{Cell: cellErr.Cell, Code: cellErr.Code, Message: cellErr.Message})
	}

	return encoded
}

// Outcome carries the result of an asynchronous execution.
type Outcome[O any] struct {
	Output O
	Err    error
}

// Go runs Execute on a new goroutine and delivers the outcome on the
// returned channel. It is a convenience for hosts that multiplex many
// in-flight executions; Execute remains the canonical entry point.
func (c *Cell[I, O]) Go(ctx context.Context, raw []byte) <-chan Outcome[O] {
	out := make(chan Outcome[O], 1)

	go func() {
		defer close(out)
		output, err := c.Execute(ctx, raw)
		out <- Outcome[O]{Output: output, Err: err}
	}()

	return out
}
