package cell

import "context"

// Runner is the type-erased view of a Cell[I, O]. Hosting platforms and
// tool adapters hold heterogeneous cells through this interface: metadata
// and schema introspection without execution, plus the envelope entry
// point.
type Runner interface {
	// ID returns the unique instance identifier, assigned at construction.
	ID() string

	// Role returns the short classifier for the cell's function.
	Role() string

	// Description returns the human-readable description of the cell.
	Description() string

	// InputSchema returns the structural description of the input
	// contract. Callers must treat the returned map as read-only.
	InputSchema() map[string]any

	// OutputSchema returns the structural description of the output
	// contract. Callers must treat the returned map as read-only.
	OutputSchema() map[string]any

	// Run executes the cell against raw JSON input and returns the
	// serialized Response envelope. Validation and execution failures are
	// folded into the envelope; the returned error is reserved for
	// envelope serialization itself.
	Run(ctx context.Context, raw []byte) ([]byte, error)
}
