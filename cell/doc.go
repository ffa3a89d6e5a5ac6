// Package cell implements the generic execution unit of the kernel. A
// Cell[I, O] binds exactly one input and one output schema, carries static
// metadata (role, description), owns an optional resolved configuration and
// exposes a validation-wrapped execution entry point that a hosting
// platform can call without knowing the cell's internal logic.
//
// A cell author supplies role, description and a single handler function;
// schema derivation, input/output validation, error classification and the
// transport envelope are framework-provided and must not be reimplemented
// per cell.
package cell
