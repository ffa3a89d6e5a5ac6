// Package schema derives JSON-Schema-like structural descriptions from Go
// struct types and validates untyped JSON data against them. It is the
// structural contract surface for cells: input and output schemas are built
// here once at cell construction, validation runs at both execution
// boundaries, and ResolveRefs flattens externally authored schemas before
// they are exported to LLM tool formats.
package schema
