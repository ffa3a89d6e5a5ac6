// Package kinkernel defines the contract for building self-describing,
// independently deployable units of computation (cells) that a hosting
// agent platform can discover, introspect and invoke without knowing their
// internals. Most applications interact with the module through:
//
//  1. cell    - the generic Cell[I, O] execution unit: schema binding,
//     validation-wrapped execution, metadata and schema introspection
//  2. config  - the declarative environment surface resolved once at cell
//     construction
//  3. schema  - reflection-derived JSON schemas, structural validation and
//     $ref flattening
//  4. tool    - adapters exposing cells as OpenAI / Anthropic tools
//
// The kernel performs no discovery, networking or persistence; transport
// and lifecycle beyond construction and execution belong to the hosting
// platform.
package kinkernel

// Version is the kernel contract version.
const Version = "0.2.0"
