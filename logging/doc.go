// Package logging provides a tiny abstraction over slog so kernel code can
// depend on a minimal interface (Logger) while allowing hosts to plug any
// structured logger.
package logging
