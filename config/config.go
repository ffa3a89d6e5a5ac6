package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvVar declares a single environment-derived setting.
//
// A variable with no default must be supplied by the environment; Required
// only exists to force environment resolution for a variable that also
// carries a default.
type EnvVar struct {
	Key      string `json:"key"`
	Default  string `json:"default,omitempty"`
	Required bool   `json:"required,omitempty"`
}

// Require declares a variable that must be present in the environment.
func Require(key string) EnvVar {
	return EnvVar{Key: key, Required: true}
}

// Default declares a variable with a fallback used when the environment
// does not supply a value.
func Default(key, value string) EnvVar {
	return EnvVar{Key: key, Default: value}
}

// Model is the declarative configuration surface of a cell: an ordered list
// of EnvVar declarations. Order is declaration order and carries no meaning
// beyond readability.
type Model struct {
	Vars []EnvVar `json:"env_vars"`
}

// NewModel builds a Model from EnvVar declarations.
func NewModel(vars ...EnvVar) *Model {
	return &Model{Vars: vars}
}

// ResolutionError reports every declared key that could not be resolved,
// not just the first, so an operator can fix the full set in one pass.
type ResolutionError struct {
	Missing []string `json:"missing"`
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("config resolution failed: missing required environment variables: %s",
		strings.Join(e.Missing, ", "))
}

// Resolve reads the process environment once and produces an immutable
// Config. For each declared variable the environment value wins over the
// declared default; a variable with neither fails resolution. All failures
// are reported together in a *ResolutionError.
func (m *Model) Resolve() (*Config, error) {
	k := koanf.New(".")

	declared := make(map[string]bool, len(m.Vars))
	for _, v := range m.Vars {
		declared[v.Key] = true
		if !v.Required && v.Default != "" {
			k.Set(v.Key, v.Default)
		}
	}

	// Single pass over the environment; undeclared keys are skipped by
	// returning "" from the transform callback.
	if err := k.Load(env.Provider("", ".", func(s string) string {
		if declared[s] {
			return s
		}
		return ""
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var missing []string
	values := make(map[string]string, len(m.Vars))
	keys := make([]string, 0, len(m.Vars))

	for _, v := range m.Vars {
		if !k.Exists(v.Key) {
			missing = append(missing, v.Key)
			continue
		}
		if _, seen := values[v.Key]; seen {
			continue
		}
		values[v.Key] = k.String(v.Key)
		keys = append(keys, v.Key)
	}

	if len(missing) > 0 {
		return nil, &ResolutionError{Missing: missing}
	}

	return &Config{keys: keys, values: values}, nil
}

// Config is the resolved, immutable configuration of a cell. The
// environment is never re-read after Resolve, so the effective
// configuration is fixed for the lifetime of the owning cell.
type Config struct {
	keys   []string
	values map[string]string
}

// Get returns the resolved value for key, or "" when the key was not
// declared.
func (c *Config) Get(key string) string {
	return c.values[key]
}

// Lookup returns the resolved value for key and whether it was declared.
func (c *Config) Lookup(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Keys returns the resolved keys in declaration order.
func (c *Config) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// All returns a copy of the resolved key/value mapping.
func (c *Config) All() map[string]string {
	out := make(map[string]string, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}
