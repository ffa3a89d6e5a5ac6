// Package config declares a cell's environment-derived configuration
// surface. A Model lists EnvVar declarations (key, optional default,
// required-ness); Resolve reads the process environment exactly once and
// yields an immutable Config, or a ResolutionError naming every missing
// required key.
package config
