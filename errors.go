package skygen

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching.
var (
	// ErrInvalidConfig matches every *ConfigError.
	ErrInvalidConfig = errors.New("skygen: invalid config")

	// ErrAllocation matches every *ResourceError.
	ErrAllocation = errors.New("skygen: surface allocation failed")
)

// ConfigError reports a configuration value rejected at construction.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("skygen: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ResourceError reports a surface allocation failure that aborted a
// generation pass. Nothing is published when it is returned.
type ResourceError struct {
	// Stage is the pipeline stage that failed ("brushes" or "composite").
	Stage string
	Err   error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("skygen: %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying allocation error.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrAllocation.
func (e *ResourceError) Is(target error) bool {
	return target == ErrAllocation
}
