package trajectory

import (
	"fmt"
)

// ValidationError reports input that cannot describe a trajectory: too few
// waypoints, mismatched offset or control counts, unparsable required fields,
// non-positive speed and the like. No output is produced when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// IsValidationError marks the error for transport layers that map it to a
// client error without importing this package.
func (e *ValidationError) IsValidationError() bool { return true }

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports an offset-derived control point that strays
// further than the configured bound from its segment midpoint on some axis.
type ConfigurationError struct {
	// Segment is the index of the offending segment, -1 when unknown.
	Segment int
	Axis    string
	Delta   float64
	Bound   float64
}

func (e *ConfigurationError) Error() string {
	if e.Segment < 0 {
		return fmt.Sprintf("offset too large: axis %s deviates %g from midpoint (bound %g)", e.Axis, e.Delta, e.Bound)
	}
	return fmt.Sprintf("offset too large: segment %d axis %s deviates %g from midpoint (bound %g)", e.Segment, e.Axis, e.Delta, e.Bound)
}

// IsConfigurationError marks the error for transport layers.
func (e *ConfigurationError) IsConfigurationError() bool { return true }
