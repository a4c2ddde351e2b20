package orders

import "fmt"

// ValidationError covers malformed or incomplete caller input, including a
// signature mismatch. Maps to HTTP 400.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError covers an unknown order reference. Maps to HTTP 404.
type NotFoundError struct{ Msg string }

func (e *NotFoundError) Error() string { return e.Msg }

// ConfigurationError covers a missing payment gateway client. Maps to HTTP 500.
type ConfigurationError struct{ Msg string }

func (e *ConfigurationError) Error() string { return e.Msg }

// DependencyError wraps a gateway or persistence failure. The caller sees a
// generic message; the wrapped cause goes to the server log only.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *DependencyError) Unwrap() error { return e.Err }
