package scenario

import "fmt"

// ConfigurationError reports an input that fails eager validation at the
// synthesis/classification boundary. Downstream components trust
// already-validated inputs and do not re-check.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// Configf builds a ConfigurationError for the named field.
func Configf(field, format string, args ...interface{}) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// StateError reports a control call that is invalid for the controller's
// current state (e.g. Step before Start).
type StateError struct {
	Op    string
	State string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state error: cannot %s while %s", e.Op, e.State)
}
