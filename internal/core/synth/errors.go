package synth

import "fmt"

// ValidationError aborts a synthesis run when the configuration breaks one
// or more rules. Violations keep the validator's order, so the first entry
// is the message to surface when reporting one problem at a time.
type ValidationError struct {
	Violations []error
}

// Error returns the first violation, with a count of the rest when more
// rules failed.
func (e *ValidationError) Error() string {
	switch len(e.Violations) {
	case 0:
		return "configuration is invalid"
	case 1:
		return e.Violations[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", e.Violations[0], len(e.Violations)-1)
	}
}

// Unwrap exposes the individual violations so errors.Is and errors.As can
// match the validation sentinels through the pipeline error.
func (e *ValidationError) Unwrap() []error {
	return e.Violations
}
