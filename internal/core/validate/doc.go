// Package validate implements the parameter gate for a synthesis run.
//
// This package contains the functional core logic for validating a
// StackConfig before any artifact is rendered. All functions are pure
// (no I/O, no side effects).
//
// Validation is two-tiered. A critical gate checks the fields without which
// further validation is meaningless (project name and the two secrets) and
// short-circuits with a single violation for the first missing one. Once all
// critical fields are present, every remaining rule runs and all applicable
// violations are collected together.
//
// # Functions
//
//   - Validate: Run both tiers over a StackConfig, returning ordered violations
//
// # Usage
//
// Callers gate rendering on an empty violation list:
//
//	if violations := validate.Validate(cfg); len(violations) > 0 {
//	    // Surface violations[0] as the blocking message
//	}
package validate
