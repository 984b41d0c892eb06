// Package validation provides common validation utilities for configuration
// parameters and inputs across matflow.
//
// Every helper returns a *errors.ValidationError so callers can test for
// errors.ErrInvalidConfiguration regardless of which check failed.
package validation
