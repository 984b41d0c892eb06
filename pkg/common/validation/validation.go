package validation

import (
	"fmt"

	mferrors "github.com/vnykmshr/matflow/pkg/common/errors"
)

// ValidatePositive validates that an integer value is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositive(module, field string, value int) error {
	if value <= 0 {
		return mferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateNonNegative validates that an integer value is non-negative (>= 0).
// Returns a ValidationError if the value is negative.
func ValidateNonNegative(module, field string, value int) error {
	if value < 0 {
		return mferrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive value")
	}
	return nil
}

// ValidateNotNil validates that an interface value is not nil.
// Typed nil pointers are not detected; check those at the call site.
func ValidateNotNil(module, field string, value interface{}) error {
	if value == nil {
		return mferrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return mferrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}

// ValidateDimensions validates that the inner dimensions of a matrix product
// agree. The returned error also wraps errors.ErrDimensionMismatch.
func ValidateDimensions(module string, leftCols, rightRows int) error {
	if leftCols != rightRows {
		return mferrors.NewValidationError(module, "right.rows", rightRows,
			fmt.Sprintf("must equal left.cols (%d)", leftCols)).
			WithHint("the left matrix needs as many columns as the right matrix has rows").
			WithCause(mferrors.ErrDimensionMismatch)
	}
	return nil
}
