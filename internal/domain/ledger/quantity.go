package ledger

import (
	"github.com/NehaS05/NYRApi-sub000/internal/domain/shared"
)

// Error codes raised by quantity rules
const (
	CodeInsufficientQuantity = "INSUFFICIENT_QUANTITY"
	CodeNegativeQuantity     = "NEGATIVE_QUANTITY"
	CodeInvalidQuantity      = "INVALID_QUANTITY"
)

var (
	ErrInsufficientQuantity = shared.NewDomainError(CodeInsufficientQuantity, "Insufficient quantity available")
	ErrNegativeQuantity     = shared.NewDomainError(CodeNegativeQuantity, "Quantity cannot become negative")
	ErrInvalidQuantity      = shared.NewDomainError(CodeInvalidQuantity, "Quantity must be greater than zero")
)

// ValidateDelta rejects non-positive movement sizes
func ValidateDelta(delta int64) error {
	if delta <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Increment returns current + delta
func Increment(current, delta int64) (int64, error) {
	if err := ValidateDelta(delta); err != nil {
		return current, err
	}
	return current + delta, nil
}

// Decrement returns current - delta, failing when that would drop below zero
func Decrement(current, delta int64) (int64, error) {
	if err := ValidateDelta(delta); err != nil {
		return current, err
	}
	if current < delta {
		return current, shared.NewDomainErrorf(CodeInsufficientQuantity,
			"Insufficient quantity: available %d, requested %d", current, delta)
	}
	return current - delta, nil
}

// Adjust applies a signed delta, failing when the result would cross zero.
// A zero delta is a no-op.
func Adjust(current, signedDelta int64) (int64, error) {
	next := current + signedDelta
	if next < 0 {
		return current, shared.NewDomainErrorf(CodeNegativeQuantity,
			"Quantity cannot be negative: current %d, change %d", current, signedDelta)
	}
	return next, nil
}

// Insufficient builds the error for a failed decrement against key
func Insufficient(key Key, available, requested int64) error {
	return shared.NewDomainErrorf(CodeInsufficientQuantity,
		"Insufficient quantity in %s: available %d, requested %d", key.Pool, available, requested)
}
