package domain

import (
	"errors"
	"strings"
)

var (
	ErrOrderNotFound = errors.New("order not found")

	ErrInvalidOrder         = errors.New("invalid order")
	ErrEmptyOrder           = errors.New("order must contain at least one item")
	ErrInvalidPaymentMethod = errors.New("payment method must be one of credit_card, paypal, stripe")

	// ErrSizeUnavailable means the product does not offer the requested size.
	ErrSizeUnavailable = errors.New("size not available")

	// ErrInsufficientStock means fewer units are in stock than were ordered.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// FieldViolation names one invalid request field.
type FieldViolation struct {
	Field       string
	Description string
}

// ValidationError lists every invalid field of an order request.
// It matches ErrInvalidOrder with errors.Is.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Description)
	}
	return "invalid order: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidOrder
}

func (e *ValidationError) add(field, desc string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Description: desc})
}

func (e *ValidationError) orNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}
