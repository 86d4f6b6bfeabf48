// Package common defines sentinel errors shared by the Fintrack client
// packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Entitlement errors.
	ErrLimitReached = errors.New("free card limit reached")

	// Validation errors raised by the add/edit flows.
	ErrInvalidCard = errors.New("invalid card")
)
