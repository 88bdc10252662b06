package secrets

import (
	"errors"
	"fmt"
)

// InvalidFormatError indicates that a stored blob does not match the layout
// the caller asked for, or any known layout at all.
type InvalidFormatError struct {
	Reason string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid secret format: %s", e.Reason)
}

// SecretNotFoundError indicates that no secret record exists for the given ID.
type SecretNotFoundError struct {
	ID string
}

func (e *SecretNotFoundError) Error() string {
	return fmt.Sprintf("secret not found: %s", e.ID)
}

// helper functions for error handling
func IsInvalidFormatError(err error) bool {
	var target *InvalidFormatError
	return errors.As(err, &target)
}
func IsSecretNotFoundError(err error) bool {
	var target *SecretNotFoundError
	return errors.As(err, &target)
}

// factory functions for secret-related errors
func NewInvalidFormatError(reason string) error {
	return &InvalidFormatError{Reason: reason}
}
func NewSecretNotFoundError(id string) error {
	return &SecretNotFoundError{ID: id}
}
