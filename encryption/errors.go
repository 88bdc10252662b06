package encryption

import (
	"errors"
	"fmt"
)

// DecryptionFailedError indicates that a ciphertext could not be decrypted
// with the provided key material. Because CBC carries no authentication tag,
// this error covers the failures the mode can detect, not every tampering.
type DecryptionFailedError struct {
	Reason string
}

func (e *DecryptionFailedError) Error() string {
	return fmt.Sprintf("decryption failed: %s", e.Reason)
}

// KeyDerivationError indicates that a key could not be derived from the
// provided secret and salt.
type KeyDerivationError struct {
	Reason string
}

func (e *KeyDerivationError) Error() string {
	return fmt.Sprintf("key derivation failed: %s", e.Reason)
}

// helper functions for error handling
func IsDecryptionFailedError(err error) bool {
	var target *DecryptionFailedError
	return errors.As(err, &target)
}
func IsKeyDerivationError(err error) bool {
	var target *KeyDerivationError
	return errors.As(err, &target)
}

// factory functions for encryption-related errors
func NewDecryptionFailedError(reason string) error {
	return &DecryptionFailedError{Reason: reason}
}
func NewKeyDerivationError(reason string) error {
	return &KeyDerivationError{Reason: reason}
}
