package vault

import (
	"errors"
	"fmt"
)

// UnlockFailedError indicates that the vault could not be unlocked with the
// provided master password. Every unlock failure collapses into this error
// with a single message, so callers cannot tell a missing account from a
// wrong password or corrupted key material. The underlying cause is kept for
// errors.As/errors.Is inspection, never for display.
type UnlockFailedError struct {
	Cause error
}

func (e *UnlockFailedError) Error() string {
	return "unable to unlock the vault with the provided master password"
}

func (e *UnlockFailedError) Unwrap() error {
	return e.Cause
}

// VaultLockedError indicates that an operation requiring the session vault
// key was attempted while the vault is locked.
type VaultLockedError struct {
}

func (e *VaultLockedError) Error() string {
	return "vault is locked"
}

// TooManyUnlockAttemptsError indicates that unlocking is temporarily refused
// because too many attempts failed within the lockout window.
type TooManyUnlockAttemptsError struct {
	AccountID string
}

func (e *TooManyUnlockAttemptsError) Error() string {
	return fmt.Sprintf("too many failed unlock attempts for account %s, try again later", e.AccountID)
}

// AccountNotFoundError indicates that no account exists for the given ID.
type AccountNotFoundError struct {
	ID string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account not found: %s", e.ID)
}

// AccountAlreadyExistsError indicates that an account with the given ID is
// already initialized.
type AccountAlreadyExistsError struct {
	ID string
}

func (e *AccountAlreadyExistsError) Error() string {
	return fmt.Sprintf("account already exists: %s", e.ID)
}

// helper functions for error handling
func IsUnlockFailedError(err error) bool {
	var target *UnlockFailedError
	return errors.As(err, &target)
}
func IsVaultLockedError(err error) bool {
	var target *VaultLockedError
	return errors.As(err, &target)
}
func IsTooManyUnlockAttemptsError(err error) bool {
	var target *TooManyUnlockAttemptsError
	return errors.As(err, &target)
}
func IsAccountNotFoundError(err error) bool {
	var target *AccountNotFoundError
	return errors.As(err, &target)
}
func IsAccountAlreadyExistsError(err error) bool {
	var target *AccountAlreadyExistsError
	return errors.As(err, &target)
}

// factory functions for vault-related errors
func NewUnlockFailedError(cause error) error {
	return &UnlockFailedError{Cause: cause}
}
func NewVaultLockedError() error {
	return &VaultLockedError{}
}
func NewTooManyUnlockAttemptsError(accountID string) error {
	return &TooManyUnlockAttemptsError{AccountID: accountID}
}
func NewAccountNotFoundError(id string) error {
	return &AccountNotFoundError{ID: id}
}
func NewAccountAlreadyExistsError(id string) error {
	return &AccountAlreadyExistsError{ID: id}
}
