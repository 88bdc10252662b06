package vault

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"github.com/vishnuprabha404/passquarium/ccc/logging"
)

// verificationSalt is the fixed application-wide constant mixed into the
// password verification hash. It is deliberately not per-account: the hash is
// a fast pre-unlock gate for user feedback and must not be mistaken for the
// key protection, which uses the per-account KDF salt and iteration count.
const verificationSalt = "passquarium/verification/v1"

// MakeVerificationHash computes the stored verification artifact for a
// master password: SHA-256 over the password followed by a fixed constant.
func MakeVerificationHash(masterPassword string) []byte {
	hasher := sha256.New()
	hasher.Write([]byte(masterPassword))
	hasher.Write([]byte(verificationSalt))
	return hasher.Sum(nil)
}

// CheckVerificationHash reports whether the candidate password matches the
// stored artifact, using a constant time comparison.
func CheckVerificationHash(stored []byte, candidate string) bool {
	computed := MakeVerificationHash(candidate)
	return subtle.ConstantTimeCompare(stored, computed) == 1
}

// AccountVerifier checks candidate master passwords against the stored
// verification hash, without touching the wrapped vault key. A positive
// result is a strong hint, not proof; only unwrapping the vault key proves
// the password.
type AccountVerifier interface {
	// VerifyMasterPassword reports whether the candidate password matches
	// the account's verification hash. A missing account reports false,
	// not an error, so the caller cannot distinguish the two cases.
	VerifyMasterPassword(ctx context.Context, accountID string, candidate string) (bool, error)
}

type accountVerifier struct {
	logger logging.Logger
	repo   AccountRepository
}

// NewAccountVerifier creates a new AccountVerifier instance
func NewAccountVerifier(logger logging.Logger, repo AccountRepository) *accountVerifier {

	if logger == nil {
		logger = logging.NopLogger
	}

	return &accountVerifier{
		logger: logger,
		repo:   repo,
	}
}

func (v *accountVerifier) VerifyMasterPassword(ctx context.Context, accountID string, candidate string) (bool, error) {
	account, err := v.repo.GetByID(ctx, accountID)
	if err != nil {
		v.logger.Error("Failed to load account for verification", "account_id", accountID, "error", err)
		return false, fmt.Errorf("failed to load account: %w", err)
	}
	if account == nil {
		v.logger.Debug("Verification requested for unknown account", "account_id", accountID)
		return false, nil
	}

	stored, err := base64.StdEncoding.DecodeString(account.VerificationHash)
	if err != nil {
		// A corrupted hash reads as a mismatch; the unlock path surfaces the
		// real problem
		v.logger.Warn("Stored verification hash is not valid base64", "account_id", accountID)
		return false, nil
	}

	return CheckVerificationHash(stored, candidate), nil
}
