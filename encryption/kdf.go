package encryption

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

// KDFIterations is the fixed PBKDF2 iteration count. It is deliberately not
// configurable: deriving with a different cost produces a different key, so
// changing this value would orphan every wrapped vault key already stored.
const KDFIterations = 100000

// KeyDeriver derives symmetric encryption keys from a user secret
type KeyDeriver interface {
	// DeriveKey derives an encryption key from the given secret and salt
	DeriveKey(secret []byte, salt []byte) ([]byte, error)
}

// PBKDF2KeyDeriver implements KeyDeriver using PBKDF2-HMAC-SHA256
type PBKDF2KeyDeriver struct{}

// NewPBKDF2KeyDeriver creates a new PBKDF2KeyDeriver instance
func NewPBKDF2KeyDeriver() *PBKDF2KeyDeriver {
	return &PBKDF2KeyDeriver{}
}

// DeriveKey derives a 32-byte key from the secret and salt. The salt must not
// be empty. An empty secret is accepted; rejecting empty master passwords is
// the input boundary's job, and the derivation itself is well defined for it.
func (d *PBKDF2KeyDeriver) DeriveKey(secret []byte, salt []byte) ([]byte, error) {
	if len(salt) == 0 {
		return nil, NewKeyDerivationError("salt cannot be empty")
	}

	return pbkdf2.Key(secret, salt, KDFIterations, KeyLength, sha256.New), nil
}
