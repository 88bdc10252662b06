package vault

import (
	"time"
)

// Account holds the per-account key material of the two-tier scheme. The
// vault key itself never appears here in the clear: it is stored wrapped
// under a key derived from the master password, next to the salt and IV
// needed to repeat that derivation. All binary fields are base64-encoded
// for storage.
type Account struct {
	ID string
	// Salt is the KDF salt for deriving the master key from the password
	Salt string
	// VaultKeyIV is the IV that was used when wrapping the vault key
	VaultKeyIV string
	// EncryptedVaultKey is the vault key, encrypted under the master key
	EncryptedVaultKey string
	// VerificationHash is the password verification artifact checked before
	// an unlock is attempted
	VerificationHash string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
