package vault

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/vishnuprabha404/passquarium/ccc/auth"
	"github.com/vishnuprabha404/passquarium/ccc/logging"
	"github.com/vishnuprabha404/passquarium/encryption"
)

// KeyManager owns the lifecycle of the per-account vault key: generating and
// wrapping it at account setup, unwrapping it into the session on unlock and
// dropping it again on lock. The master password is only ever held for the
// duration of a call; what survives between calls is the unwrapped vault key.
type KeyManager interface {
	// InitializeAccount provisions key material for a new account: a fresh
	// KDF salt, a fresh random vault key wrapped under the derived master
	// key, and the password verification hash. It refuses to overwrite an
	// existing account.
	InitializeAccount(ctx context.Context, accountID string, masterPassword string) (*Account, error)
	// Unlock unwraps the account's vault key with the given master password
	// and caches it for the session
	Unlock(ctx context.Context, accountID string, masterPassword string) error
	// Lock discards the session vault key
	Lock()
	// IsUnlocked reports whether a vault key is currently cached
	IsUnlocked() bool
	// VaultKey returns a copy of the session vault key
	VaultKey() ([]byte, error)
	// ChangeMasterPassword re-wraps the vault key under a new master
	// password. The vault key itself does not change, so stored secrets
	// remain readable without re-encryption.
	ChangeMasterPassword(ctx context.Context, accountID string, oldPassword, newPassword string) (*Account, error)
}

type keyManager struct {
	logger         logging.Logger
	repo           AccountRepository
	deriver        encryption.KeyDeriver
	cipher         encryption.Cipher
	random         encryption.RandomSource
	failureTracker auth.FailureTracker

	mu        sync.RWMutex
	accountID string
	vaultKey  []byte
}

func NewKeyManager(logger logging.Logger, repo AccountRepository, deriver encryption.KeyDeriver, cipher encryption.Cipher, random encryption.RandomSource, failureTracker auth.FailureTracker) *keyManager {

	if logger == nil {
		logger = logging.NopLogger
	}
	if failureTracker == nil {
		failureTracker = auth.NopFailureTracker
	}

	return &keyManager{
		logger:         logger,
		repo:           repo,
		deriver:        deriver,
		cipher:         cipher,
		random:         random,
		failureTracker: failureTracker,
	}
}

func (m *keyManager) InitializeAccount(ctx context.Context, accountID string, masterPassword string) (*Account, error) {
	m.logger.Info("Initializing vault account", "account_id", accountID)

	// Initialization must never clobber existing key material: overwriting
	// the wrapped vault key would orphan every stored secret.
	existing, err := m.repo.GetByID(ctx, accountID)
	if err != nil {
		m.logger.Error("Failed to check for existing account", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}
	if existing != nil {
		m.logger.Error("Account already initialized", "account_id", accountID)
		return nil, NewAccountAlreadyExistsError(accountID)
	}

	salt, err := m.random.Bytes(encryption.SaltLength)
	if err != nil {
		m.logger.Error("Failed to generate KDF salt", "error", err)
		return nil, err
	}

	masterKey, err := m.deriver.DeriveKey([]byte(masterPassword), salt)
	if err != nil {
		m.logger.Error("Failed to derive master key", "error", err)
		return nil, err
	}

	// Generate the vault key, the actual data encryption key
	vaultKey, err := m.random.Bytes(encryption.KeyLength)
	if err != nil {
		m.logger.Error("Failed to generate vault key", "error", err)
		return nil, err
	}

	iv, err := m.random.Bytes(encryption.IVLength)
	if err != nil {
		m.logger.Error("Failed to generate IV for vault key wrapping", "error", err)
		return nil, err
	}

	wrapped, err := m.cipher.Encrypt(vaultKey, masterKey, iv)
	if err != nil {
		m.logger.Error("Failed to wrap vault key", "error", err)
		return nil, err
	}

	now := time.Now().UTC()

	account := &Account{
		ID:                accountID,
		Salt:              base64.StdEncoding.EncodeToString(salt),
		VaultKeyIV:        base64.StdEncoding.EncodeToString(iv),
		EncryptedVaultKey: base64.StdEncoding.EncodeToString(wrapped),
		VerificationHash:  base64.StdEncoding.EncodeToString(MakeVerificationHash(masterPassword)),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := m.repo.Create(ctx, account); err != nil {
		m.logger.Error("Failed to create account in repository", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	m.logger.Info("Vault account initialized", "account_id", accountID)
	return account, nil
}

func (m *keyManager) Unlock(ctx context.Context, accountID string, masterPassword string) error {
	m.logger.Info("Unlocking vault", "account_id", accountID)

	now := time.Now().UTC()
	if m.failureTracker.ShouldLockOut(m.failureTracker.FailureCount(accountID, now)) {
		m.logger.Warn("Unlock refused due to repeated failures", "account_id", accountID)
		return NewTooManyUnlockAttemptsError(accountID)
	}

	vaultKey, err := m.unwrapVaultKey(ctx, accountID, masterPassword)
	if err != nil {
		count := m.failureTracker.RecordFailure(accountID, time.Now().UTC())
		m.logger.Warn("Vault unlock failed", "account_id", accountID, "recent_failures", count)
		return NewUnlockFailedError(err)
	}

	m.failureTracker.ClearFailures(accountID)

	m.mu.Lock()
	m.accountID = accountID
	m.vaultKey = vaultKey
	m.mu.Unlock()

	m.logger.Info("Vault unlocked", "account_id", accountID)
	return nil
}

func (m *keyManager) Lock() {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Wipe the cached key before dropping it. Copies handed out by VaultKey
	// stay valid; only future calls are affected.
	for i := range m.vaultKey {
		m.vaultKey[i] = 0
	}
	m.vaultKey = nil
	m.accountID = ""

	m.logger.Info("Vault locked")
}

func (m *keyManager) IsUnlocked() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.vaultKey != nil
}

func (m *keyManager) VaultKey() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.vaultKey == nil {
		return nil, NewVaultLockedError()
	}

	// Return a copy so a later Lock cannot zero a slice the caller holds
	key := make([]byte, len(m.vaultKey))
	copy(key, m.vaultKey)
	return key, nil
}

func (m *keyManager) ChangeMasterPassword(ctx context.Context, accountID string, oldPassword, newPassword string) (*Account, error) {
	m.logger.Info("Changing master password", "account_id", accountID)

	account, err := m.repo.GetByID(ctx, accountID)
	if err != nil {
		m.logger.Error("Failed to load account", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account == nil {
		m.logger.Error("No account found to update", "account_id", accountID)
		return nil, NewAccountNotFoundError(accountID)
	}

	// Unwrap the vault key with the old password. A wrong old password
	// surfaces as the same opaque error as a failed unlock.
	vaultKey, err := m.unwrapVaultKey(ctx, accountID, oldPassword)
	if err != nil {
		m.logger.Warn("Failed to unwrap vault key with old password", "account_id", accountID)
		return nil, NewUnlockFailedError(err)
	}

	// Re-wrap the same vault key under the new password with fresh salt and IV
	newSalt, err := m.random.Bytes(encryption.SaltLength)
	if err != nil {
		m.logger.Error("Failed to generate new KDF salt", "error", err)
		return nil, err
	}

	newMasterKey, err := m.deriver.DeriveKey([]byte(newPassword), newSalt)
	if err != nil {
		m.logger.Error("Failed to derive key from new password", "error", err)
		return nil, err
	}

	newIV, err := m.random.Bytes(encryption.IVLength)
	if err != nil {
		m.logger.Error("Failed to generate new IV for vault key wrapping", "error", err)
		return nil, err
	}

	wrapped, err := m.cipher.Encrypt(vaultKey, newMasterKey, newIV)
	if err != nil {
		m.logger.Error("Failed to re-wrap vault key", "error", err)
		return nil, err
	}

	account.Salt = base64.StdEncoding.EncodeToString(newSalt)
	account.VaultKeyIV = base64.StdEncoding.EncodeToString(newIV)
	account.EncryptedVaultKey = base64.StdEncoding.EncodeToString(wrapped)
	account.VerificationHash = base64.StdEncoding.EncodeToString(MakeVerificationHash(newPassword))
	account.UpdatedAt = time.Now().UTC()

	if err := m.repo.Update(ctx, account); err != nil {
		m.logger.Error("Failed to update account in repository", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	m.logger.Info("Master password changed", "account_id", accountID)
	return account, nil
}

// unwrapVaultKey decrypts the stored vault key with a key derived from the
// master password. Callers wrap any failure into the single opaque unlock
// error; the distinct causes stay available through errors.As.
func (m *keyManager) unwrapVaultKey(ctx context.Context, accountID string, masterPassword string) ([]byte, error) {
	account, err := m.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, NewAccountNotFoundError(accountID)
	}

	salt, err := base64.StdEncoding.DecodeString(account.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored salt: %w", err)
	}

	iv, err := base64.StdEncoding.DecodeString(account.VaultKeyIV)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored IV: %w", err)
	}

	wrapped, err := base64.StdEncoding.DecodeString(account.EncryptedVaultKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode wrapped vault key: %w", err)
	}

	masterKey, err := m.deriver.DeriveKey([]byte(masterPassword), salt)
	if err != nil {
		return nil, err
	}

	vaultKey, err := m.cipher.Decrypt(wrapped, masterKey, iv)
	if err != nil {
		return nil, err
	}

	// A wrong password can slip past the padding check; the length check
	// catches what the cipher cannot
	if len(vaultKey) != encryption.KeyLength {
		return nil, encryption.NewDecryptionFailedError("unwrapped vault key has unexpected length")
	}

	return vaultKey, nil
}
