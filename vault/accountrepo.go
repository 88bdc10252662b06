package vault

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vishnuprabha404/passquarium/ccc/db"
)

type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id string) error
}

// SQLiteAccountRepository implements AccountRepository using SQLite
type SQLiteAccountRepository struct {
	db *sql.DB
}

// NewSQLiteAccountRepository creates a new SQLite-based AccountRepository
func NewSQLiteAccountRepository(database *sql.DB) (*SQLiteAccountRepository, error) {
	repo := &SQLiteAccountRepository{db: database}
	if err := repo.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return repo, nil
}

// createTables ensures that the required tables exist
func (r *SQLiteAccountRepository) createTables() error {
	createAccountTable := `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		salt TEXT NOT NULL,
		vault_key_iv TEXT NOT NULL,
		encrypted_vault_key TEXT NOT NULL,
		verification_hash TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`

	_, err := r.db.Exec(createAccountTable)
	return err
}

// Create adds a new account to the repository. It fails if an account with
// the same ID already exists.
func (r *SQLiteAccountRepository) Create(ctx context.Context, account *Account) error {
	existing, err := r.GetByID(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("failed to check for existing account: %w", err)
	}
	if existing != nil {
		return NewAccountAlreadyExistsError(account.ID)
	}

	query := `
	INSERT INTO accounts (id, salt, vault_key_iv, encrypted_vault_key, verification_hash, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		account.ID, account.Salt, account.VaultKeyIV, account.EncryptedVaultKey, account.VerificationHash,
		db.TimeToString(account.CreatedAt), db.TimeToString(account.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its ID
// Returns nil if no account exists (this is not an error)
func (r *SQLiteAccountRepository) GetByID(ctx context.Context, id string) (*Account, error) {
	query := `
	SELECT id, salt, vault_key_iv, encrypted_vault_key, verification_hash, created_at, updated_at
	FROM accounts WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)

	account := &Account{}
	var createdAtStr, updatedAtStr string
	err := row.Scan(
		&account.ID, &account.Salt, &account.VaultKeyIV, &account.EncryptedVaultKey, &account.VerificationHash,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No account found, not an error
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	// Convert string timestamps back to time.Time
	account.CreatedAt, err = db.StringToTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}

	account.UpdatedAt, err = db.StringToTime(updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}

	return account, nil
}

// Update modifies an existing account in the repository
func (r *SQLiteAccountRepository) Update(ctx context.Context, account *Account) error {
	query := `
	UPDATE accounts
	SET salt = ?, vault_key_iv = ?, encrypted_vault_key = ?, verification_hash = ?, updated_at = ?
	WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		account.Salt, account.VaultKeyIV, account.EncryptedVaultKey, account.VerificationHash,
		db.TimeToString(account.UpdatedAt), account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return NewAccountNotFoundError(account.ID)
	}

	return nil
}

// Delete removes an account from the repository
func (r *SQLiteAccountRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM accounts WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return NewAccountNotFoundError(id)
	}

	return nil
}
