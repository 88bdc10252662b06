package secrets

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vishnuprabha404/passquarium/ccc/db"
)

type SecretRecordRepository interface {
	Create(ctx context.Context, record *SecretRecord) error
	GetByID(ctx context.Context, id string) (*SecretRecord, error)
	GetByAccount(ctx context.Context, accountID string) ([]*SecretRecord, error)
	Update(ctx context.Context, record *SecretRecord) error
	Delete(ctx context.Context, id string) error
}

// SQLiteSecretRecordRepository implements SecretRecordRepository using SQLite
type SQLiteSecretRecordRepository struct {
	db *sql.DB
}

// NewSQLiteSecretRecordRepository creates a new SQLite-based SecretRecordRepository
func NewSQLiteSecretRecordRepository(database *sql.DB) (*SQLiteSecretRecordRepository, error) {
	repo := &SQLiteSecretRecordRepository{db: database}
	if err := repo.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return repo, nil
}

// createTables ensures that the required tables exist
func (r *SQLiteSecretRecordRepository) createTables() error {
	createSecretsTable := `
	CREATE TABLE IF NOT EXISTS secrets (
		id TEXT PRIMARY KEY,
		account_id TEXT NOT NULL,
		site TEXT NOT NULL,
		username TEXT NOT NULL,
		encrypted_password TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_secrets_account_id ON secrets(account_id);`

	_, err := r.db.Exec(createSecretsTable)
	return err
}

// Create adds a new secret record to the repository
func (r *SQLiteSecretRecordRepository) Create(ctx context.Context, record *SecretRecord) error {
	query := `
	INSERT INTO secrets (id, account_id, site, username, encrypted_password, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.AccountID, record.Site, record.Username, record.EncryptedPassword,
		db.TimeToString(record.CreatedAt), db.TimeToString(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create secret record: %w", err)
	}

	return nil
}

// GetByID retrieves a secret record by its ID
// Returns nil if no record exists (this is not an error)
func (r *SQLiteSecretRecordRepository) GetByID(ctx context.Context, id string) (*SecretRecord, error) {
	query := `
	SELECT id, account_id, site, username, encrypted_password, created_at, updated_at
	FROM secrets WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)

	record, err := scanSecretRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // No record found, not an error
		}
		return nil, fmt.Errorf("failed to get secret record: %w", err)
	}

	return record, nil
}

// GetByAccount retrieves all secret records belonging to the account,
// ordered by creation time
func (r *SQLiteSecretRecordRepository) GetByAccount(ctx context.Context, accountID string) ([]*SecretRecord, error) {
	query := `
	SELECT id, account_id, site, username, encrypted_password, created_at, updated_at
	FROM secrets WHERE account_id = ?
	ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query secret records: %w", err)
	}
	defer rows.Close()

	records := make([]*SecretRecord, 0)
	for rows.Next() {
		record, err := scanSecretRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan secret record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate secret records: %w", err)
	}

	return records, nil
}

// Update modifies an existing secret record in the repository
func (r *SQLiteSecretRecordRepository) Update(ctx context.Context, record *SecretRecord) error {
	query := `
	UPDATE secrets
	SET site = ?, username = ?, encrypted_password = ?, updated_at = ?
	WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		record.Site, record.Username, record.EncryptedPassword,
		db.TimeToString(record.UpdatedAt), record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update secret record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return NewSecretNotFoundError(record.ID)
	}

	return nil
}

// Delete removes a secret record from the repository
func (r *SQLiteSecretRecordRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM secrets WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete secret record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return NewSecretNotFoundError(id)
	}

	return nil
}

// scanner abstracts over sql.Row and sql.Rows for scanning
type scanner interface {
	Scan(dest ...any) error
}

func scanSecretRecord(row scanner) (*SecretRecord, error) {
	record := &SecretRecord{}
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&record.ID, &record.AccountID, &record.Site, &record.Username, &record.EncryptedPassword,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	record.CreatedAt, err = db.StringToTime(createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}

	record.UpdatedAt, err = db.StringToTime(updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at timestamp: %w", err)
	}

	return record, nil
}
