// Package migration rewrites stored secrets from the legacy
// master-password-derived format to the current vault-key format.
package migration

import (
	"context"
	"time"

	"github.com/vishnuprabha404/passquarium/ccc/logging"
	"github.com/vishnuprabha404/passquarium/secrets"
)

// Result reports what a migration run did. Migrated counts legacy secrets
// rewritten to the current format, Skipped counts legacy secrets that could
// not be migrated and were left untouched. Secrets already in the current
// format appear in neither count, so a re-run over a fully migrated vault
// reports zero for both.
type Result struct {
	Migrated int
	Skipped  int
}

// Engine migrates all secrets of an account to the current format.
type Engine interface {
	// MigrateAccount rewrites every legacy secret of the account using the
	// provided master password to decrypt and the vault key to re-encrypt.
	// The run is best-effort: a secret that fails to decrypt, re-encrypt or
	// persist is counted as skipped and the run continues. Only a failure to
	// list the account's secrets aborts the run.
	MigrateAccount(ctx context.Context, accountID, masterPassword string, vaultKey []byte) (*Result, error)
}

type engine struct {
	logger logging.Logger
	repo   secrets.SecretRecordRepository
	codec  secrets.Codec
}

// NewEngine creates a new migration engine.
func NewEngine(logger logging.Logger, repo secrets.SecretRecordRepository, codec secrets.Codec) *engine {

	if logger == nil {
		logger = logging.NopLogger
	}

	return &engine{
		logger: logger,
		repo:   repo,
		codec:  codec,
	}
}

func (e *engine) MigrateAccount(ctx context.Context, accountID, masterPassword string, vaultKey []byte) (*Result, error) {
	e.logger.Info("Starting secret migration", "account_id", accountID)

	records, err := e.repo.GetByAccount(ctx, accountID)
	if err != nil {
		e.logger.Error("Failed to list secrets for migration", "account_id", accountID, "error", err)
		return nil, err
	}

	result := &Result{}

	for _, record := range records {
		if e.codec.DetectFormat(record.EncryptedPassword) != secrets.FormatLegacy {
			continue
		}

		plaintext, err := e.codec.DecodeLegacy(record.EncryptedPassword, masterPassword)
		if err != nil {
			result.Skipped++
			e.logger.Warn("Skipping secret that could not be decrypted", "secret_id", record.ID, "error", err)
			continue
		}

		blob, err := e.codec.EncodeCurrent(plaintext, vaultKey)
		if err != nil {
			result.Skipped++
			e.logger.Warn("Skipping secret that could not be re-encrypted", "secret_id", record.ID, "error", err)
			continue
		}

		record.EncryptedPassword = blob
		record.UpdatedAt = time.Now().UTC()

		if err := e.repo.Update(ctx, record); err != nil {
			result.Skipped++
			e.logger.Warn("Skipping secret that could not be persisted", "secret_id", record.ID, "error", err)
			continue
		}

		result.Migrated++
	}

	e.logger.Info("Finished secret migration", "account_id", accountID, "migrated", result.Migrated, "skipped", result.Skipped)

	return result, nil
}
