package secrets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vishnuprabha404/passquarium/ccc/logging"
)

// decryptWorkers bounds the fan-out when decrypting a batch of records
const decryptWorkers = 5

// SecretService stores and retrieves credentials. The session vault key is
// passed explicitly into every call that touches plaintext; the service
// itself holds no key state, so locking the vault immediately cuts off new
// operations.
type SecretService interface {
	// StoreSecret encrypts the password and persists a new record for the account
	StoreSecret(ctx context.Context, accountID, site, username, password string, vaultKey []byte) (*SecretRecord, error)
	// GetSecret retrieves and decrypts a single record
	GetSecret(ctx context.Context, id string, vaultKey []byte) (*DecryptedSecret, error)
	// GetSecrets retrieves and decrypts all records of the account. Records
	// that cannot be decrypted are skipped, not fatal.
	GetSecrets(ctx context.Context, accountID string, vaultKey []byte) ([]*DecryptedSecret, error)
	// UpdateSecret re-encrypts and updates an existing record
	UpdateSecret(ctx context.Context, id, site, username, password string, vaultKey []byte) (*SecretRecord, error)
	// DeleteSecret removes a record
	DeleteSecret(ctx context.Context, id string) error
}

type secretService struct {
	logger logging.Logger
	repo   SecretRecordRepository
	codec  Codec
}

func NewSecretService(logger logging.Logger, repo SecretRecordRepository, codec Codec) *secretService {

	if logger == nil {
		logger = logging.NopLogger
	}

	return &secretService{
		logger: logger,
		repo:   repo,
		codec:  codec,
	}
}

func (s *secretService) StoreSecret(ctx context.Context, accountID, site, username, password string, vaultKey []byte) (*SecretRecord, error) {
	s.logger.Info("Storing secret", "account_id", accountID)

	blob, err := s.codec.EncodeCurrent([]byte(password), vaultKey)
	if err != nil {
		s.logger.Error("Failed to encrypt secret", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to encrypt secret: %w", err)
	}

	now := time.Now().UTC()
	record := &SecretRecord{
		ID:                uuid.NewString(),
		AccountID:         accountID,
		Site:              site,
		Username:          username,
		EncryptedPassword: blob,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.Error("Failed to create secret record", "secret_id", record.ID, "error", err)
		return nil, fmt.Errorf("failed to create secret record: %w", err)
	}

	s.logger.Info("Secret stored", "secret_id", record.ID, "account_id", accountID)
	return record, nil
}

func (s *secretService) GetSecret(ctx context.Context, id string, vaultKey []byte) (*DecryptedSecret, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get secret record", "secret_id", id, "error", err)
		return nil, fmt.Errorf("failed to get secret record: %w", err)
	}
	if record == nil {
		return nil, NewSecretNotFoundError(id)
	}

	return s.decryptRecord(record, vaultKey)
}

func (s *secretService) GetSecrets(ctx context.Context, accountID string, vaultKey []byte) ([]*DecryptedSecret, error) {
	records, err := s.repo.GetByAccount(ctx, accountID)
	if err != nil {
		s.logger.Error("Failed to query secret records", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to query secret records: %w", err)
	}

	// Fan the independent decryptions out over a bounded number of workers.
	// Each slot is written by exactly one goroutine, so the slice needs no
	// extra locking; failed records leave a nil slot behind.
	results := make([]*DecryptedSecret, len(records))
	sem := make(chan struct{}, decryptWorkers)
	var wg sync.WaitGroup

	for i, record := range records {
		wg.Add(1)
		go func(i int, record *SecretRecord) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			decrypted, err := s.decryptRecord(record, vaultKey)
			if err != nil {
				s.logger.Warn("Skipping secret that could not be decrypted", "secret_id", record.ID, "error", err)
				return
			}
			results[i] = decrypted
		}(i, record)
	}
	wg.Wait()

	decrypted := make([]*DecryptedSecret, 0, len(results))
	for _, d := range results {
		if d != nil {
			decrypted = append(decrypted, d)
		}
	}

	return decrypted, nil
}

func (s *secretService) UpdateSecret(ctx context.Context, id, site, username, password string, vaultKey []byte) (*SecretRecord, error) {
	s.logger.Info("Updating secret", "secret_id", id)

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get secret record", "secret_id", id, "error", err)
		return nil, fmt.Errorf("failed to get secret record: %w", err)
	}
	if record == nil {
		return nil, NewSecretNotFoundError(id)
	}

	blob, err := s.codec.EncodeCurrent([]byte(password), vaultKey)
	if err != nil {
		s.logger.Error("Failed to encrypt secret", "secret_id", id, "error", err)
		return nil, fmt.Errorf("failed to encrypt secret: %w", err)
	}

	record.Site = site
	record.Username = username
	record.EncryptedPassword = blob
	record.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, record); err != nil {
		s.logger.Error("Failed to update secret record", "secret_id", id, "error", err)
		return nil, fmt.Errorf("failed to update secret record: %w", err)
	}

	return record, nil
}

func (s *secretService) DeleteSecret(ctx context.Context, id string) error {
	s.logger.Info("Deleting secret", "secret_id", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete secret record", "secret_id", id, "error", err)
		return fmt.Errorf("failed to delete secret record: %w", err)
	}

	return nil
}

// decryptRecord decodes a record's password blob with the session vault key
func (s *secretService) decryptRecord(record *SecretRecord, vaultKey []byte) (*DecryptedSecret, error) {
	plaintext, err := s.codec.DecodeCurrent(record.EncryptedPassword, vaultKey)
	if err != nil {
		return nil, err
	}

	return &DecryptedSecret{
		ID:        record.ID,
		AccountID: record.AccountID,
		Site:      record.Site,
		Username:  record.Username,
		Password:  string(plaintext),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}, nil
}
