package secrets

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vishnuprabha404/passquarium/ccc/logging"
)

// fakeSecretRepo is a slice-backed repository that preserves insertion order.
type fakeSecretRepo struct {
	records []*SecretRecord
}

func (f *fakeSecretRepo) Create(ctx context.Context, record *SecretRecord) error {
	clone := *record
	f.records = append(f.records, &clone)
	return nil
}

func (f *fakeSecretRepo) GetByID(ctx context.Context, id string) (*SecretRecord, error) {
	for _, record := range f.records {
		if record.ID == id {
			clone := *record
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeSecretRepo) GetByAccount(ctx context.Context, accountID string) ([]*SecretRecord, error) {
	var result []*SecretRecord
	for _, record := range f.records {
		if record.AccountID == accountID {
			clone := *record
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (f *fakeSecretRepo) Update(ctx context.Context, record *SecretRecord) error {
	for i, existing := range f.records {
		if existing.ID == record.ID {
			clone := *record
			f.records[i] = &clone
			return nil
		}
	}
	return NewSecretNotFoundError(record.ID)
}

func (f *fakeSecretRepo) Delete(ctx context.Context, id string) error {
	for i, existing := range f.records {
		if existing.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return NewSecretNotFoundError(id)
}

func newTestSecretService() (*secretService, *fakeSecretRepo, Codec) {
	repo := &fakeSecretRepo{}
	codec := newTestCodec()
	service := NewSecretService(logging.NopLogger, repo, codec)
	return service, repo, codec
}

func TestSecretService_StoreAndGetSecret(t *testing.T) {
	service, repo, codec := newTestSecretService()
	ctx := context.Background()
	vaultKey := testVaultKey()

	record, err := service.StoreSecret(ctx, "account-1", "example.com", "alice", "hunter2", vaultKey)
	require.NoError(t, err)
	require.NotNil(t, record)
	require.NotEmpty(t, record.ID)
	assert.Equal(t, "account-1", record.AccountID)
	assert.Equal(t, "example.com", record.Site)
	assert.Equal(t, "alice", record.Username)
	assert.False(t, record.CreatedAt.IsZero())

	// Only ciphertext reaches the repository
	require.Len(t, repo.records, 1)
	stored := repo.records[0]
	assert.NotContains(t, stored.EncryptedPassword, "hunter2")
	plaintext, err := codec.DecodeCurrent(stored.EncryptedPassword, vaultKey)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(plaintext))

	secret, err := service.GetSecret(ctx, record.ID, vaultKey)
	require.NoError(t, err)
	assert.Equal(t, record.ID, secret.ID)
	assert.Equal(t, "example.com", secret.Site)
	assert.Equal(t, "alice", secret.Username)
	assert.Equal(t, "hunter2", secret.Password)
}

func TestSecretService_StoreSecret_GeneratesUniqueIDs(t *testing.T) {
	service, _, _ := newTestSecretService()
	ctx := context.Background()
	vaultKey := testVaultKey()

	first, err := service.StoreSecret(ctx, "account-1", "example.com", "alice", "hunter2", vaultKey)
	require.NoError(t, err)
	second, err := service.StoreSecret(ctx, "account-1", "example.com", "alice", "hunter2", vaultKey)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestSecretService_GetSecret_NotFound(t *testing.T) {
	service, _, _ := newTestSecretService()

	_, err := service.GetSecret(context.Background(), "does-not-exist", testVaultKey())
	require.Error(t, err)
	assert.True(t, IsSecretNotFoundError(err))
}

func TestSecretService_GetSecrets(t *testing.T) {
	service, _, _ := newTestSecretService()
	ctx := context.Background()
	vaultKey := testVaultKey()

	var ids []string
	for i := 0; i < 8; i++ {
		record, err := service.StoreSecret(ctx, "account-1", fmt.Sprintf("site-%d.example.com", i), "alice", fmt.Sprintf("password-%02d", i), vaultKey)
		require.NoError(t, err)
		ids = append(ids, record.ID)
	}
	_, err := service.StoreSecret(ctx, "account-2", "other.example.com", "bob", "other-password", vaultKey)
	require.NoError(t, err)

	secrets, err := service.GetSecrets(ctx, "account-1", vaultKey)
	require.NoError(t, err)
	require.Len(t, secrets, 8)

	// Listing order matches storage order even though decryption fans out
	for i, secret := range secrets {
		assert.Equal(t, ids[i], secret.ID)
		assert.Equal(t, fmt.Sprintf("site-%d.example.com", i), secret.Site)
		assert.Equal(t, fmt.Sprintf("password-%02d", i), secret.Password)
	}
}

func TestSecretService_GetSecrets_Empty(t *testing.T) {
	service, _, _ := newTestSecretService()

	secrets, err := service.GetSecrets(context.Background(), "account-1", testVaultKey())
	require.NoError(t, err)
	assert.Empty(t, secrets)
}

func TestSecretService_GetSecrets_SkipsUndecryptable(t *testing.T) {
	service, repo, _ := newTestSecretService()
	ctx := context.Background()
	vaultKey := testVaultKey()

	first, err := service.StoreSecret(ctx, "account-1", "first.example.com", "alice", "first-password", vaultKey)
	require.NoError(t, err)
	_, err = service.StoreSecret(ctx, "account-1", "second.example.com", "alice", "second-password", vaultKey)
	require.NoError(t, err)
	third, err := service.StoreSecret(ctx, "account-1", "third.example.com", "alice", "third-password", vaultKey)
	require.NoError(t, err)

	// Corrupt the middle record; the other two must still come back
	repo.records[1].EncryptedPassword = "!!! not a valid blob !!!"

	secrets, err := service.GetSecrets(ctx, "account-1", vaultKey)
	require.NoError(t, err)
	require.Len(t, secrets, 2)
	assert.Equal(t, first.ID, secrets[0].ID)
	assert.Equal(t, "first-password", secrets[0].Password)
	assert.Equal(t, third.ID, secrets[1].ID)
	assert.Equal(t, "third-password", secrets[1].Password)
}

func TestSecretService_GetSecrets_ManyRecords(t *testing.T) {
	service, _, _ := newTestSecretService()
	ctx := context.Background()
	vaultKey := testVaultKey()

	// More records than decrypt workers
	const count = 20
	for i := 0; i < count; i++ {
		_, err := service.StoreSecret(ctx, "account-1", fmt.Sprintf("site-%02d.example.com", i), "alice", fmt.Sprintf("password-%02d", i), vaultKey)
		require.NoError(t, err)
	}

	secrets, err := service.GetSecrets(ctx, "account-1", vaultKey)
	require.NoError(t, err)
	require.Len(t, secrets, count)
	for i, secret := range secrets {
		assert.Equal(t, fmt.Sprintf("password-%02d", i), secret.Password)
	}
}

func TestSecretService_UpdateSecret(t *testing.T) {
	service, repo, codec := newTestSecretService()
	ctx := context.Background()
	vaultKey := testVaultKey()

	record, err := service.StoreSecret(ctx, "account-1", "example.com", "alice", "old password", vaultKey)
	require.NoError(t, err)

	updated, err := service.UpdateSecret(ctx, record.ID, "new.example.com", "alice2", "new password", vaultKey)
	require.NoError(t, err)
	assert.Equal(t, record.ID, updated.ID)
	assert.Equal(t, "new.example.com", updated.Site)
	assert.Equal(t, "alice2", updated.Username)
	assert.True(t, updated.CreatedAt.Equal(record.CreatedAt))

	require.Len(t, repo.records, 1)
	plaintext, err := codec.DecodeCurrent(repo.records[0].EncryptedPassword, vaultKey)
	require.NoError(t, err)
	assert.Equal(t, "new password", string(plaintext))
}

func TestSecretService_UpdateSecret_NotFound(t *testing.T) {
	service, _, _ := newTestSecretService()

	_, err := service.UpdateSecret(context.Background(), "does-not-exist", "site", "user", "password", testVaultKey())
	require.Error(t, err)
	assert.True(t, IsSecretNotFoundError(err))
}

func TestSecretService_DeleteSecret(t *testing.T) {
	service, repo, _ := newTestSecretService()
	ctx := context.Background()
	vaultKey := testVaultKey()

	record, err := service.StoreSecret(ctx, "account-1", "example.com", "alice", "hunter2", vaultKey)
	require.NoError(t, err)

	require.NoError(t, service.DeleteSecret(ctx, record.ID))
	assert.Empty(t, repo.records)

	_, err = service.GetSecret(ctx, record.ID, vaultKey)
	assert.True(t, IsSecretNotFoundError(err))
}

func TestSecretService_DeleteSecret_NotFound(t *testing.T) {
	service, _, _ := newTestSecretService()

	err := service.DeleteSecret(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.True(t, IsSecretNotFoundError(err))
}
