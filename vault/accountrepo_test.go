package vault

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/vishnuprabha404/passquarium/ccc/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.NewInMemoryDB()
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database
}

func createTestAccount(id string) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:                id,
		Salt:              "c2FsdC1zYWx0LXNhbHQtc2FsdC1zYWx0LXNhbHQtMDE=",
		VaultKeyIV:        "aXYtaXYtaXYtaXYtMDE=",
		EncryptedVaultKey: "d3JhcHBlZC12YXVsdC1rZXktYnl0ZXM=",
		VerificationHash:  "dmVyaWZpY2F0aW9uLWhhc2gtYnl0ZXM=",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestSQLiteAccountRepository_CreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	repo, err := NewSQLiteAccountRepository(database)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	ctx := context.Background()
	account := createTestAccount("account-1")

	if err := repo.Create(ctx, account); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "account-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected account, got nil")
	}

	if got.ID != account.ID {
		t.Errorf("Expected ID %s, got %s", account.ID, got.ID)
	}
	if got.Salt != account.Salt {
		t.Errorf("Expected salt %s, got %s", account.Salt, got.Salt)
	}
	if got.VaultKeyIV != account.VaultKeyIV {
		t.Errorf("Expected IV %s, got %s", account.VaultKeyIV, got.VaultKeyIV)
	}
	if got.EncryptedVaultKey != account.EncryptedVaultKey {
		t.Errorf("Expected wrapped key %s, got %s", account.EncryptedVaultKey, got.EncryptedVaultKey)
	}
	if got.VerificationHash != account.VerificationHash {
		t.Errorf("Expected verification hash %s, got %s", account.VerificationHash, got.VerificationHash)
	}
	if !got.CreatedAt.Equal(account.CreatedAt) {
		t.Errorf("Expected created_at %v, got %v", account.CreatedAt, got.CreatedAt)
	}
}

func TestSQLiteAccountRepository_GetByID_NotFound(t *testing.T) {
	database := setupTestDB(t)
	repo, err := NewSQLiteAccountRepository(database)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	got, err := repo.GetByID(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing account, got %+v", got)
	}
}

func TestSQLiteAccountRepository_Create_Duplicate(t *testing.T) {
	database := setupTestDB(t)
	repo, err := NewSQLiteAccountRepository(database)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	ctx := context.Background()
	if err := repo.Create(ctx, createTestAccount("account-1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = repo.Create(ctx, createTestAccount("account-1"))
	if err == nil {
		t.Fatal("Expected error when creating a duplicate account")
	}
	if !IsAccountAlreadyExistsError(err) {
		t.Errorf("Expected AccountAlreadyExistsError, got %v", err)
	}
}

func TestSQLiteAccountRepository_Update(t *testing.T) {
	database := setupTestDB(t)
	repo, err := NewSQLiteAccountRepository(database)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	ctx := context.Background()
	account := createTestAccount("account-1")
	if err := repo.Create(ctx, account); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	account.EncryptedVaultKey = "bmV3LXdyYXBwZWQta2V5LWJ5dGVz"
	account.UpdatedAt = account.UpdatedAt.Add(time.Minute)

	if err := repo.Update(ctx, account); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "account-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.EncryptedVaultKey != account.EncryptedVaultKey {
		t.Errorf("Expected updated wrapped key %s, got %s", account.EncryptedVaultKey, got.EncryptedVaultKey)
	}
	if !got.UpdatedAt.Equal(account.UpdatedAt) {
		t.Errorf("Expected updated_at %v, got %v", account.UpdatedAt, got.UpdatedAt)
	}
}

func TestSQLiteAccountRepository_Update_NotFound(t *testing.T) {
	database := setupTestDB(t)
	repo, err := NewSQLiteAccountRepository(database)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	err = repo.Update(context.Background(), createTestAccount("missing"))
	if err == nil {
		t.Fatal("Expected error when updating a missing account")
	}
	if !IsAccountNotFoundError(err) {
		t.Errorf("Expected AccountNotFoundError, got %v", err)
	}
}

func TestSQLiteAccountRepository_Delete(t *testing.T) {
	database := setupTestDB(t)
	repo, err := NewSQLiteAccountRepository(database)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	ctx := context.Background()
	if err := repo.Create(ctx, createTestAccount("account-1")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Delete(ctx, "account-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "account-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Error("Expected account to be gone after delete")
	}
}

func TestSQLiteAccountRepository_Delete_NotFound(t *testing.T) {
	database := setupTestDB(t)
	repo, err := NewSQLiteAccountRepository(database)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	err = repo.Delete(context.Background(), "missing")
	if err == nil {
		t.Fatal("Expected error when deleting a missing account")
	}
	if !IsAccountNotFoundError(err) {
		t.Errorf("Expected AccountNotFoundError, got %v", err)
	}
}
