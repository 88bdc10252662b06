package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/vishnuprabha404/passquarium/ccc/auth"
	"github.com/vishnuprabha404/passquarium/ccc/db"
	"github.com/vishnuprabha404/passquarium/ccc/logging"
	"github.com/vishnuprabha404/passquarium/config"
	"github.com/vishnuprabha404/passquarium/encryption"
	"github.com/vishnuprabha404/passquarium/migration"
	"github.com/vishnuprabha404/passquarium/passwords"
	"github.com/vishnuprabha404/passquarium/secrets"
	"github.com/vishnuprabha404/passquarium/vault"
)

const maxUnlockPrompts = 3

// app bundles the wired-up services every command works against.
type app struct {
	cfg        *config.Config
	logger     logging.Logger
	database   *sql.DB
	accounts   vault.AccountRepository
	tracker    auth.FailureTracker
	keys       vault.KeyManager
	verifier   vault.AccountVerifier
	deviceAuth vault.DeviceAuthenticator
	secrets    secrets.SecretService
	migrator   migration.Engine
	generator  passwords.Generator
	accountID  string
}

// newApp loads the configuration and wires up the application services.
func newApp() (*app, error) {
	path := cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.CreateLogger(logging.LogLevel(cfg.LogLevel), cfg.LogPath, "passquarium")

	database, err := db.OpenDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	accountRepo, err := vault.NewSQLiteAccountRepository(database)
	if err != nil {
		database.Close()
		return nil, err
	}
	secretRepo, err := secrets.NewSQLiteSecretRecordRepository(database)
	if err != nil {
		database.Close()
		return nil, err
	}

	random := encryption.NewSystemRandom()
	deriver := encryption.NewPBKDF2KeyDeriver()
	cipher := encryption.NewAESCBCCipher()
	codec := secrets.NewCodec(deriver, cipher, random)
	tracker := auth.NewMemoryFailureTracker(auth.DefaultLockoutSettings())

	accountID := accountFlag
	if accountID == "" {
		accountID = cfg.DefaultAccount
	}

	return &app{
		cfg:        cfg,
		logger:     logger,
		database:   database,
		accounts:   accountRepo,
		tracker:    tracker,
		keys:       vault.NewKeyManager(logger, accountRepo, deriver, cipher, random, tracker),
		verifier:   vault.NewAccountVerifier(logger, accountRepo),
		deviceAuth: vault.NopDeviceAuthenticator,
		secrets:    secrets.NewSecretService(logger, secretRepo, codec),
		migrator:   migration.NewEngine(logger, secretRepo, codec),
		generator:  passwords.NewGenerator(random),
		accountID:  accountID,
	}, nil
}

func (a *app) Close() {
	a.database.Close()
}

// unlockVault authenticates the user and unlocks the vault, allowing a few
// attempts before giving up. It returns the accepted master password because
// migration needs it again for the legacy blobs.
func (a *app) unlockVault(ctx context.Context) (string, error) {
	account, err := a.accounts.GetByID(ctx, a.accountID)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", fmt.Errorf("account '%s' does not exist, run 'passquarium init' first", a.accountID)
	}

	ok, err := a.deviceAuth.Prompt(ctx, "unlock the vault")
	if err != nil {
		return "", fmt.Errorf("device authentication failed: %w", err)
	}
	if !ok {
		return "", errors.New("device authentication was denied")
	}

	for attempt := 0; attempt < maxUnlockPrompts; attempt++ {
		if a.tracker.ShouldLockOut(a.tracker.FailureCount(a.accountID, time.Now().UTC())) {
			return "", errors.New("too many failed attempts, try again later")
		}

		password, err := promptPassword("Master password: ")
		if err != nil {
			return "", err
		}

		// The stored verification hash catches a wrong password without
		// paying for key derivation
		verified, err := a.verifier.VerifyMasterPassword(ctx, a.accountID, password)
		if err != nil {
			return "", err
		}
		if !verified {
			a.tracker.RecordFailure(a.accountID, time.Now().UTC())
			fmt.Println(color.YellowString("!") + " Incorrect master password")
			continue
		}

		if err := a.keys.Unlock(ctx, a.accountID, password); err != nil {
			if vault.IsTooManyUnlockAttemptsError(err) {
				return "", errors.New("too many failed attempts, try again later")
			}
			if vault.IsUnlockFailedError(err) {
				fmt.Println(color.YellowString("!") + " Incorrect master password")
				continue
			}
			return "", err
		}

		return password, nil
	}

	return "", errors.New("too many failed attempts")
}
