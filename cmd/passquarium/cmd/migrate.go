package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Upgrade old vault entries to the current format",
	Long: `Upgrade vault entries that are still encrypted directly with the master
password to the current vault-key format.

Older versions derived a fresh key from the master password for every
entry, which made reading the vault slow. Migration re-encrypts those
entries with the vault key. Entries that cannot be read are skipped and
left untouched; running migrate again is safe at any time.

Examples:
  passquarium migrate`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()

	// Migration needs the master password itself for the old entries, not
	// just the vault key
	masterPassword, err := app.unlockVault(ctx)
	if err != nil {
		return err
	}
	defer app.keys.Lock()

	vaultKey, err := app.keys.VaultKey()
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Migrating vault entries..."
	s.Start()
	result, err := app.migrator.MigrateAccount(ctx, app.accountID, masterPassword, vaultKey)
	s.Stop()

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if result.Migrated == 0 && result.Skipped == 0 {
		fmt.Println(color.GreenString("✓") + " Nothing to migrate, the vault is up to date")
		return nil
	}

	fmt.Println(color.GreenString("✓") + fmt.Sprintf(" Migrated %d entry(ies)", result.Migrated))
	if result.Skipped > 0 {
		fmt.Println(color.YellowString("!") + fmt.Sprintf(" Skipped %d entry(ies) that could not be read", result.Skipped))
	}

	return nil
}
