package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vishnuprabha404/passquarium/secrets"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Reveal one stored password",
	Long: `Reveal the password of a single vault entry.

The record ID is shown by 'passquarium list'.

Examples:
  passquarium show 7d8f2c1a-4b9e-4f7d-a1b2-c3d4e5f67890`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()
	id := args[0]

	if _, err := app.unlockVault(ctx); err != nil {
		return err
	}
	defer app.keys.Lock()

	vaultKey, err := app.keys.VaultKey()
	if err != nil {
		return err
	}

	entry, err := app.secrets.GetSecret(ctx, id, vaultKey)
	if err != nil {
		if secrets.IsSecretNotFoundError(err) {
			return fmt.Errorf("no password with ID '%s'", id)
		}
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Println("Site:     " + entry.Site)
	fmt.Println("Username: " + entry.Username)
	fmt.Println("Password: " + color.CyanString(entry.Password))

	return nil
}
