package cmd

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vishnuprabha404/passquarium/passwords"
	"github.com/vishnuprabha404/passquarium/secrets"
)

var (
	editGenerate bool
	editLength   int
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a stored vault entry",
	Long: `Update the site, username or password of a vault entry.

Each field is prompted with its current value; pressing Enter keeps it.
With --generate the password is replaced by a freshly generated one.

The record ID is shown by 'passquarium list'.

Examples:
  passquarium edit 7d8f2c1a-4b9e-4f7d-a1b2-c3d4e5f67890
  passquarium edit 7d8f2c1a-4b9e-4f7d-a1b2-c3d4e5f67890 --generate`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().BoolVarP(&editGenerate, "generate", "g", false, "generate a new password instead of prompting")
	editCmd.Flags().IntVarP(&editLength, "length", "l", 20, "length of the generated password")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	site, err := promptLine(fmt.Sprintf("Site [%s]: ", entry.Site))
	if err != nil {
		return err
	}
	if site == "" {
		site = entry.Site
	}

	username, err := promptLine(fmt.Sprintf("Username [%s]: ", entry.Username))
	if err != nil {
		return err
	}
	if username == "" {
		username = entry.Username
	}

	password := entry.Password
	if editGenerate {
		password, err = app.generator.Generate(editLength, passwords.DefaultClasses())
		if err != nil {
			return err
		}
		fmt.Println("Generated password: " + color.CyanString(password))
	} else {
		newPassword, err := promptPassword("New password (press Enter to keep current): ")
		if err != nil {
			return err
		}
		if newPassword != "" {
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if newPassword != confirm {
				return errors.New("passwords do not match")
			}
			password = newPassword
		}
	}

	record, err := app.secrets.UpdateSecret(ctx, id, site, username, password, vaultKey)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	fmt.Println(color.GreenString("✓") + " Updated password for '" + site + "' (" + record.ID + ")")

	return nil
}
