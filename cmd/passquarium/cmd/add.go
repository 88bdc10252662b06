package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vishnuprabha404/passquarium/passwords"
)

var (
	addGenerate bool
	addLength   int
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a password in the vault",
	Long: `Store a password in the vault.

Prompts for the site, the username and the password. With --generate a
random password is generated and printed once instead of being prompted
for.

Examples:
  passquarium add
  passquarium add --generate
  passquarium add --generate --length 32`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVarP(&addGenerate, "generate", "g", false, "generate the password instead of prompting")
	addCmd.Flags().IntVarP(&addLength, "length", "l", 20, "length of the generated password")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()

	if _, err := app.unlockVault(ctx); err != nil {
		return err
	}
	defer app.keys.Lock()

	site, err := promptRequiredLine("Site: ")
	if err != nil {
		return err
	}
	username, err := promptLine("Username: ")
	if err != nil {
		return err
	}

	var password string
	if addGenerate {
		password, err = app.generator.Generate(addLength, passwords.DefaultClasses())
		if err != nil {
			return err
		}
		fmt.Println("Generated password: " + color.CyanString(password))
	} else {
		password, err = promptNewPassword("Password: ")
		if err != nil {
			return err
		}
	}

	vaultKey, err := app.keys.VaultKey()
	if err != nil {
		return err
	}

	record, err := app.secrets.StoreSecret(ctx, app.accountID, site, username, password, vaultKey)
	if err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}

	fmt.Println(color.GreenString("✓") + " Stored password for '" + site + "' (" + record.ID + ")")

	return nil
}
