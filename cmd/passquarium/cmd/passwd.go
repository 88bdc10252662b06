package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vishnuprabha404/passquarium/passwords"
	"github.com/vishnuprabha404/passquarium/vault"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the master password",
	Long: `Change the master password of the account.

The vault key is re-encrypted under the new master password; the stored
passwords themselves are not touched and stay readable.

Examples:
  passquarium passwd`,
	Args: cobra.NoArgs,
	RunE: runPasswd,
}

func init() {
	rootCmd.AddCommand(passwdCmd)
}

func runPasswd(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()

	oldPassword, err := promptPassword("Current master password: ")
	if err != nil {
		return err
	}
	newPassword, err := promptNewPassword("New master password: ")
	if err != nil {
		return err
	}

	if strength := passwords.Score(newPassword); strength < passwords.StrengthFair {
		fmt.Println(color.YellowString("!") + " New master password strength: " + strength.String())
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Changing master password..."
	s.Start()
	_, err = app.keys.ChangeMasterPassword(ctx, app.accountID, oldPassword, newPassword)
	s.Stop()

	if err != nil {
		if vault.IsUnlockFailedError(err) {
			return fmt.Errorf("incorrect master password")
		}
		if vault.IsAccountNotFoundError(err) {
			return fmt.Errorf("account '%s' does not exist, run 'passquarium init' first", app.accountID)
		}
		return err
	}

	fmt.Println(color.GreenString("✓") + " Master password changed")

	return nil
}
