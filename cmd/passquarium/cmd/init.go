package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vishnuprabha404/passquarium/config"
	"github.com/vishnuprabha404/passquarium/passwords"
	"github.com/vishnuprabha404/passquarium/vault"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a vault account",
	Long: `Create a vault account protected by a master password.

The master password is never stored. Losing it means losing access to every
password in the vault, so pick one you can remember.

Examples:
  passquarium init
  passquarium init --account work`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	fmt.Printf("Creating vault account '%s'\n", app.accountID)

	password, err := promptNewPassword("Master password: ")
	if err != nil {
		return err
	}

	if strength := passwords.Score(password); strength < passwords.StrengthFair {
		fmt.Println(color.YellowString("!") + " Master password strength: " + strength.String())
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Creating vault account..."
	s.Start()
	account, err := app.keys.InitializeAccount(cmd.Context(), app.accountID, password)
	s.Stop()

	if err != nil {
		if vault.IsAccountAlreadyExistsError(err) {
			return fmt.Errorf("account '%s' already exists", app.accountID)
		}
		return err
	}

	fmt.Println(color.GreenString("✓") + " Vault account '" + account.ID + "' created")

	// Persist the active configuration on first use so there is a file to edit
	configPath := cfgFile
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := app.cfg.SaveConfig(configPath); err != nil {
			fmt.Println(color.YellowString("!") + " Could not write config file: " + err.Error())
		} else {
			fmt.Println("Configuration written to " + configPath)
		}
	}

	return nil
}
