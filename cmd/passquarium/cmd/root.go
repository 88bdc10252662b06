// Package cmd provides the CLI commands for passquarium.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	accountFlag string
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "passquarium",
	Short: "Passquarium - a local password vault",
	Long: `Passquarium keeps your passwords in an encrypted vault on your own machine.

A master password unlocks the vault. Every stored password is encrypted with
a random vault key, which is itself encrypted under a key derived from the
master password, so changing the master password never re-encrypts your data.

Get started:
  passquarium init          Create a vault account
  passquarium add           Store a password
  passquarium list          List stored passwords
  passquarium show <id>     Reveal one password

Examples:
  passquarium init
  passquarium add
  passquarium generate --length 24
  passquarium migrate`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/passquarium/config.json)")
	rootCmd.PersistentFlags().StringVarP(&accountFlag, "account", "a", "", "vault account (default from config)")
}
