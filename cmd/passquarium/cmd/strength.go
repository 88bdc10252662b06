package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vishnuprabha404/passquarium/passwords"
)

var strengthCmd = &cobra.Command{
	Use:   "strength [password]",
	Short: "Rate the strength of a password",
	Long: `Rate the strength of a password from very weak to very strong.

Without an argument the password is prompted for, so it does not end up
in the shell history. The rating is rough feedback, not a guarantee.

Examples:
  passquarium strength
  passquarium strength 'Tr0ub4dor&3'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStrength,
}

func init() {
	rootCmd.AddCommand(strengthCmd)
}

func runStrength(cmd *cobra.Command, args []string) error {
	var password string
	var err error

	if len(args) == 1 {
		password = args[0]
	} else {
		password, err = promptPassword("Password to rate: ")
		if err != nil {
			return err
		}
	}

	fmt.Println("Strength: " + strengthLabel(passwords.Score(password)))

	return nil
}
