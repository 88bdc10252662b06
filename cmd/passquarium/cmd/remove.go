package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vishnuprabha404/passquarium/secrets"
)

var removeForce bool

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a stored password",
	Long: `Delete a single vault entry. This cannot be undone.

Examples:
  passquarium remove 7d8f2c1a-4b9e-4f7d-a1b2-c3d4e5f67890
  passquarium remove 7d8f2c1a-4b9e-4f7d-a1b2-c3d4e5f67890 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "delete without asking for confirmation")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	id := args[0]

	if !removeForce {
		answer, err := promptLine("Delete password " + id + "? [y/N]: ")
		if err != nil {
			return err
		}
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := app.secrets.DeleteSecret(cmd.Context(), id); err != nil {
		if secrets.IsSecretNotFoundError(err) {
			return fmt.Errorf("no password with ID '%s'", id)
		}
		return fmt.Errorf("failed to delete password: %w", err)
	}

	fmt.Println(color.GreenString("✓") + " Password deleted")

	return nil
}
