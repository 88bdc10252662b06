package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored passwords",
	Long: `List the stored passwords of the account.

Shows the site, the username and the record ID of every entry. The
passwords themselves stay hidden; use 'passquarium show <id>' to reveal
one. Entries that can no longer be decrypted are left out of the listing.

Examples:
  passquarium list
  passquarium list --account work`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
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

	vaultKey, err := app.keys.VaultKey()
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Decrypting vault..."
	s.Start()
	entries, err := app.secrets.GetSecrets(ctx, app.accountID, vaultKey)
	s.Stop()

	if err != nil {
		return fmt.Errorf("failed to list passwords: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("The vault is empty. Use 'passquarium add' to store a password.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "SITE\tUSERNAME\tID")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Site, entry.Username, entry.ID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(color.GreenString("✓") + fmt.Sprintf(" %d password(s) in the vault", len(entries)))

	return nil
}
