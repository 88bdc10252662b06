package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vishnuprabha404/passquarium/passwords"
)

var (
	generateLength  int
	generateWords   int
	generateUpper   bool
	generateLower   bool
	generateDigits  bool
	generateSymbols bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random password or passphrase",
	Long: `Generate a random password from the enabled character classes, or a
passphrase of random dictionary words with --words.

Examples:
  passquarium generate
  passquarium generate --length 32 --symbols=false
  passquarium generate --words 5`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&generateLength, "length", "l", 20, "length of the generated password")
	generateCmd.Flags().IntVarP(&generateWords, "words", "w", 0, "generate a passphrase with this many words instead")
	generateCmd.Flags().BoolVar(&generateUpper, "upper", true, "include uppercase letters")
	generateCmd.Flags().BoolVar(&generateLower, "lower", true, "include lowercase letters")
	generateCmd.Flags().BoolVar(&generateDigits, "digits", true, "include digits")
	generateCmd.Flags().BoolVar(&generateSymbols, "symbols", true, "include symbols")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	generator := passwords.NewGenerator(nil)

	var password string
	var err error

	if generateWords > 0 {
		password, err = generator.GeneratePassphrase(generateWords)
	} else {
		classes := passwords.Classes{
			Upper:   generateUpper,
			Lower:   generateLower,
			Digits:  generateDigits,
			Symbols: generateSymbols,
		}
		password, err = generator.Generate(generateLength, classes)
	}
	if err != nil {
		return err
	}

	fmt.Println(color.CyanString(password))
	fmt.Println("Strength: " + strengthLabel(passwords.Score(password)))

	return nil
}

// strengthLabel colors a strength rating for display.
func strengthLabel(strength passwords.Strength) string {
	switch {
	case strength <= passwords.StrengthWeak:
		return color.RedString(strength.String())
	case strength == passwords.StrengthFair:
		return color.YellowString(strength.String())
	default:
		return color.GreenString(strength.String())
	}
}
