// Package main is the entry point for the passquarium CLI.
package main

import (
	"os"

	"github.com/vishnuprabha404/passquarium/cmd/passquarium/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
