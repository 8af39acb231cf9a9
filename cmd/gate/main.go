// Package main provides the entry point for the permission gate CLI.
package main

import (
	"fmt"
	"os"

	"github.com/FortiumPartners/ensemble-sub005/cmd/gate/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
