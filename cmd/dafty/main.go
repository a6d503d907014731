// Package main is the entry point for the dafty CLI.
package main

import (
	"os"

	"github.com/amineremache/dafty-mcp/cmd/dafty/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
