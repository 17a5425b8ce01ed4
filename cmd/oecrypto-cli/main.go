// Package main is the entry point for the oecrypto-cli application.
// It builds the root command with the key, name and CMAC sub-commands and
// executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/venuvedam/openenclave/cmd/oecrypto-cli/internal/commands"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd, err := commands.NewRootCommand()
	if err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
