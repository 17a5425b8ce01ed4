package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the oecrypto-cli command tree.
func NewRootCommand() (*cobra.Command, error) {
	env := &Environment{}

	rootCmd := &cobra.Command{
		Use:   "oecrypto-cli",
		Short: "Enclave key and certificate name tool",
		Long: `oecrypto-cli manages the keys and certificate names used by enclave applications.
Supports RSA and EC key generation, PEM export, signing and verification,
AES-CMAC tags and parsing of certificate subject names.

Defaults for the key algorithm, key size and hash come from the YAML file
passed with --config.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("invalid config flag: %w", err)
			}
			return env.Setup(configPath)
		},
	}
	rootCmd.PersistentFlags().String("config", "", "Path to YAML settings file")

	if err := InitKeyCommands(rootCmd, env); err != nil {
		return nil, fmt.Errorf("failed to initialize key commands: %w", err)
	}
	if err := InitNameCommands(rootCmd, env); err != nil {
		return nil, fmt.Errorf("failed to initialize name commands: %w", err)
	}
	if err := InitCMACCommands(rootCmd, env); err != nil {
		return nil, fmt.Errorf("failed to initialize CMAC commands: %w", err)
	}

	return rootCmd, nil
}
