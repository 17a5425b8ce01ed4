package commands

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// CMACCommandHandler computes AES-CMAC tags via CLI.
type CMACCommandHandler struct {
	env *Environment
}

// CMACCmd prints the hex AES-CMAC tag of a file's content
func (h *CMACCommandHandler) CMACCmd(cmd *cobra.Command, _ []string) error {
	keyHex, err := requiredStringFlag(cmd, "key-hex")
	if err != nil {
		return err
	}
	inputFilePath, err := requiredStringFlag(cmd, "input-file")
	if err != nil {
		return err
	}

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return fmt.Errorf("failed to decode key: %w", err)
	}
	defer clear(key)

	fileContent, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		return err
	}

	tag, err := h.env.Manager.AESCMACSign(key, fileContent)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(tag[:]))
	return nil
}

// InitCMACCommands registers AES-CMAC commands
func InitCMACCommands(rootCmd *cobra.Command, env *Environment) error {
	if env == nil {
		return fmt.Errorf("environment cannot be nil")
	}
	handler := &CMACCommandHandler{env: env}

	var cmacCmd = &cobra.Command{
		Use:   "cmac",
		Short: "Compute the AES-128 CMAC tag of a file",
		RunE:  handler.CMACCmd,
	}
	cmacCmd.Flags().String("key-hex", "", "AES-128 key as 32 hex characters")
	cmacCmd.Flags().String("input-file", "", "Path to file to authenticate")
	rootCmd.AddCommand(cmacCmd)

	return nil
}
