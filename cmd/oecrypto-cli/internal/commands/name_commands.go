package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/venuvedam/openenclave/internal/pkg/x509name"
)

// NameCommandHandler parses certificate subject names via CLI.
type NameCommandHandler struct {
	env *Environment
}

// ParseNameCmd prints one Type=Value line per attribute of --name
func (h *NameCommandHandler) ParseNameCmd(cmd *cobra.Command, _ []string) error {
	text, err := requiredStringFlag(cmd, "name")
	if err != nil {
		return err
	}

	name := x509name.Parse(text)
	if name == nil {
		return fmt.Errorf("malformed distinguished name %q", text)
	}

	for _, attribute := range name.Attributes {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", attribute.Type, attribute.Value)
	}
	h.env.Logger.Debug("Parsed ", len(name.Attributes), " name attributes")
	return nil
}

// InitNameCommands registers name-related commands
func InitNameCommands(rootCmd *cobra.Command, env *Environment) error {
	if env == nil {
		return fmt.Errorf("environment cannot be nil")
	}
	handler := &NameCommandHandler{env: env}

	var parseNameCmd = &cobra.Command{
		Use:   "parse-name",
		Short: "Parse a certificate subject name such as CN=...,O=...,C=...",
		RunE:  handler.ParseNameCmd,
	}
	parseNameCmd.Flags().String("name", "", "Distinguished name to parse")
	rootCmd.AddCommand(parseNameCmd)

	return nil
}
