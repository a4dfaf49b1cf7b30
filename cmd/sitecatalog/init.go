package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sampleforge/sitecatalog/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/sitecatalog.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new sitecatalog configuration file",
		Long: `Initialize creates a new .sitecatalog configuration file in the current directory.

The generated file includes commented examples for:
- Extra platform signatures for the enrichment detector
- Extra industry keywords
- A custom User-Agent for landing page fetches

Examples:
  # Create .sitecatalog in current directory
  sitecatalog init

  # Create config file at a specific path
  sitecatalog init -o myconfig.yaml

  # Force overwrite existing file
  sitecatalog init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/sitecatalog.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write configuration file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to extend the enrichment detector with:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Extra platform signatures")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Extra industry keywords")
	fmt.Fprintln(cmd.OutOrStdout(), "  - A custom User-Agent")

	return nil
}
