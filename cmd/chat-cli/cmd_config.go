package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"koita-chat-api/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration inspection commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Print every setting resolved from the environment. Secrets are redacted.`,
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the environment variables",
	RunE:  runConfigSchema,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)

	configShowCmd.Flags().String("format", "env", "Output format: env, yaml, json")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return writeEntries(cmd.OutOrStdout(), config.Entries(cfg), format)
}

func writeEntries(w io.Writer, entries []config.Entry, format string) error {
	switch format {
	case "env":
		for _, e := range entries {
			if _, err := fmt.Fprintf(w, "%s=%s\n", e.Env, e.Value); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q (use env, yaml or json)", format)
	}
}

func runConfigSchema(cmd *cobra.Command, args []string) error {
	schema, err := config.JSONSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
	return err
}
