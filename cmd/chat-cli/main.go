package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	loadEnvFiles()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chat-cli",
	Short: "Maintenance commands for the Koita chat API",
	Long: `chat-cli runs maintenance tasks against the chat API database and configuration.

Examples:
  chat-cli migrate up
  chat-cli purge-temp --older-than 12h
  chat-cli config show --format yaml
  chat-cli config schema > config.schema.json`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(purgeTempCmd)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

func loadEnvFiles() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
