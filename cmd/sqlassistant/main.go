package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	envFile string
	port    string
)

// rootCmd runs the server when called without a subcommand
var rootCmd = &cobra.Command{
	Use:           "sqlassistant",
	Short:         "Natural language questions answered from the sales database",
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true, // errors are logged before returning
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file (default ./.env when present)")
	rootCmd.PersistentFlags().StringVarP(&port, "port", "p", "", "Server port (overrides PORT)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
