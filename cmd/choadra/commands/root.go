// Package commands implements the choadra CLI commands.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dantte-lp/choadra/internal/config"
)

var (
	// cfgFile is the path to an optional YAML configuration file.
	cfgFile string

	// serverAddr overrides config.Client.ServerAddr when non-empty.
	serverAddr string

	// outputFormat controls the output format for the status command
	// (table or json).
	outputFormat string

	// cfg is the loaded configuration, populated in PersistentPreRunE.
	cfg *config.Config
)

// rootCmd is the top-level cobra command for choadra.
var rootCmd = &cobra.Command{
	Use:   "choadra",
	Short: "CLI client for the Minecraft Java Edition session protocol",
	Long:  "choadra dials a server directly over the session protocol: status pings, offline or online login, and an interactive play-phase shell.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			loaded = config.DefaultConfig()
		}

		if serverAddr != "" {
			loaded.Client.ServerAddr = serverAddr
		}

		cfg = loaded

		return nil
	},
	// Silence cobra's built-in usage/error printing so we control it.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", "",
		"server address to dial, host:port (overrides config)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table",
		"output format: table, json")

	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(pingCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(shellCmd())
	rootCmd.AddCommand(versionCmd())
}

// Execute runs the root command and exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
