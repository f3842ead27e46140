// Package commands implements the godctl CLI.
package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagServer  string
	flagSession string
	flagRole    string
)

// fileConfig is the optional ~/.godctl.yaml.
type fileConfig struct {
	Server    string `yaml:"server"`
	SessionID string `yaml:"session_id"`
	Role      string `yaml:"role"`
}

var rootCmd = &cobra.Command{
	Use:   "godctl",
	Short: "talk to a godchat relay from the terminal",
	Long: `godctl is a thin client for the godchat relay.

It sends messages over the relay's chat contract and reads stored
transcripts. Defaults come from ~/.godctl.yaml and can be overridden
with flags.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaults := loadFileConfig()
	if defaults.Server == "" {
		defaults.Server = "http://localhost:8080"
	}

	rootCmd.PersistentFlags().StringVar(&flagServer, "server", defaults.Server, "relay base URL")
	rootCmd.PersistentFlags().StringVar(&flagSession, "session", defaults.SessionID, "session identifier")
	rootCmd.PersistentFlags().StringVar(&flagRole, "role", defaults.Role, "caller role for transcript reads")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(historyCmd)
}

func loadFileConfig() fileConfig {
	var cfg fileConfig
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(filepath.Join(home, ".godctl.yaml"))
	if err != nil {
		return cfg
	}
	// A broken config file falls back to defaults rather than blocking the CLI.
	_ = yaml.Unmarshal(data, &cfg)
	return cfg
}
