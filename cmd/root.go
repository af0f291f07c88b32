package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deckardlabs/baseline/internal/output"
	"github.com/deckardlabs/baseline/pkg/github"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var ui *output.UI

var rootCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Score GitHub accounts for automation signals",
	Long: `baseline inspects a GitHub account's profile and recent public
activity and scores how human it looks. The verdict is one of human,
suspicious, or likely_bot, with every contributing signal itemized.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/baseline/config.yaml)")
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "baseline"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BASELINE")
	viper.AutomaticEnv()

	viper.SetDefault("github.token", "")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("cache.size", 1024)
	viper.SetDefault("cache.ttl", "10m")

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
}

// newGitHubClient builds the API client from the effective configuration.
// Without a token GitHub allows 60 requests per hour, which is fine for
// one-off lookups.
func newGitHubClient() (*github.Client, error) {
	return github.NewClient(github.Config{
		Token: viper.GetString("github.token"),
	})
}
