// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the podcast-assistant CLI, a client
// for the podcast research backend: topic research, episode drafting, chat,
// and settings management.
// See docs/ARCHITECTURE.md § CLI Surface.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/esosa/podcast-assistant/internal/api"
	"github.com/esosa/podcast-assistant/internal/secrets"
	"github.com/esosa/podcast-assistant/internal/store"
	"github.com/esosa/podcast-assistant/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, else the named secret, else "".
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the podcast-assistant CLI.
var rootCmd = &cobra.Command{
	Use:   "podcast-assistant",
	Short: "Research companion for podcast episode planning",
	Long: `podcast-assistant talks to the podcast research backend: it runs
multi-platform topic research, turns the raw results into a ranked topic
feed, drafts episode outlines for chosen topics, and round-trips the show's
settings.

The topic feed persists locally between runs; a research call replaces it
wholesale on success and leaves it untouched on failure.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./podcast-assistant.yaml or ~/.config/podcast-assistant/config.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "backend base URL (overrides config)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("podcast-assistant")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "podcast-assistant"))
		}
	}

	viper.SetDefault("backend.base_url", "http://localhost:8000")
	viper.SetDefault("store.data_dir", "data")

	viper.SetEnvPrefix("PODCAST_ASSISTANT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// backendConfig assembles the backend client configuration from flags,
// config file, and secrets.
func backendConfig() types.BackendConfig {
	cfg := types.BackendConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("backend.timeout"),
			UserAgent: "podcast-assistant/" + version,
		},
		BaseURL:    viper.GetString("backend.base_url"),
		APIToken:   secretDefault(secrets.BackendToken, viper.GetString("backend.api_token")),
		MaxRetries: viper.GetInt("backend.max_retries"),
	}
	if override, _ := rootCmd.PersistentFlags().GetString("backend"); override != "" {
		cfg.BaseURL = override
	}
	return cfg
}

func newClient() *api.Client {
	return api.New(backendConfig())
}

func openStore() (*store.Store, error) {
	return store.Open(types.StoreConfig{DataDir: viper.GetString("store.data_dir")})
}

// reportError prints the uniform user-facing message for backend failures
// and returns the original error for the exit status.
func reportError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintln(os.Stderr, apiErr.UserMessage())
	}
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
