// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docintel CLI.
// Subcommands extract document outlines, rank sections for a persona and
// goal, rank whole documents, export classifier training data, and show
// the run history.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docintel/internal/secrets"
	"github.com/pdiddy/docintel/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// appConfig is the merged configuration: defaults, config file,
// DOCINTEL_* environment, flags, then .secrets/ for unset credentials.
var appConfig types.Config

// rootCmd is the base command for the docintel CLI.
var rootCmd = &cobra.Command{
	Use:   "docintel",
	Short: "Document outline extraction and persona-driven section ranking",
	Long: `docintel turns PDF layouts into structured outlines (title plus H1-H4
headings) and ranks the sections of one or more documents by relevance to
a persona and a job to be done.

Use outline to extract structure, analyze for persona-driven ranking,
rank-docs to compare whole documents, dataset to export labelled feature
vectors, and history to inspect past analysis runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			slog.Debug("loaded secrets", "keys", keys)
		}
		secrets.Apply(s, &cfg)

		appConfig = cfg
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docintel.yaml or ~/.config/docintel/docintel.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of secret files (gemini-api-key, ollama-host, model-endpoint)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug diagnostics")

	rootCmd.PersistentFlags().String("strategy", string(types.StrategyRelative), "structure strategy: relative, fixed, colon, numbered, or model")
	rootCmd.PersistentFlags().String("layout-backend", string(types.LayoutLedongthuc), "PDF layout backend: ledongthuc or rsc")
	rootCmd.PersistentFlags().Int("workers", 4, "documents extracted concurrently")
	rootCmd.PersistentFlags().Bool("cache", false, "cache outlines and record runs in the SQLite store")

	bindFlag(rootCmd, "strategy", "structure.strategy")
	bindFlag(rootCmd, "layout-backend", "layout.backend")
	bindFlag(rootCmd, "workers", "pipeline.workers")
	bindFlag(rootCmd, "cache", "store.enabled")
}

func initConfig() {
	registerDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docintel")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docintel"))
		}
	}

	viper.SetEnvPrefix("DOCINTEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// registerDefaults registers every key of types.DefaultConfig with viper
// so that environment variables can override any of them.
func registerDefaults() {
	data, err := yaml.Marshal(types.DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("marshaling default config: %v", err))
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		panic(fmt.Sprintf("unmarshaling default config: %v", err))
	}
	setDefaults("", tree)
}

func setDefaults(prefix string, tree map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			setDefaults(key, sub)
			continue
		}
		viper.SetDefault(key, v)
	}
}

func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
		dc.Squash = true
	})
	if err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// bindFlag makes flag name of cmd override config key when set.
func bindFlag(cmd *cobra.Command, name, key string) {
	f := cmd.PersistentFlags().Lookup(name)
	if f == nil {
		f = cmd.Flags().Lookup(name)
	}
	if err := viper.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", name, err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
