// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the swat-chat CLI and server.
package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/swat-chat/internal/log"
	"github.com/pdiddy/swat-chat/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the swat-chat CLI.
var rootCmd = &cobra.Command{
	Use:   "swat-chat",
	Short: "Question answering backend for the SWaT water treatment testbed",
	Long: `swat-chat serves a question answering API about the Secure Water Treatment
(SWaT) testbed. arXiv research is the primary source and the SWaT Operation
Manual is the secondary source, downloaded once and parsed at startup.

Subcommands: serve runs the HTTP API, search queries arXiv from the terminal,
and manual fetches and parses the reference manual.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := log.Setup(viper.GetBool("log.development"), viper.GetInt("log.verbosity")); err != nil {
			return err
		}
		if f := viper.ConfigFileUsed(); f != "" {
			log.Info("using config file", "path", f)
		}

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Info("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./swat-chat.yaml or ~/.config/swat-chat/swat-chat.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of secret files")
	rootCmd.PersistentFlags().Bool("dev-log", false, "human-readable development logging")
	rootCmd.PersistentFlags().IntP("verbosity", "v", 0, "log verbosity")
	viper.BindPFlag("log.development", rootCmd.PersistentFlags().Lookup("dev-log"))
	viper.BindPFlag("log.verbosity", rootCmd.PersistentFlags().Lookup("verbosity"))
}

func initConfig() {
	setDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("swat-chat")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "swat-chat"))
		}
	}

	viper.SetEnvPrefix("SWAT_CHAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			log.Error(err, "reading config file", "path", cfgFile)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
