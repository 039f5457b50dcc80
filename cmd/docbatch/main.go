// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docbatch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docbatch CLI.
var rootCmd = &cobra.Command{
	Use:   "docbatch",
	Short: "Batch document conversion through an external converter",
	Long: `docbatch discovers document files under a directory tree and converts
each one to a target format through an external converter (pandoc by
default), running conversions concurrently. A failing file never aborts
the batch; every run ends with a per-file log and an aggregate report.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docbatch.yaml or ~/.config/docbatch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docbatch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docbatch"))
		}
	}

	viper.SetEnvPrefix("DOCBATCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
