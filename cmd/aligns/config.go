package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/henri123lemoine/aligns/internal/config"
)

// Config-specific flag values.
var configForce bool

// configCmd groups config file subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

// configInitCmd writes a commented default config.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a commented config file holding every default. Uses --config
when given, otherwise the standard location. An existing file is kept
unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// configPathCmd prints where the config file is read from.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), resolvedConfigPath())
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.ConfigPath()
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := resolvedConfigPath()
	if err := config.CreateDefaultConfigFile(path, configForce); err != nil {
		return fmt.Errorf("config init: %w", err)
	}

	green := color.New(color.FgGreen)
	_, _ = green.Fprint(cmd.OutOrStdout(), "wrote ")
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
