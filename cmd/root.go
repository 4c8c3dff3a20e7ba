// Package cmd implements the onboard CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devshahoriar/custom-form/config"
	"github.com/devshahoriar/custom-form/employee"
)

var (
	cfgFile       string
	verbose       bool
	themeOverride string

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:          "onboard",
	Short:        "Onboard — add employees from the terminal",
	Long:         "Onboard walks through a multi-step wizard to add a new employee, or validates and submits employee records from YAML files.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ./onboard.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&themeOverride, "theme", "", "TUI color theme: dark, light, or auto")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(templateCmd)
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("onboard %s (commit: %s)\n", version, commit))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the persistent flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		cfg.Verbose = true
	}
	if themeOverride != "" {
		cfg.Theme = themeOverride
	}
	return cfg, nil
}

func directoryFrom(cfg config.Config) *employee.StaticDirectory {
	return &employee.StaticDirectory{
		UserNames: cfg.Directory.UserNames,
		Emails:    cfg.Directory.Emails,
		Latency:   cfg.Directory.Latency,
	}
}
