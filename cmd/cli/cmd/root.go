// Package cmd provides the CLI commands for tourcost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tourcost/internal/config"
	"tourcost/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tourcost",
	Short: "Resolve catalog rates for travel services",
	Long: `tourcost resolves the buying cost and selling price of travel
services against a rate catalog.

It stitches rate tables across date spans, applies pax brackets and
free-traveler rules, and reports per-line amounts with the reason
whenever an amount cannot be determined.

Examples:
  tourcost resolve --catalog rates.hcl --service hotel_lux --from 2024-06-01 --to 2024-06-05
  tourcost variants --catalog rates.hcl --service city_tour --from 2024-06-01
  tourcost catalog validate rates.hcl`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tourcost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("tourcost version 1.0.0")
	},
}
