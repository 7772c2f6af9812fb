// Package cmd provides the CLI commands for vfx-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vfx-cost/core/output"
	"vfx-cost/core/pricing"
	"vfx-cost/internal/config"
	"vfx-cost/internal/logging"
)

// Version is the CLI version
const Version = "1.0.0"

var (
	cfgFile string
	verbose bool
	noColor bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vfx-cost",
	Short: "Estimate the cost of VFX shots and projects",
	Long: `vfx-cost prices visual-effects shots from their footage settings and
the complexity of each kind of work, and sums projects of many scenes.

Every estimate is deterministic: the same configuration always produces the
same itemized breakdown.

Examples:
  vfx-cost estimate --base-price 10000 --duration 5 --roto Easy
  vfx-cost project --format markdown trailer.json
  vfx-cost convert trailer.json trailer.hcl`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", os.Getenv("VFXCOST_CONFIG"), "config file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(sceneCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logging.Initialize(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		logging.InitializeDefault()
	}
}

// newEngine builds an engine from the loaded configuration
func newEngine() *pricing.Engine {
	return pricing.NewEngine(config.Get().RateCard())
}

// reportFormat resolves a --format flag, falling back to output.default_format
func reportFormat(flag string) (output.Format, error) {
	if flag == "" {
		flag = config.Get().Output.DefaultFormat
	}
	return output.ParseFormat(flag)
}

func reportOptions(title string, details bool) output.Options {
	cfg := config.Get()
	return output.Options{
		Title:       title,
		ShowDetails: details || cfg.Output.ShowDetails,
		NoColor:     noColor || cfg.Output.NoColor,
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vfx-cost version %s\n", Version)
	},
}
