// Package cli implements the trueup command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// exitDegraded is set when an analysis completes with gaps: missing
// tables, skipped heuristics or fallback-derived values.
var exitDegraded bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trueup",
	Short: "Truing-up petition analyzer for the generation business unit",
	Long: `Trueup screens an electricity utility's truing-up petition.

It locates the generation unit's revenue requirement tables in the filed
PDF, recomputes each claimed line item from published constants and the
filing's own supporting schedules, and grades every claim GREEN, YELLOW
or RED against regulatory tolerance bands.

Findings are screening aids for regulatory staff, not determinations.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and returns the process exit code:
// 0 for a clean run, 2 when the analysis completed degraded, 1 on error.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if exitDegraded {
		return 2
	}
	return 0
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("trueup v0.2.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.trueup/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.trueup")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match TRUEUP_*
	viper.SetEnvPrefix("TRUEUP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
