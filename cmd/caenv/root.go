package caenv

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON    bool
	flagThreads int
	flagNoColor bool
	flagNoCache bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the caenv CLI.
var rootCmd = &cobra.Command{
	Use:           "caenv",
	Short:         "Monte Carlo envelopes for forward-search outlier diagnostics",
	Long:          "caenv simulates null-hypothesis contingency tables and reduces their forward-search MMD and INE trajectories to empirical quantile envelopes for outlier detection in correspondence analysis.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the caenv CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "disable the envelope result cache")
}
