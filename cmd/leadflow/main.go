package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/leadflow/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var opts app.Options

var rootCmd = &cobra.Command{
	Use:           "leadflow",
	Short:         "Terminal dashboard for the LeadFlow pipeline",
	Long:          "leadflow sends a search query to the LeadFlow pipeline service and shows the returned leads, their summaries and drafted outreach emails.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.Run(cmd.Context(), opts)
	},
}

var (
	runQuery string
	runLimit int
	runCSV   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline once and print the results",
	Long: `Run the pipeline once without the dashboard.

Activity is written to stderr as it happens; the lead table goes to stdout.
The exit status is non-zero when the run fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return app.RunHeadless(cmd.Context(), app.HeadlessOptions{
			Options: opts,
			Query:   runQuery,
			Limit:   runLimit,
			CSVPath: runCSV,
			Stdout:  cmd.OutOrStdout(),
			Stderr:  cmd.ErrOrStderr(),
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the leadflow version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "leadflow", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/leadflow/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.Endpoint, "endpoint", "", "pipeline endpoint URL, overrides config and LEADFLOW_ENDPOINT")
	rootCmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "write debug-level diagnostic logs")

	runCmd.Flags().StringVarP(&runQuery, "query", "q", "", "search query (default from config)")
	runCmd.Flags().IntVarP(&runLimit, "limit", "n", 0, "maximum businesses to return, 1-25 (default from config)")
	runCmd.Flags().StringVar(&runCSV, "csv", "", "also write results to this CSV file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "leadflow: %v\n", err)
		return 1
	}
	return 0
}
