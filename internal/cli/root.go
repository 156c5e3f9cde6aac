// Package cli implements the ingest command: download one sport's
// statistics and replace its CSV snapshot.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/statsboard/internal/config"
	"github.com/okian/statsboard/internal/sources"
	"github.com/okian/statsboard/pkg/logger"
)

// globals holds state resolved once by the root command.
type globals struct {
	cfg     *config.Config
	rps     float64
	timeout time.Duration
	output  string
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Download sports statistics into CSV snapshots",
		Long: "Fetch every configured page of a league's statistics API, skip pages that fail, " +
			"replace missing values with zero and atomically replace the league's CSV snapshot.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutputFormat(g.output); err != nil {
				return err
			}

			// Load configuration (defaults -> optional file -> env), then flags.
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("rps") {
				cfg.RPS = g.rps
			}
			if cmd.Flags().Changed("timeout") {
				cfg.HTTPTimeout = g.timeout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithJSON(cfg.LogJSON)); err != nil {
				return err
			}
			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				return err
			}
			g.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().Float64Var(&g.rps, "rps", 0, "Upstream requests per second (0 disables limiting)")
	rootCmd.PersistentFlags().DurationVar(&g.timeout, "timeout", 0, "Timeout for one upstream request")
	rootCmd.PersistentFlags().StringVarP(&g.output, "output", "o", "text", "Output format (text, json)")

	rootCmd.AddCommand(newSportCmd(g, sources.SportMLB))
	rootCmd.AddCommand(newSportCmd(g, sources.SportNBA))
	rootCmd.AddCommand(newAllCmd(g))
	rootCmd.AddCommand(newScheduleCmd(g))

	return rootCmd
}

func validateOutputFormat(output string) error {
	if output != "text" && output != "json" {
		return fmt.Errorf("%w %q: use 'text' or 'json'", ErrOutput, output)
	}
	return nil
}
