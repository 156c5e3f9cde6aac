package cli

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/okian/statsboard/pkg/logger"
)

func newScheduleCmd(g *globals) *cobra.Command {
	var expr string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Re-run every league on a cron schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchedule(cmd.Context(), expr, func(ctx context.Context) error {
				return ingestAll(ctx, g, cmd.OutOrStdout())
			})
		},
	}
	cmd.Flags().StringVar(&expr, "cron", "@daily", "Cron expression: five standard fields or a descriptor such as @hourly")
	return cmd
}

// runSchedule runs job on every tick of expr until ctx is done. A tick that
// fires while the previous run is still going is skipped.
func runSchedule(ctx context.Context, expr string, job func(context.Context) error) error {
	log := logger.Get().Named("schedule")

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(expr, func() {
		if err := job(ctx); err != nil {
			log.Warn(ctx, "scheduled ingestion failed", logger.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrSchedule, expr, err)
	}

	c.Start()
	log.Info(ctx, "ingestion scheduled", logger.String("cron", expr))

	<-ctx.Done()
	<-c.Stop().Done()
	log.Info(ctx, "scheduler stopped")
	return nil
}
