package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/statsboard/internal/adapters/repository"
	"github.com/okian/statsboard/internal/adapters/upstream"
	"github.com/okian/statsboard/internal/config"
	"github.com/okian/statsboard/internal/ingest"
	"github.com/okian/statsboard/internal/sources"
)

func newSportCmd(g *globals, sport string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   sport,
		Short: fmt.Sprintf("Download %s statistics", strings.ToUpper(sport)),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := ingestSport(cmd.Context(), g.cfg, sport, out)
			if res.Sport == "" {
				return err
			}
			if perr := printResults(cmd.OutOrStdout(), g.output, []ingest.Result{res}); perr != nil {
				return errors.Join(err, perr)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write the snapshot here instead of the configured path")
	return cmd
}

func newAllCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Download every league with a configured snapshot path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ingestAll(cmd.Context(), g, cmd.OutOrStdout())
		},
	}
}

// ingestAll runs every league that has a snapshot path, in sport order. A
// failed league does not stop the next one; failures are joined.
func ingestAll(ctx context.Context, g *globals, w io.Writer) error {
	paths := g.cfg.DataPaths()
	var (
		results []ingest.Result
		errs    []error
	)
	for _, sport := range newRegistry(g.cfg).Sports() {
		if paths[sport] == "" {
			continue
		}
		res, err := ingestSport(ctx, g.cfg, sport, "")
		if res.Sport != "" {
			results = append(results, res)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sport, err))
		}
		if ctx.Err() != nil {
			break
		}
	}
	if perr := printResults(w, g.output, results); perr != nil {
		errs = append(errs, perr)
	}
	return errors.Join(errs...)
}

// ingestSport runs one sport end to end. out, when set, replaces the
// configured snapshot path.
func ingestSport(ctx context.Context, cfg *config.Config, sport, out string) (ingest.Result, error) {
	src, err := newRegistry(cfg).Get(sport)
	if err != nil {
		return ingest.Result{}, err
	}

	paths := cfg.DataPaths()
	if out != "" {
		paths[sport] = out
	}
	if paths[sport] == "" {
		return ingest.Result{}, fmt.Errorf("%w: %s", ErrNoDataPath, sport)
	}

	runner := ingest.NewRunner(newFetcher(cfg, src), repository.NewCSVStore(repository.WithPaths(paths)))
	return runner.Run(ctx, src)
}

// newRegistry builds the ingestable sources from configuration.
func newRegistry(cfg *config.Config) *sources.Registry {
	return sources.NewRegistry(
		sources.NewMLB(
			sources.WithMLBEndpoint(cfg.MLBEndpoint),
			sources.WithMLBYears(cfg.MLBStartYear, cfg.MLBNumYears),
			sources.WithMLBPaging(cfg.MLBPageSize, cfg.MLBPagesPerYear),
		),
		sources.NewNBA(
			sources.WithNBAEndpoint(cfg.NBAEndpoint),
			sources.WithNBASeasons(cfg.NBACurrentYear, cfg.NBALastNYears),
			sources.WithNBAQuery(cfg.NBASeasonType, cfg.NBAStatCategory, cfg.NBAPerMode),
		),
	)
}

// newFetcher builds an upstream client carrying src's required headers.
func newFetcher(cfg *config.Config, src sources.Source) *upstream.Client {
	opts := []upstream.Option{
		upstream.WithTimeout(cfg.HTTPTimeout),
		upstream.WithUserAgent(cfg.UserAgent),
		upstream.WithRateLimit(cfg.RPS, cfg.Burst),
	}
	for k, v := range src.Headers() {
		opts = append(opts, upstream.WithHeader(k, v))
	}
	return upstream.New(opts...)
}
