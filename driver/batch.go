package driver

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"liftsim/config"
	"liftsim/sim"
)

// Options configures a headless batch of replications.
type Options struct {
	Replications int
	// Seed of the first replication; replication i uses Seed+i.
	Seed int64
	// Parallel bounds concurrently running replications; <= 0 means GOMAXPROCS.
	Parallel   int
	ReportPath string
	Logger     zerolog.Logger
}

// Result holds every replication's summary and their combination.
type Result struct {
	Runs       []sim.Summary `json:"runs"`
	Total      sim.Summary   `json:"total"`
	ReportPath string        `json:"report_path,omitempty"`
}

// Run executes independent seeded replications of cfg without any output
// other than logging and the optional CSV report. Replications share no state,
// so results do not depend on Parallel.
func Run(ctx context.Context, cfg config.Config, opt Options) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	n := opt.Replications
	if n < 1 {
		n = 1
	}
	limit := opt.Parallel
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	runs := make([]sim.Summary, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		seed := opt.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			engine, err := sim.NewSimulator(cfg, seed, sim.WithLogger(opt.Logger.With().Int("replication", i).Logger()))
			if err != nil {
				return fmt.Errorf("replication %d: %w", i, err)
			}
			runs[i] = engine.Run()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Runs: runs, Total: sim.CombineSummaries(runs)}
	path, err := sim.WriteCSVReport(opt.ReportPath, runs, res.Total)
	if err != nil {
		return res, err
	}
	if path != "" {
		opt.Logger.Info().Str("path", path).Msg("CSV report written")
	}
	res.ReportPath = path
	return res, nil
}
