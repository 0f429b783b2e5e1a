package main

import (
	"bufio"
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"liftsim/config"
	"liftsim/driver"
	"liftsim/logger"
	"liftsim/server"
	"liftsim/sim"
)

func main() {
	configPath := flag.String("config", "", "Java .properties, .env or YAML file; may also be given as the first argument")
	seed := flag.Int64("seed", 0, "random seed (0 = time based)")
	quiet := flag.Bool("quiet", false, "suppress per-tick floor status output")
	replications := flag.Int("replications", 0, "run N headless replications (seed, seed+1, ...) instead of a single run")
	parallel := flag.Int("parallel", 0, "concurrent replications in batch mode (0 = GOMAXPROCS)")
	reportPath := flag.String("report", "", "CSV report file or directory (batch mode)")
	serveAddr := flag.String("serve", "", "serve the HTTP API on this address (e.g. :8080) instead of running once")
	paceMs := flag.Int("pace_ms", 200, "delay between streamed ticks in server mode")
	logLevel := flag.String("log_level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.GetLoggerConfigured(logger.ParseLevel(*logLevel))

	path := *configPath
	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	cfg, err := config.Load(path, *log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	switch {
	case *serveAddr != "":
		srv := server.New(cfg, server.Options{Seed: *seed, Pace: time.Duration(*paceMs) * time.Millisecond}, *log)
		log.Info().Str("addr", *serveAddr).Msg("serving")
		if err := http.ListenAndServe(*serveAddr, srv.Router()); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}

	case *replications > 0:
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		res, err := driver.Run(ctx, cfg, driver.Options{
			Replications: *replications,
			Seed:         *seed,
			Parallel:     *parallel,
			ReportPath:   *reportPath,
			Logger:       *log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("batch failed")
		}
		sim.PrintConsoleReport(os.Stdout, res.Total)

	default:
		out := bufio.NewWriter(os.Stdout)
		defer out.Flush()
		opts := []sim.Option{sim.WithLogger(*log)}
		if !*quiet {
			opts = append(opts, sim.WithObserver(sim.StatusPrinter(out)))
		}
		engine, err := sim.NewSimulator(cfg, *seed, opts...)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid configuration")
		}
		sim.PrintConsoleReport(out, engine.Run())
	}
}
