package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/crypt-crack/common/consul"
	"github.com/ykhdr/crypt-crack/config"
	"github.com/ykhdr/crypt-crack/internal/dictionary"
	"github.com/ykhdr/crypt-crack/internal/hashcrack"
	"github.com/ykhdr/crypt-crack/internal/hashcrack/strategy"
	"github.com/ykhdr/crypt-crack/internal/pool"
	"github.com/ykhdr/crypt-crack/internal/server"
	"golang.org/x/sync/errgroup"
)

const metricsNamespace = "cracker"

func main() {
	cfg, err := config.InitializeConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err = run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		stop()
		if errors.Is(err, context.Canceled) {
			log.Fatal().Err(err).Msg("Cracker interrupted")
		}
		log.Fatal().Err(err).Msg("Cracker failed")
	}
}

// run cracks the hashes read from in (or cfg.HashesPath) and prints every
// recovered password to out. Input errors are returned before any task is
// scheduled. An interrupted search returns the context error.
func run(ctx context.Context, cfg *config.CrackerConfig, in io.Reader, out io.Writer) error {
	format := hashcrack.Format{
		SaltLength: cfg.SaltLength,
		HashLength: cfg.HashLength,
		Tag:        cfg.HashTag,
	}
	hashes, err := loadHashes(in, cfg.HashesPath, format)
	if err != nil {
		return err
	}
	if hashes.Len() == 0 {
		log.Warn().Msg("no hashes to crack")
	}
	words, err := dictionary.Load(cfg.DictionaryPath)
	if err != nil {
		return err
	}
	strategyType, ok := strategy.ParseStrategyName(cfg.Strategy)
	if !ok {
		return errors.Errorf("unknown strategy %q", cfg.Strategy)
	}

	runID := uuid.NewString()
	log.Info().Str("run-id", runID).Msg("run started")

	reporter, closeSinks, err := newReporter(ctx, cfg, out)
	if err != nil {
		return errors.Wrap(err, "failed to initialize match sinks")
	}
	defer closeSinks()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	engine := hashcrack.NewEngine(
		hashcrack.NewSHA512CryptHasher(),
		strategy.NewStrategy(strategyType),
		hashes,
		reporter,
		hashcrack.WithRunID(runID),
	)
	svc := hashcrack.NewService(cfg, engine, pool.WithMetrics(pool.NewMetrics(registry, metricsNamespace)))

	g, gctx := errgroup.WithContext(ctx)
	var srv *server.Server
	if cfg.StatusServerEnabled() {
		opts := []server.Option{server.WithGatherer(registry)}
		if cfg.ConsulEnabled() {
			consulClient, err := consul.NewClient(cfg.ConsulConfig)
			if err != nil {
				return errors.Wrap(err, "failed to initialize consul client")
			}
			opts = append(opts, server.WithConsul(consulClient))
		}
		srv = server.NewServer(cfg.StatusServerConfig, svc, opts...)
		g.Go(func() error {
			return srv.Start(gctx)
		})
	}
	g.Go(func() error {
		if srv != nil {
			defer shutdownServer(srv)
		}
		summary, err := svc.Run(gctx, words)
		if summary != nil {
			log.Info().
				Str("run-id", summary.RunID).
				Int("words", summary.Words).
				Int64("candidates", summary.Candidates).
				Int64("comparisons", summary.Comparisons).
				Int64("matches", summary.Matches).
				Int64("faults", summary.Faults).
				Dur("duration", summary.Duration).
				Msg("search complete")
		}
		return err
	})
	return g.Wait()
}

func shutdownServer(srv *server.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to stop status server")
	}
}

// loadHashes reads the hash list from path, or from in when path is empty.
func loadHashes(in io.Reader, path string, format hashcrack.Format) (*hashcrack.HashSet, error) {
	r := in
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open hashes")
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	hashes, err := hashcrack.ParseHashes(r, format)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse hashes")
	}
	log.Debug().Int("hashes", hashes.Len()).Msg("hashes loaded")
	return hashes, nil
}
