package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/playperu/quizmaster/internal/config"
	"github.com/playperu/quizmaster/internal/gateway"
	"github.com/playperu/quizmaster/internal/handler/health"
	"github.com/playperu/quizmaster/internal/httpserver"
	"github.com/playperu/quizmaster/internal/quizclient"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.LoadGateway()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Quiz API ---
	client, err := quizclient.New(cfg.QuizAPIURL,
		quizclient.WithTimeout(cfg.QuizAPITimeout),
		quizclient.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("creating quiz api client: %w", err)
	}
	logger.Info("using quiz api", "url", cfg.QuizAPIURL)

	gw := gateway.New(client, logger,
		gateway.WithPassPercent(cfg.PassPercent),
		gateway.WithSessionTTL(cfg.SessionTTL),
		gateway.WithSPADir(cfg.SPADir),
		gateway.WithHealthChecks(map[string]health.Checker{
			"quiz_api": health.CheckerFunc(client.Ping),
		}),
	)

	// --- HTTP Server ---
	srv := httpserver.New(cfg.HTTPAddr, logger, gw.Routes)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting gateway", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return gw.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down gateway")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
