package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/mlb-team-timeline/internal/app"
	"github.com/riskibarqy/mlb-team-timeline/internal/config"
	"github.com/riskibarqy/mlb-team-timeline/internal/observability"
	"github.com/riskibarqy/mlb-team-timeline/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
		Version: cfg.ServiceVersion,
	})
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()

	if err != nil {
		logger.Error("api exited", "error", err)
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run serves until ctx is done or the listener fails. Every resource it
// starts is released before it returns, on success and on start-up errors.
func run(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return crerr.Wrap(err, "init uptrace")
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if terr := shutdownTracing(tctx); terr != nil {
			logger.Error("shutdown uptrace", "error", terr)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return crerr.Wrap(err, "init pyroscope")
	}
	defer func() {
		if perr := stopProfiler(); perr != nil {
			logger.Error("stop pyroscope", "error", perr)
		}
	}()

	pprofSrv := observability.StartPprofServer(cfg, logger)
	defer func() {
		if perr := observability.StopPprofServer(pprofSrv, logger, cfg.ShutdownTimeout); perr != nil {
			logger.Error("stop pprof server", "error", perr)
		}
	}()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return crerr.Wrap(err, "build app")
	}
	defer func() {
		if cerr := application.Close(); cerr != nil {
			logger.Error("release resources", "error", cerr)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := application.Server
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "data_source", cfg.DataSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return crerr.Wrap(err, "graceful shutdown")
	}
	logger.Info("http server stopped")

	select {
	case err := <-serveErr:
		return crerr.Wrap(err, "http server")
	default:
		return nil
	}
}
