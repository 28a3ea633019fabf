package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tinoosan/trialbalance/internal/config"
	httpapi "github.com/tinoosan/trialbalance/internal/httpapi/v1"
	"github.com/tinoosan/trialbalance/internal/service/balance"
	"github.com/tinoosan/trialbalance/internal/storage/csvfile"
	"github.com/tinoosan/trialbalance/internal/storage/memory"
	pgstore "github.com/tinoosan/trialbalance/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	src, closeFn, err := openSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open ledger source", "backend", cfg.Backend(), "err", err)
		os.Exit(1)
	}
	logger.Info("storage backend: " + cfg.Backend())

	srvMux := httpapi.New(src, logger, httpapi.Options{
		JWTSecret:           cfg.JWTSecret,
		JWTIssuer:           cfg.JWTIssuer,
		JWTAudience:         cfg.JWTAudience,
		ExportRatePerMinute: cfg.ExportRatePerMinute,
	}).Handler()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srvMux,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("trial balance service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
}

// openSource picks the ledger source named by cfg.Backend. The returned
// close func may be nil.
func openSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (balance.Source, func(), error) {
	switch cfg.Backend() {
	case "postgres":
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		// Optional dev seed for compose/local
		if cfg.DevSeed {
			accs, entries := devLedger()
			if err := pg.SeedDev(ctx, accs, entries, cfg.Currency); err != nil {
				logger.Error("dev seed failed", "err", err)
			} else {
				logDevSeed(logger, "postgres", accs, entries)
			}
		}
		return pg, pg.Close, nil
	case "csv":
		src, err := csvfile.Open(cfg.ChartCSV, cfg.JournalCSV)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("reading ledger from csv", "chart", cfg.ChartCSV, "journal", cfg.JournalCSV)
		return src, nil, nil
	default:
		store := memory.New()
		if cfg.DevSeed {
			accs, entries := devLedger()
			for _, a := range accs {
				store.SeedAccount(a)
			}
			for _, e := range entries {
				store.SeedEntry(e)
			}
			logDevSeed(logger, "memory", accs, entries)
		}
		return store, nil, nil
	}
}

func buildLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if strings.EqualFold(strings.TrimSpace(cfg.LogFormat), "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
