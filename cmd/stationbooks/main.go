package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stationbooks/stationbooks/internal/app"
	"github.com/stationbooks/stationbooks/internal/ledger/accounts"
	"github.com/stationbooks/stationbooks/internal/ledger/audit"
	"github.com/stationbooks/stationbooks/internal/ledger/reports"
	"github.com/stationbooks/stationbooks/internal/ledger/vouchers"
	"github.com/stationbooks/stationbooks/internal/platform/cache"
	"github.com/stationbooks/stationbooks/internal/platform/db"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	tolerance, err := cfg.Tolerance()
	if err != nil {
		logger.Error("parse balance tolerance", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, reports run uncached", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportsService := reports.NewService(reports.NewRepository(pool), reportCache, tolerance)

	accountsService := accounts.NewService(accounts.NewRepository(pool))
	vouchersService := vouchers.NewService(vouchers.NewRepository(pool), logger, reportCache, tolerance)
	auditor := audit.NewAuditor(reportsService, audit.NewRepository(pool), tolerance)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AccountsHandler: accounts.NewHandler(logger, accountsService),
		VouchersHandler: vouchers.NewHandler(logger, vouchersService),
		ReportsHandler:  reports.NewHandler(logger, reportsService),
		AuditHandler:    audit.NewHandler(logger, auditor),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("stationbooks listening", slog.String("addr", cfg.AppAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", slog.Any("error", err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
