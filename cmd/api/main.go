package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chantify/chantify-backend-go/internal/config"
	appHTTP "github.com/chantify/chantify-backend-go/internal/handler/http"
	"github.com/chantify/chantify-backend-go/internal/pkg/cron"
	"github.com/chantify/chantify-backend-go/internal/pkg/database"
	"github.com/chantify/chantify-backend-go/internal/pkg/jwt"
	"github.com/chantify/chantify-backend-go/internal/pkg/metrics"
	"github.com/chantify/chantify-backend-go/internal/repository/postgresql"
	paymentService "github.com/chantify/chantify-backend-go/internal/service/payment"
	summaryService "github.com/chantify/chantify-backend-go/internal/service/summary"
	timeSessionService "github.com/chantify/chantify-backend-go/internal/service/timesession"
	"github.com/chantify/chantify-backend-go/migrations"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).With(
		slog.String("app", "chantify"),
		slog.String("env", cfg.App.Env),
	))

	// Money goes out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db, migrations.FS); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		slog.Info("database schema up to date")
	}

	location := cfg.Location()
	payrollMetrics := metrics.New(prometheus.DefaultRegisterer)

	transactor := postgresql.NewTransactor(db)
	workerDirectory := postgresql.NewWorkerDirectory(db)
	timeSessionRepo := postgresql.NewTimeSessionRepository(db)
	monthlySummaryRepo := postgresql.NewMonthlySummaryRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hoursAggregator := timeSessionService.NewHoursAggregator(timeSessionRepo)
	tracker := summaryService.NewMonthlySummaryTracker(transactor, monthlySummaryRepo, hoursAggregator, location, payrollMetrics)
	timeSessionSvc := timeSessionService.NewTimeSessionService(
		transactor,
		timeSessionRepo,
		workerDirectory,
		tracker,
		hoursAggregator,
		location,
		payrollMetrics,
	)
	paymentSvc := paymentService.NewPaymentService(
		transactor,
		paymentRepo,
		workerDirectory,
		hoursAggregator,
		location,
		cfg.Payroll.BatchConcurrency,
		payrollMetrics,
	)

	scheduler := cron.NewScheduler()
	if cfg.Cron.SummaryReconcileEnabled {
		cron.NewSummaryJobs(timeSessionRepo, tracker, location).RegisterJobs(scheduler, cfg.Cron.SummaryReconcileInterval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			Version:        version,
			AllowedOrigins: cfg.App.AllowedOrigins,
			LogLevel:       level,
			Metrics:        promhttp.Handler(),
		},
		appHTTP.NewTimeSessionHandler(timeSessionSvc, workerDirectory),
		appHTTP.NewSummaryHandler(tracker, workerDirectory),
		appHTTP.NewPaymentHandler(paymentSvc, workerDirectory),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
