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

	"github.com/Jimmy4745/lovable-dispatch/internal/config"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/driver"
	"github.com/Jimmy4745/lovable-dispatch/internal/domain/load"
	"github.com/Jimmy4745/lovable-dispatch/internal/fixtures"
	appHTTP "github.com/Jimmy4745/lovable-dispatch/internal/handler/http"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/cron"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/database"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/jwt"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/logger"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/rabbitmq"
	"github.com/Jimmy4745/lovable-dispatch/internal/pkg/sse"
	"github.com/Jimmy4745/lovable-dispatch/internal/repository/memory"
	"github.com/Jimmy4745/lovable-dispatch/internal/repository/postgresql"
	bonusService "github.com/Jimmy4745/lovable-dispatch/internal/service/bonus"
	driverService "github.com/Jimmy4745/lovable-dispatch/internal/service/driver"
	loadService "github.com/Jimmy4745/lovable-dispatch/internal/service/load"
	payrollService "github.com/Jimmy4745/lovable-dispatch/internal/service/payroll"
	reportService "github.com/Jimmy4745/lovable-dispatch/internal/service/report"
)

type repositories struct {
	drivers driver.DriverRepository
	loads   load.LoadRepository
	bonuses bonus.BonusRepository
	tx      database.Transactor
	close   func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		App:     cfg.App.Name,
		Version: cfg.App.Version,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Concise: cfg.App.Env != "production",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Error("Failed to open storage", "storage", cfg.Storage.Type, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	hub := sse.NewHub()

	var broker bonus.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		client, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Error("Failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		broker = rabbitmq.NewBonusPublisher(client)
		log.Info("Publishing bonus events", "exchange", cfg.RabbitMQ.Exchange)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	reconciler := bonusService.NewReconciler(repos.bonuses, bonusService.FanOut(hub, broker), time.Now)
	payrollSvc := payrollService.NewPayrollService(repos.drivers, repos.loads, repos.bonuses, time.Now)
	bonusSvc := bonusService.NewBonusService(repos.bonuses, repos.loads, repos.drivers, reconciler)
	loadSvc := loadService.NewLoadService(repos.loads, repos.drivers, reconciler, repos.tx)
	driverSvc := driverService.NewDriverService(repos.drivers)
	reportSvc := reportService.NewReportService(payrollSvc)

	if cfg.Storage.Type == config.StorageTypeMemory && cfg.Storage.SeedOwner != "" {
		seedDemoFleet(ctx, cfg.Storage.SeedOwner, repos, reconciler)
	}

	scheduler := cron.NewScheduler()
	cron.NewReconcileJobs(reconciler, repos.loads, repos.drivers, time.Now).RegisterJobs(scheduler, cfg.Reconcile.Interval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.RouterOptions{
			Logger:         log,
			LogLevel:       logger.ParseLevel(cfg.App.LogLevel),
			AllowedOrigins: []string{cfg.App.FrontendURL},
		},
		appHTTP.Handlers{
			Driver:  appHTTP.NewDriverHandler(driverSvc),
			Load:    appHTTP.NewLoadHandler(loadSvc),
			Bonus:   appHTTP.NewBonusHandler(bonusSvc),
			Payroll: appHTTP.NewPayrollHandler(payrollSvc, bonusSvc),
			Report:  appHTTP.NewReportHandler(reportSvc),
			Event:   appHTTP.NewEventHandler(hub),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server running", "addr", server.Addr, "storage", cfg.Storage.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
}

func seedDemoFleet(ctx context.Context, userID string, repos *repositories, reconciler bonus.Reconciler) {
	weekStart := payrollService.WeekStart(time.Now())
	seeded, err := fixtures.SeedDemoFleet(ctx, repos.drivers, repos.loads, userID, weekStart)
	if err != nil {
		slog.Error("Failed to seed demo fleet", "user_id", userID, "error", err)
		return
	}
	if !seeded {
		return
	}

	result, err := bonusService.ReconcileOwner(ctx, reconciler, repos.loads, repos.drivers, userID, weekStart)
	if err != nil {
		slog.Error("Failed to reconcile demo fleet", "user_id", userID, "error", err)
		return
	}
	slog.Info("Seeded demo fleet", "user_id", userID, "week_start", result.WeekStart, "automatic_bonuses", result.Created)
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Storage.Type {
	case config.StorageTypeMemory:
		slog.Warn("Using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			drivers: memory.NewDriverRepository(store),
			loads:   memory.NewLoadRepository(store),
			bonuses: memory.NewBonusRepository(store),
			tx:      memory.NewTransactor(store),
			close:   func() {},
		}, nil

	case config.StorageTypePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, err
		}
		return &repositories{
			drivers: postgresql.NewDriverRepository(db),
			loads:   postgresql.NewLoadRepository(db),
			bonuses: postgresql.NewBonusRepository(db),
			tx:      postgresql.NewTransactor(db),
			close:   db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Storage.Type)
	}
}
