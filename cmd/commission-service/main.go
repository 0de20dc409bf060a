package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/app/background"
	"github.com/LavaJover/cruise-commission-service/internal/app/setup"
	"github.com/LavaJover/cruise-commission-service/internal/config"
	"github.com/LavaJover/cruise-commission-service/internal/delivery/grpcapi"
	httpapi "github.com/LavaJover/cruise-commission-service/internal/delivery/http"
	"github.com/LavaJover/cruise-commission-service/internal/delivery/http/handlers"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/logger"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	appLogger, logCloser, err := logger.New(cfg.LogConfig)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logCloser.Close()
	slog.SetDefault(appLogger)

	// Init database
	db := postgres.MustInitDB(cfg)

	deps, err := setup.InitializeDependencies(cfg, db, appLogger)
	if err != nil {
		log.Fatalf("failed to init dependencies: %v", err)
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hq, err := deps.BootstrapHQ(ctx)
	if err != nil {
		log.Fatalf("failed to bootstrap hq: %v", err)
	}
	appLogger.Info("hq profile ready", "profile_id", hq.ID)

	ucs, err := setup.InitializeUsecases(deps)
	if err != nil {
		log.Fatalf("failed to init usecases: %v", err)
	}

	tasks := background.NewBackgroundTasks(
		ucs.Commission,
		deps.Subscriber,
		background.RetryConfig{
			Enabled:   cfg.CommissionRule.Retry.Enabled,
			Interval:  cfg.CommissionRule.Retry.Interval,
			BatchSize: cfg.CommissionRule.Retry.BatchSize,
		},
		background.ConsumerConfig{
			Topic:      cfg.KafkaService.LeadTopic,
			Group:      cfg.KafkaService.ConsumerGroup,
			Backoff:    cfg.KafkaService.RetryBackoff,
			MaxBackoff: cfg.KafkaService.MaxBackoff,
		},
		appLogger.With("component", "background"),
	)
	tasks.StartAll(ctx)

	// gRPC health
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql db: %v", err)
	}
	health := grpcapi.NewHealthHandler(sqlDB)
	go health.Watch(ctx, 15*time.Second)
	grpcServer := grpcapi.NewServer(health)

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	go func() {
		appLogger.Info("gRPC server started", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Error("gRPC server stopped", "error", err)
		}
	}()

	// HTTP
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Commission:     handlers.NewCommissionHandler(ucs.Commission),
		Relations:      handlers.NewRelationsHandler(ucs.Relations),
		Gatherer:       deps.Registry,
		AllowedOrigins: cfg.HTTPServer.AllowedOrigins,
	})
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}
	go func() {
		appLogger.Info("HTTP server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	health.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", "error", err)
	}
	grpcServer.GracefulStop()
	tasks.Wait()
	deps.Notifier.Wait()
}
