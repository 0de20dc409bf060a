package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/LavaJover/cruise-commission-service/internal/config"
	"github.com/LavaJover/cruise-commission-service/internal/domain"
	publisher "github.com/LavaJover/cruise-commission-service/internal/infrastructure/kafka"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/metrics"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/notifier"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config     *config.CommissionConfig
	Logger     *slog.Logger
	DB         *gorm.DB
	UnitOfWork domain.UnitOfWork
	Registry   *prometheus.Registry
	Metrics    *metrics.CommissionMetrics
	Notifier   *notifier.AdminAlertNotifier
	// Kafka fields are nil when the broker is disabled.
	EventPublisher *publisher.CommissionPublisher
	Subscriber     domain.SubscriberPort

	closers []io.Closer
}

// InitializeDependencies builds the infrastructure graph around an already
// opened database.
func InitializeDependencies(cfg *config.CommissionConfig, db *gorm.DB, logger *slog.Logger) (*Dependencies, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	commissionMetrics := metrics.NewCommissionMetrics(reg)

	deps := &Dependencies{
		Config:     cfg,
		Logger:     logger,
		DB:         db,
		UnitOfWork: postgres.NewGormUnitOfWork(db),
		Registry:   reg,
		Metrics:    commissionMetrics,
	}

	alerts := &notifier.AdminAlertNotifier{
		Store:   repository.NewDefaultNotificationRepository(db),
		Metrics: commissionMetrics,
		Logger:  logger.With("component", "notifier"),
		Timeout: cfg.CommissionRule.AlertTimeout,
	}
	if cfg.MailService.Enabled() {
		alerts.Mailer = notifier.NewGomailSender(cfg.MailService)
	}

	if cfg.KafkaService.Enabled {
		brokers := cfg.KafkaService.Brokers()
		kafkaPub := publisher.NewDefaultKafkaPublisher(brokers)
		deps.closers = append(deps.closers, kafkaPub)
		deps.EventPublisher = publisher.NewCommissionPublisher(
			kafkaPub,
			cfg.KafkaService.EventsTopic,
			cfg.KafkaService.AlertsTopic,
		)
		deps.Subscriber = publisher.NewDefaultKafkaSubscriber(brokers)
		alerts.Publisher = deps.EventPublisher
	}
	deps.Notifier = alerts

	return deps, nil
}

// BootstrapHQ makes sure the HQ profile exists before traffic arrives.
func (d *Dependencies) BootstrapHQ(ctx context.Context) (*domain.PartnerProfile, error) {
	hq, err := repository.NewDefaultPartnerRepository(d.DB).EnsureHQProfile(
		ctx,
		d.Config.CommissionRule.HQAdminEmail,
		d.Config.CommissionRule.HQAdminName,
	)
	if err != nil {
		return nil, fmt.Errorf("bootstrap hq profile: %w", err)
	}
	return hq, nil
}

func (d *Dependencies) Close() error {
	var errs []error
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
