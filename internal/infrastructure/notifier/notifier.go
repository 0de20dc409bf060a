package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	publisher "github.com/LavaJover/cruise-commission-service/internal/infrastructure/kafka"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/metrics"
)

const (
	ChannelDB    = "db"
	ChannelEmail = "email"
	ChannelKafka = "kafka"
)

type AlertPublisher interface {
	PublishAlert(ctx context.Context, event publisher.CommissionAlertEvent) error
}

// AdminAlertNotifier fans a commission failure out to every configured
// channel. Mailer and Publisher are optional. E-mail is sent in the
// background because SMTP dials cannot be canceled; Wait blocks until
// pending sends finish.
type AdminAlertNotifier struct {
	Store     domain.NotificationRepository
	Mailer    Mailer
	Publisher AlertPublisher
	Metrics   *metrics.CommissionMetrics
	Logger    *slog.Logger
	Timeout   time.Duration

	mail sync.WaitGroup
}

func (n *AdminAlertNotifier) NotifyCommissionCalculationFailed(ctx context.Context, saleID, message string) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	// The alert outlives a canceled request.
	ctx = context.WithoutCancel(ctx)
	if n.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.Timeout)
		defer cancel()
	}

	now := time.Now()
	title := "Commission calculation failed"

	if n.Store != nil {
		err := n.Store.CreateNotification(ctx, &domain.AdminNotification{
			Kind:      domain.NotificationCommissionFailed,
			Title:     title,
			Message:   message,
			SaleID:    saleID,
			CreatedAt: now,
		})
		n.record(logger, ChannelDB, saleID, err)
	}

	if n.Mailer != nil {
		subject := fmt.Sprintf("[commission] %s: %s", title, saleID)
		body := fmt.Sprintf("Ledger sync failed for sale %s.\n\n%s\n\nThe sale stays retryable.", saleID, message)
		n.mail.Add(1)
		go func() {
			defer n.mail.Done()
			n.record(logger, ChannelEmail, saleID, n.Mailer.Send(subject, body))
		}()
	}

	if n.Publisher != nil {
		err := n.Publisher.PublishAlert(ctx, publisher.CommissionAlertEvent{
			Kind:      domain.NotificationCommissionFailed,
			SaleID:    saleID,
			Message:   message,
			CreatedAt: now,
		})
		n.record(logger, ChannelKafka, saleID, err)
	}
}

// Wait blocks until background e-mail sends have returned.
func (n *AdminAlertNotifier) Wait() {
	n.mail.Wait()
}

func (n *AdminAlertNotifier) record(logger *slog.Logger, channel, saleID string, err error) {
	if n.Metrics != nil {
		n.Metrics.RecordAlert(channel, err)
	}
	if err != nil {
		logger.Error("failed to deliver admin alert", "channel", channel, "sale_id", saleID, "error", err)
	}
}
