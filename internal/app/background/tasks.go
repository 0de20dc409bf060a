package background

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	publisher "github.com/LavaJover/cruise-commission-service/internal/infrastructure/kafka"
	"github.com/LavaJover/cruise-commission-service/internal/usecase/commission"
	commissiondto "github.com/LavaJover/cruise-commission-service/internal/usecase/dto/commission"
)

type RetryConfig struct {
	Enabled   bool
	Interval  time.Duration
	BatchSize int
}

type ConsumerConfig struct {
	Topic string
	Group string
	// Backoff is the first pause before resubscribing after the reader
	// fails; it doubles up to MaxBackoff.
	Backoff    time.Duration
	MaxBackoff time.Duration
}

type BackgroundTasks struct {
	CommissionUsecase commission.CommissionUsecase
	Subscriber        domain.SubscriberPort
	Retry             RetryConfig
	Consumer          ConsumerConfig
	Logger            *slog.Logger

	wg sync.WaitGroup
}

func NewBackgroundTasks(uc commission.CommissionUsecase, sub domain.SubscriberPort, retry RetryConfig, consumer ConsumerConfig, logger *slog.Logger) *BackgroundTasks {
	if logger == nil {
		logger = slog.Default()
	}
	return &BackgroundTasks{
		CommissionUsecase: uc,
		Subscriber:        sub,
		Retry:             retry,
		Consumer:          consumer,
		Logger:            logger,
	}
}

// StartAll launches the enabled tasks; Wait blocks until they return after
// ctx is canceled.
func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	if bt.Retry.Enabled && bt.Retry.Interval > 0 {
		bt.wg.Add(1)
		go func() {
			defer bt.wg.Done()
			bt.startLedgerSyncRetry(ctx)
		}()
	}
	if bt.Subscriber != nil && bt.Consumer.Topic != "" {
		bt.wg.Add(1)
		go func() {
			defer bt.wg.Done()
			bt.startLeadConsumer(ctx)
		}()
	}
}

func (bt *BackgroundTasks) Wait() {
	bt.wg.Wait()
}

func (bt *BackgroundTasks) startLedgerSyncRetry(ctx context.Context) {
	ticker := time.NewTicker(bt.Retry.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.retryOnce(ctx)
		}
	}
}

func (bt *BackgroundTasks) retryOnce(ctx context.Context) {
	summary, err := bt.CommissionUsecase.RetryFailedSales(ctx, bt.Retry.BatchSize)
	if err != nil {
		bt.Logger.Error("ledger sync retry sweep failed", "error", err)
		return
	}
	if summary.Attempted > 0 {
		bt.Logger.Info("ledger sync retry sweep",
			"attempted", summary.Attempted,
			"succeeded", summary.Succeeded,
			"failed", summary.Failed,
		)
	}
}

func (bt *BackgroundTasks) startLeadConsumer(ctx context.Context) {
	backoff := bt.Consumer.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	for {
		err := bt.Subscriber.Consume(ctx, bt.Consumer.Topic, bt.Consumer.Group, bt.handleLeadMessage)
		if ctx.Err() != nil {
			return
		}
		if err == nil {
			err = errors.New("subscriber returned without error")
		}
		bt.Logger.Error("lead consumer stopped, resubscribing",
			"topic", bt.Consumer.Topic,
			"retry_in", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = publisher.NextBackoff(backoff, bt.Consumer.MaxBackoff)
	}
}

// handleLeadMessage returns an error only for failures that may pass on a
// later attempt. Malformed events and rejected input are logged and
// acknowledged so one poison message does not stall the partition.
func (bt *BackgroundTasks) handleLeadMessage(ctx context.Context, msg domain.Message) error {
	event, err := publisher.DecodeLeadPurchased(msg)
	if err != nil {
		bt.Logger.Warn("skipping malformed lead event", "key", string(msg.Key), "error", err)
		return nil
	}

	result, err := bt.CommissionUsecase.HandleLeadPurchased(ctx, &commissiondto.PurchaseInput{
		LeadID:              event.LeadID,
		ProductCode:         event.ProductCode,
		TriggeringProfileID: event.TriggeringProfileID,
		PersonalAgentID:     event.PersonalAgentID,
		OccurredAt:          event.OccurredAt,
	})
	switch {
	case err == nil:
		bt.Logger.Debug("lead purchase handled", "lead_id", event.LeadID, "outcome", result.Outcome)
		return nil
	case permanent(err):
		bt.Logger.Warn("dropping lead event", "lead_id", event.LeadID, "error", err)
		return nil
	default:
		bt.Logger.Error("lead purchase trigger failed", "lead_id", event.LeadID, "error", err)
		return err
	}
}

func permanent(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrLeadNotFound) ||
		errors.Is(err, domain.ErrProfileNotFound) ||
		errors.Is(err, domain.ErrUnknownPartnerRole)
}
