package commission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	publisher "github.com/LavaJover/cruise-commission-service/internal/infrastructure/kafka"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/metrics"
	commissiondto "github.com/LavaJover/cruise-commission-service/internal/usecase/dto/commission"
	"github.com/go-playground/validator/v10"
)

type CommissionUsecase interface {
	HandleLeadPurchased(ctx context.Context, input *commissiondto.PurchaseInput) (*commissiondto.TriggerResult, error)
	RetryLedgerSync(ctx context.Context, saleID string) (*domain.Sale, error)
	RetryFailedSales(ctx context.Context, limit int) (*commissiondto.RetrySummary, error)
	GetSale(ctx context.Context, saleID string) (*commissiondto.SaleOutput, error)
}

type EventPublisher interface {
	PublishCommission(ctx context.Context, event publisher.CommissionEvent) error
}

type Options struct {
	Rate         string
	GraceDays    int
	Location     *time.Location
	HQAdminEmail string
	HQAdminName  string
}

type DefaultCommissionUsecase struct {
	uow        domain.UnitOfWork
	notifier   domain.AdminNotifier
	publisher  EventPublisher
	metrics    *metrics.CommissionMetrics
	logger     *slog.Logger
	validate   *validator.Validate
	calculator *Calculator
	recorder   *SaleRecorder
	syncer     *LedgerSynchronizer
	policy     GracePolicy
	now        func() time.Time
}

// NewDefaultCommissionUsecase wires the engine. publisher and commissionMetrics
// may be nil.
func NewDefaultCommissionUsecase(
	uow domain.UnitOfWork,
	notifier domain.AdminNotifier,
	eventPublisher EventPublisher,
	commissionMetrics *metrics.CommissionMetrics,
	logger *slog.Logger,
	opts Options,
) (*DefaultCommissionUsecase, error) {
	calculator, err := NewCalculator(opts.Rate)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.GraceDays == 0 {
		opts.GraceDays = 7
	}

	return &DefaultCommissionUsecase{
		uow:        uow,
		notifier:   notifier,
		publisher:  eventPublisher,
		metrics:    commissionMetrics,
		logger:     logger,
		validate:   validator.New(),
		calculator: calculator,
		recorder:   &SaleRecorder{HQAdminEmail: opts.HQAdminEmail, HQAdminName: opts.HQAdminName},
		syncer:     &LedgerSynchronizer{Rate: calculator.Rate()},
		policy:     GracePolicy{Days: opts.GraceDays, Location: opts.Location},
		now:        time.Now,
	}, nil
}

func (uc *DefaultCommissionUsecase) resolverFor(tx domain.Tx) *OwnershipResolver {
	return &OwnershipResolver{
		Contracts: tx.Contracts(),
		Relations: tx.Relations(),
		Policy:    uc.policy,
	}
}

func (uc *DefaultCommissionUsecase) GetSale(ctx context.Context, saleID string) (*commissiondto.SaleOutput, error) {
	var out commissiondto.SaleOutput
	err := uc.uow.Do(ctx, func(tx domain.Tx) error {
		sale, err := tx.Sales().GetSaleByID(ctx, saleID)
		if err != nil {
			return err
		}
		entries, err := tx.Ledger().GetEntriesBySaleID(ctx, saleID)
		if err != nil {
			return fmt.Errorf("load ledger entries: %w", err)
		}
		out.Sale = sale
		out.Entries = entries
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
