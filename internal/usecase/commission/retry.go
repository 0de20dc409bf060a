package commission

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	commissiondto "github.com/LavaJover/cruise-commission-service/internal/usecase/dto/commission"
)

const (
	retrySucceeded = "succeeded"
	retryFailed    = "failed"
	retryNoop      = "noop"
)

// RetryLedgerSync re-runs the ledger sync alone for an UNPROCESSED or FAILED
// sale. Already processed sales are returned unchanged.
func (uc *DefaultCommissionUsecase) RetryLedgerSync(ctx context.Context, saleID string) (*domain.Sale, error) {
	var (
		out     *domain.Sale
		syncErr error
		noop    bool
	)

	err := uc.uow.Do(ctx, func(tx domain.Tx) error {
		sale, err := tx.Sales().GetSaleForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale.CommissionProcessed() {
			out, noop = sale, true
			return nil
		}
		if !sale.Retryable() {
			return fmt.Errorf("sale %s is %s: %w", sale.ID, sale.Status, domain.ErrSaleNotRetryable)
		}

		synced, err := uc.syncInSavepoint(ctx, tx, sale.ID, TriggeredByRetry)
		if err != nil {
			syncErr = err
			uc.markFailed(ctx, tx, sale, err)
			out = sale
			return nil
		}
		out = synced.Sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case noop:
		uc.recordRetry(retryNoop)
	case syncErr != nil:
		uc.recordRetry(retryFailed)
		uc.logger.Error("ledger sync retry failed", "sale_id", saleID, "attempts", out.SyncAttempts, "error", syncErr)
		return out, fmt.Errorf("ledger sync for sale %s: %w", saleID, syncErr)
	default:
		uc.recordRetry(retrySucceeded)
		uc.logger.Info("ledger sync retried", "sale_id", saleID, "attempts", out.SyncAttempts)
	}
	return out, nil
}

// RetryFailedSales retries up to limit FAILED sales, oldest first.
func (uc *DefaultCommissionUsecase) RetryFailedSales(ctx context.Context, limit int) (*commissiondto.RetrySummary, error) {
	var sales []*domain.Sale
	err := uc.uow.Do(ctx, func(tx domain.Tx) error {
		var err error
		sales, err = tx.Sales().FindSalesByCommissionState(ctx, domain.CommissionFailed, limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list failed sales: %w", err)
	}

	summary := &commissiondto.RetrySummary{}
	for _, sale := range sales {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		summary.Attempted++
		if _, err := uc.RetryLedgerSync(ctx, sale.ID); err != nil {
			summary.Failed++
			if errors.Is(err, domain.ErrSaleNotRetryable) {
				uc.logger.Warn("sale no longer retryable", "sale_id", sale.ID)
			}
			continue
		}
		summary.Succeeded++
	}
	return summary, nil
}

func (uc *DefaultCommissionUsecase) recordRetry(result string) {
	if uc.metrics != nil {
		uc.metrics.RecordLedgerSyncRetry(result)
	}
}
