package commission

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	TriggeredBySystem = "system"
	TriggeredByRetry  = "retry"
)

// LedgerSynchronizer materializes ledger entries for a sale and marks it
// processed. Callers run it inside a savepoint.
type LedgerSynchronizer struct {
	Rate decimal.Decimal
}

type SyncResult struct {
	Sale    *domain.Sale
	Entries []*domain.CommissionLedgerEntry
	// Skipped is true when the sale was already processed.
	Skipped bool
}

func (s *LedgerSynchronizer) Sync(ctx context.Context, tx domain.Tx, saleID string, opts domain.LedgerSyncOptions) (*SyncResult, error) {
	if opts.At.IsZero() {
		opts.At = time.Now()
	}

	sale, err := tx.Sales().GetSaleForUpdate(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.CommissionProcessed() {
		return &SyncResult{Sale: sale, Skipped: true}, nil
	}
	if !sale.Retryable() {
		return nil, fmt.Errorf("sale %s is %s: %w", sale.ID, sale.Status, domain.ErrSaleNotRetryable)
	}

	entries, err := tx.Ledger().SyncSaleCommissionLedgers(ctx, sale, opts)
	if err != nil {
		return nil, fmt.Errorf("sync ledger entries: %w", err)
	}

	if err := tx.Sales().MarkCommissionProcessed(ctx, sale.ID, opts.At); err != nil {
		return nil, fmt.Errorf("mark sale processed: %w", err)
	}

	record, err := s.auditRecord(ctx, tx, sale, entries, opts)
	if err != nil {
		return nil, err
	}
	if err := tx.Audit().LogCommissionAudit(ctx, record); err != nil {
		return nil, fmt.Errorf("write commission audit: %w", err)
	}

	processedAt := opts.At
	sale.CommissionState = domain.CommissionProcessed
	sale.CommissionProcessedAt = &processedAt
	sale.CommissionError = ""
	sale.SyncAttempts++

	return &SyncResult{Sale: sale, Entries: entries}, nil
}

func (s *LedgerSynchronizer) auditRecord(ctx context.Context, tx domain.Tx, sale *domain.Sale, entries []*domain.CommissionLedgerEntry, opts domain.LedgerSyncOptions) (*domain.AuditRecord, error) {
	details := map[string]any{
		"net_revenue":  sale.NetRevenue,
		"rate":         s.Rate.String(),
		"triggered_by": opts.TriggeredBy,
		"breakdown":    breakdownDetails(sale.Breakdown()),
	}
	entryIDs := make([]any, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.ID
	}
	details["ledger_entry_ids"] = entryIDs

	record := &domain.AuditRecord{
		Kind:              domain.AuditCalculated,
		SaleID:            sale.ID,
		PerformedBySystem: true,
		Details:           details,
		CreatedAt:         opts.At,
	}

	payouts, err := sale.Payouts()
	if err != nil {
		return nil, err
	}
	if len(payouts) == 0 {
		details["reason"] = "no_commission"
		return record, nil
	}

	payee, err := tx.Partners().GetProfileByID(ctx, payouts[0].ProfileID)
	if err != nil {
		return nil, fmt.Errorf("lookup payee %s: %w", payouts[0].ProfileID, err)
	}
	record.PayeeProfileID = payee.ID
	record.AccountID = payee.AccountID
	details["payee_role"] = string(payouts[0].Role)
	details["commission_type"] = string(payouts[0].Type)
	details["amount"] = payouts[0].Amount
	return record, nil
}

func breakdownDetails(b domain.CommissionBreakdown) map[string]any {
	out := map[string]any{
		"branch_commission":   nil,
		"sales_commission":    nil,
		"override_commission": nil,
	}
	if b.Branch != nil {
		out["branch_commission"] = *b.Branch
	}
	if b.Sales != nil {
		out["sales_commission"] = *b.Sales
	}
	if b.Override != nil {
		out["override_commission"] = *b.Override
	}
	return out
}
