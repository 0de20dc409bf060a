package commission

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	publisher "github.com/LavaJover/cruise-commission-service/internal/infrastructure/kafka"
	commissiondto "github.com/LavaJover/cruise-commission-service/internal/usecase/dto/commission"
)

const (
	skipDuplicate       = "duplicate"
	skipProductInactive = "product_inactive"
)

// HandleLeadPurchased runs resolve -> calculate -> record -> ledger sync in
// one transaction. A ledger sync failure is rolled back to its savepoint, the
// sale is committed as FAILED and admins are alerted; the call still succeeds.
func (uc *DefaultCommissionUsecase) HandleLeadPurchased(ctx context.Context, input *commissiondto.PurchaseInput) (*commissiondto.TriggerResult, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	start := uc.now()
	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = start
	}

	result := &commissiondto.TriggerResult{}
	var syncErr error

	err := uc.uow.Do(ctx, func(tx domain.Tx) error {
		lead, err := tx.Leads().GetLeadForUpdate(ctx, input.LeadID)
		if err != nil {
			return err
		}

		productCode := input.ProductCode
		if productCode == "" {
			productCode = lead.ProductCode()
		}
		if productCode == "" {
			result.Outcome = commissiondto.OutcomeProductInactive
			return nil
		}
		product, err := tx.Products().GetActiveProduct(ctx, productCode)
		if err != nil {
			return fmt.Errorf("lookup product %s: %w", productCode, err)
		}
		if product == nil {
			result.Outcome = commissiondto.OutcomeProductInactive
			return nil
		}

		existing, err := tx.Sales().FindOpenSale(ctx, lead.ID, product.Code)
		if err != nil {
			return fmt.Errorf("check open sale: %w", err)
		}
		if existing != nil {
			result.Outcome = commissiondto.OutcomeDuplicate
			result.Sale = existing
			return nil
		}

		profile, err := tx.Partners().GetProfileByID(ctx, input.TriggeringProfileID)
		if err != nil {
			return fmt.Errorf("lookup triggering profile %s: %w", input.TriggeringProfileID, err)
		}

		ownership, err := uc.resolverFor(tx).Resolve(ctx, OwnershipInput{
			Profile:         profile,
			PersonalAgentID: input.PersonalAgentID,
			OccurredAt:      occurredAt,
		})
		if err != nil {
			return fmt.Errorf("resolve ownership: %w", err)
		}

		breakdown := uc.calculator.Calculate(product.NetRevenue(), ownership)

		sale, created, err := uc.recorder.Record(ctx, tx, RecordInput{
			Lead:        lead,
			Product:     product,
			Ownership:   ownership,
			Breakdown:   breakdown,
			OccurredAt:  occurredAt,
			TriggeredBy: TriggeredBySystem,
		})
		if err != nil {
			return err
		}
		result.Sale = sale
		if !created {
			result.Outcome = commissiondto.OutcomeDuplicate
			return nil
		}

		synced, err := uc.syncInSavepoint(ctx, tx, sale.ID, TriggeredBySystem)
		if err != nil {
			syncErr = err
			result.Outcome = commissiondto.OutcomeRecordedSyncFailed
			result.SyncError = err.Error()
			uc.markFailed(ctx, tx, sale, err)
			return nil
		}
		result.Outcome = commissiondto.OutcomeRecorded
		result.Sale = synced.Sale
		return nil
	})
	if err != nil {
		uc.observe("error", start)
		return nil, err
	}

	uc.observe(string(result.Outcome), start)
	uc.afterCommit(ctx, result, syncErr)
	return result, nil
}

func (uc *DefaultCommissionUsecase) syncInSavepoint(ctx context.Context, tx domain.Tx, saleID, triggeredBy string) (*SyncResult, error) {
	var synced *SyncResult
	err := tx.Savepoint(ctx, func(sp domain.Tx) error {
		res, err := uc.syncer.Sync(ctx, sp, saleID, domain.LedgerSyncOptions{
			TriggeredBy: triggeredBy,
			At:          uc.now(),
		})
		if err != nil {
			return err
		}
		synced = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return synced, nil
}

// markFailed records the failure on the sale without aborting the enclosing
// transaction.
func (uc *DefaultCommissionUsecase) markFailed(ctx context.Context, tx domain.Tx, sale *domain.Sale, cause error) {
	err := tx.Savepoint(ctx, func(sp domain.Tx) error {
		if err := sp.Sales().MarkCommissionFailed(ctx, sale.ID, cause.Error()); err != nil {
			return err
		}
		return sp.Audit().LogCommissionAudit(ctx, &domain.AuditRecord{
			Kind:              domain.AuditSyncFailed,
			SaleID:            sale.ID,
			PerformedBySystem: true,
			Details:           map[string]any{"error": cause.Error()},
			CreatedAt:         uc.now(),
		})
	})
	if err != nil {
		uc.logger.Error("failed to mark sale commission as failed", "sale_id", sale.ID, "error", err)
		return
	}
	sale.CommissionState = domain.CommissionFailed
	sale.CommissionError = cause.Error()
	sale.SyncAttempts++
}

func (uc *DefaultCommissionUsecase) afterCommit(ctx context.Context, result *commissiondto.TriggerResult, syncErr error) {
	switch result.Outcome {
	case commissiondto.OutcomeDuplicate:
		uc.recordSkipped(skipDuplicate)
		uc.logger.Info("sale already open, skipping", "sale_id", result.Sale.ID, "lead_id", result.Sale.LeadID)
		return
	case commissiondto.OutcomeProductInactive:
		uc.recordSkipped(skipProductInactive)
		return
	}

	sale := result.Sale
	role := ownerRole(sale)
	amount, _ := sale.Breakdown().Amount()
	if uc.metrics != nil {
		uc.metrics.RecordSaleRecorded(string(role), amount)
	}
	uc.logger.Info("sale recorded",
		"sale_id", sale.ID,
		"reference", sale.Reference,
		"lead_id", sale.LeadID,
		"product_code", sale.ProductCode,
		"owner_role", role,
		"amount", amount,
		"commission_state", sale.CommissionState,
	)

	if uc.publisher != nil {
		go func(event publisher.CommissionEvent) {
			pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()
			if err := uc.publisher.PublishCommission(pubCtx, event); err != nil {
				uc.logger.Error("failed to publish kafka commission event", "sale_id", event.SaleID, "error", err.Error())
			}
		}(commissionEvent(sale))
	}

	if syncErr != nil {
		if uc.metrics != nil {
			uc.metrics.RecordLedgerSyncFailure()
		}
		uc.logger.Error("commission ledger sync failed", "sale_id", sale.ID, "error", syncErr)
		if uc.notifier != nil {
			uc.notifier.NotifyCommissionCalculationFailed(ctx, sale.ID, syncErr.Error())
		}
	}
}

func (uc *DefaultCommissionUsecase) recordSkipped(reason string) {
	if uc.metrics != nil {
		uc.metrics.RecordSaleSkipped(reason)
	}
}

func (uc *DefaultCommissionUsecase) observe(outcome string, start time.Time) {
	if uc.metrics != nil {
		uc.metrics.RecordTriggerDuration(outcome, time.Since(start).Seconds())
	}
}

// ownerRole derives the owning role from the commission field that is set.
func ownerRole(sale *domain.Sale) domain.PartnerRole {
	switch {
	case sale.BranchCommission != nil:
		return domain.RoleBranchManager
	case sale.SalesCommission != nil:
		return domain.RoleSalesAgent
	case sale.OverrideCommission != nil:
		return domain.RoleHQ
	}
	return "NONE"
}

func commissionEvent(sale *domain.Sale) publisher.CommissionEvent {
	amount, _ := sale.Breakdown().Amount()
	event := publisher.CommissionEvent{
		SaleID:          sale.ID,
		Reference:       sale.Reference,
		LeadID:          sale.LeadID,
		ProductCode:     sale.ProductCode,
		OwnerRole:       string(ownerRole(sale)),
		ManagerID:       sale.ManagerID,
		Amount:          amount,
		CommissionState: string(sale.CommissionState),
		OccurredAt:      sale.OccurredAt,
	}
	if sale.AgentID != nil {
		event.AgentID = *sale.AgentID
	}
	if payouts, err := sale.Payouts(); err == nil && len(payouts) > 0 {
		event.CommissionType = string(payouts[0].Type)
	}
	if transferred, ok := sale.Metadata[domain.SaleMetaTransferred].(bool); ok {
		event.Transferred = transferred
	}
	return event
}
