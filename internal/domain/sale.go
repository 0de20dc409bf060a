package domain

import (
	"context"
	"time"
)

type SaleStatus string

const (
	SalePending   SaleStatus = "PENDING"
	SaleConfirmed SaleStatus = "CONFIRMED"
	SaleCanceled  SaleStatus = "CANCELED"
	SaleRefunded  SaleStatus = "REFUNDED"
)

// OpenSaleStatuses block a second sale for the same lead and product.
var OpenSaleStatuses = []SaleStatus{SalePending, SaleConfirmed}

// CommissionState tracks ledger synchronization of a sale.
// UNPROCESSED -> PROCESSED | FAILED, FAILED -> PROCESSED on retry.
type CommissionState string

const (
	CommissionUnprocessed CommissionState = "UNPROCESSED"
	CommissionProcessed   CommissionState = "PROCESSED"
	CommissionFailed      CommissionState = "FAILED"
)

// Sale metadata keys.
const (
	SaleMetaTransferred       = "transferred"
	SaleMetaTransferReason    = "transfer_reason"
	SaleMetaFallbackReason    = "hq_fallback_reason"
	SaleMetaTransferredFrom   = "transferred_from"
	SaleMetaOriginalManagerID = "original_manager_id"
	SaleMetaOriginalAgentID   = "original_agent_id"
	SaleMetaProductName       = "product_name"
	SaleMetaTriggeredBy       = "triggered_by"
)

type Sale struct {
	ID          string
	Reference   string
	LeadID      string
	ProductCode string

	SaleAmount int64
	CostAmount int64
	NetRevenue int64

	ManagerID string
	AgentID   *string

	BranchCommission   *int64
	SalesCommission    *int64
	OverrideCommission *int64

	Status                SaleStatus
	CommissionState       CommissionState
	CommissionProcessedAt *time.Time
	CommissionError       string
	SyncAttempts          int

	Metadata   map[string]any
	OccurredAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *Sale) CommissionProcessed() bool {
	return s.CommissionState == CommissionProcessed
}

// Breakdown returns the commission fields as a CommissionBreakdown.
func (s *Sale) Breakdown() CommissionBreakdown {
	return CommissionBreakdown{
		Branch:   s.BranchCommission,
		Sales:    s.SalesCommission,
		Override: s.OverrideCommission,
	}
}

// Retryable reports whether the ledger sync may be (re)run for the sale.
func (s *Sale) Retryable() bool {
	if s.Status != SalePending && s.Status != SaleConfirmed {
		return false
	}
	return s.CommissionState == CommissionUnprocessed || s.CommissionState == CommissionFailed
}

// CommissionBreakdown holds at most one non-nil amount.
type CommissionBreakdown struct {
	Branch   *int64
	Sales    *int64
	Override *int64
}

// Amount returns the single payout amount and whether one exists.
func (b CommissionBreakdown) Amount() (int64, bool) {
	switch {
	case b.Branch != nil:
		return *b.Branch, true
	case b.Sales != nil:
		return *b.Sales, true
	case b.Override != nil:
		return *b.Override, true
	}
	return 0, false
}

func (b CommissionBreakdown) Empty() bool {
	_, ok := b.Amount()
	return !ok
}

type SaleRepository interface {
	// FindOpenSale returns the PENDING/CONFIRMED sale for the pair or nil.
	FindOpenSale(ctx context.Context, leadID, productCode string) (*Sale, error)
	// CreateSale inserts the sale unless an open sale for the same lead and
	// product already exists; created is false in that case.
	CreateSale(ctx context.Context, sale *Sale) (created bool, err error)
	GetSaleByID(ctx context.Context, saleID string) (*Sale, error)
	GetSaleForUpdate(ctx context.Context, saleID string) (*Sale, error)
	MarkCommissionProcessed(ctx context.Context, saleID string, at time.Time) error
	MarkCommissionFailed(ctx context.Context, saleID, reason string) error
	FindSalesByCommissionState(ctx context.Context, state CommissionState, limit int) ([]*Sale, error)
}

// Payout is the ledger-facing view of a sale's single commission.
type Payout struct {
	ProfileID string
	Role      PartnerRole
	Type      CommissionType
	Amount    int64
}

// Payouts lists the payees implied by the non-nil commission field. A sale
// without commission yields no payouts.
func (s *Sale) Payouts() ([]Payout, error) {
	switch {
	case s.BranchCommission != nil:
		return []Payout{{ProfileID: s.ManagerID, Role: RoleBranchManager, Type: CommissionBranch, Amount: *s.BranchCommission}}, nil
	case s.SalesCommission != nil:
		if s.AgentID == nil || *s.AgentID == "" {
			return nil, ErrMissingAgent
		}
		return []Payout{{ProfileID: *s.AgentID, Role: RoleSalesAgent, Type: CommissionSales, Amount: *s.SalesCommission}}, nil
	case s.OverrideCommission != nil:
		return []Payout{{ProfileID: s.ManagerID, Role: RoleHQ, Type: CommissionOverride, Amount: *s.OverrideCommission}}, nil
	}
	return nil, nil
}
