package domain

import (
	"context"
	"time"
)

type CommissionType string

const (
	CommissionBranch   CommissionType = "BRANCH"
	CommissionSales    CommissionType = "SALES"
	CommissionOverride CommissionType = "OVERRIDE"
)

type LedgerEntryStatus string

const (
	LedgerEntryPending LedgerEntryStatus = "PENDING"
)

// CommissionLedgerEntry is a payee-scoped record of an owed commission.
type CommissionLedgerEntry struct {
	ID             string
	SaleID         string
	PayeeProfileID string
	PayeeRole      PartnerRole
	Type           CommissionType
	Amount         int64
	Status         LedgerEntryStatus
	CreatedAt      time.Time
}

type LedgerSyncOptions struct {
	// TriggeredBy is "system" for the purchase flow and "retry" for re-runs.
	TriggeredBy string
	At          time.Time
}

// LedgerMaterializer is served by the commission-ledger subsystem. It is
// idempotent per (sale, payee, type).
type LedgerMaterializer interface {
	SyncSaleCommissionLedgers(ctx context.Context, sale *Sale, opts LedgerSyncOptions) ([]*CommissionLedgerEntry, error)
}

type LedgerRepository interface {
	LedgerMaterializer
	GetEntriesBySaleID(ctx context.Context, saleID string) ([]*CommissionLedgerEntry, error)
}
