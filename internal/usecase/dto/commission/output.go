package commissiondto

import "github.com/LavaJover/cruise-commission-service/internal/domain"

type Outcome string

const (
	OutcomeRecorded           Outcome = "RECORDED"
	OutcomeRecordedSyncFailed Outcome = "RECORDED_SYNC_FAILED"
	OutcomeDuplicate          Outcome = "DUPLICATE"
	OutcomeProductInactive    Outcome = "PRODUCT_INACTIVE"
)

type TriggerResult struct {
	Outcome Outcome
	// Sale is nil for PRODUCT_INACTIVE.
	Sale      *domain.Sale
	SyncError string
}

type SaleOutput struct {
	Sale    *domain.Sale
	Entries []*domain.CommissionLedgerEntry
}

type RetrySummary struct {
	Attempted int
	Succeeded int
	Failed    int
}
