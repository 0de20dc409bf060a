package response

import "time"

type SaleResponse struct {
	ID                    string         `json:"id"`
	Reference             string         `json:"reference"`
	LeadID                string         `json:"lead_id"`
	ProductCode           string         `json:"product_code"`
	SaleAmount            int64          `json:"sale_amount"`
	CostAmount            int64          `json:"cost_amount"`
	NetRevenue            int64          `json:"net_revenue"`
	ManagerID             string         `json:"manager_id"`
	AgentID               *string        `json:"agent_id"`
	BranchCommission      *int64         `json:"branch_commission"`
	SalesCommission       *int64         `json:"sales_commission"`
	OverrideCommission    *int64         `json:"override_commission"`
	Status                string         `json:"status"`
	CommissionState       string         `json:"commission_state"`
	CommissionProcessed   bool           `json:"commission_processed"`
	CommissionProcessedAt *time.Time     `json:"commission_processed_at,omitempty"`
	CommissionError       string         `json:"commission_error,omitempty"`
	SyncAttempts          int            `json:"sync_attempts"`
	Metadata              map[string]any `json:"metadata,omitempty"`
	OccurredAt            time.Time      `json:"occurred_at"`
}

type LedgerEntryResponse struct {
	ID             string    `json:"id"`
	PayeeProfileID string    `json:"payee_profile_id"`
	PayeeRole      string    `json:"payee_role"`
	CommissionType string    `json:"commission_type"`
	Amount         int64     `json:"amount"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type SaleDetailsResponse struct {
	Sale    SaleResponse          `json:"sale"`
	Entries []LedgerEntryResponse `json:"ledger_entries"`
}

type PurchaseResponse struct {
	Outcome   string        `json:"outcome"`
	Sale      *SaleResponse `json:"sale,omitempty"`
	SyncError string        `json:"sync_error,omitempty"`
}

type RelationResponse struct {
	ID          string    `json:"id"`
	ManagerID   string    `json:"manager_id"`
	AgentID     string    `json:"agent_id"`
	Status      string    `json:"status"`
	ConnectedAt time.Time `json:"connected_at"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type ManagerResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Role      string `json:"role"`
}
