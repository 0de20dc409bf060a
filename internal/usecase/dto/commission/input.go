package commissiondto

import "time"

type PurchaseInput struct {
	LeadID string `json:"lead_id" validate:"required,max=64"`
	// ProductCode falls back to the lead metadata when empty.
	ProductCode         string    `json:"product_code" validate:"omitempty,max=64"`
	TriggeringProfileID string    `json:"triggering_profile_id" validate:"required,max=64"`
	PersonalAgentID     string    `json:"personal_agent_id" validate:"omitempty,max=64"`
	OccurredAt          time.Time `json:"occurred_at"`
}
