package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
)

// LeadPurchasedEvent is consumed from the lead-purchased topic.
type LeadPurchasedEvent struct {
	LeadID              string    `json:"lead_id"`
	ProductCode         string    `json:"product_code,omitempty"`
	TriggeringProfileID string    `json:"triggering_profile_id"`
	PersonalAgentID     string    `json:"personal_agent_id,omitempty"`
	OccurredAt          time.Time `json:"occurred_at"`
}

func DecodeLeadPurchased(msg domain.Message) (LeadPurchasedEvent, error) {
	var event LeadPurchasedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return LeadPurchasedEvent{}, fmt.Errorf("decode lead-purchased event: %w", err)
	}
	return event, nil
}

// CommissionEvent is published after a sale is committed.
type CommissionEvent struct {
	SaleID          string    `json:"sale_id"`
	Reference       string    `json:"reference"`
	LeadID          string    `json:"lead_id"`
	ProductCode     string    `json:"product_code"`
	OwnerRole       string    `json:"owner_role"`
	ManagerID       string    `json:"manager_id"`
	AgentID         string    `json:"agent_id,omitempty"`
	CommissionType  string    `json:"commission_type,omitempty"`
	Amount          int64     `json:"amount"`
	CommissionState string    `json:"commission_state"`
	Transferred     bool      `json:"transferred"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// CommissionAlertEvent mirrors an admin notification on the alerts topic.
type CommissionAlertEvent struct {
	Kind      string    `json:"kind"`
	SaleID    string    `json:"sale_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
