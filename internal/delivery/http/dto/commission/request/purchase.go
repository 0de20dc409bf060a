package request

import "time"

type PurchaseRequest struct {
	ProductCode         string     `json:"product_code"`
	TriggeringProfileID string     `json:"triggering_profile_id"`
	PersonalAgentID     string     `json:"personal_agent_id"`
	OccurredAt          *time.Time `json:"occurred_at"`
}

type AssignAgentRequest struct {
	ManagerID string `json:"manager_id"`
	AgentID   string `json:"agent_id"`
}
