package relationsdto

type AssignAgentInput struct {
	ManagerID string `json:"manager_id" validate:"required,max=64"`
	AgentID   string `json:"agent_id" validate:"required,max=64,nefield=ManagerID"`
}
