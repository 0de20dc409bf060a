package models

import "time"

// PartnerRelationModel is a manager -> agent edge. One ACTIVE row per agent
// is enforced with a partial unique index.
type PartnerRelationModel struct {
	ID             string `gorm:"primaryKey"`
	ManagerID      string `gorm:"not null;index"`
	AgentID        string `gorm:"not null;index"`
	Status         string `gorm:"not null;index"`
	ConnectedAt    time.Time
	DisconnectedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (PartnerRelationModel) TableName() string {
	return "partner_relations"
}
