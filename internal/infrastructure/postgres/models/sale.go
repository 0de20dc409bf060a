package models

import (
	"time"

	"gorm.io/datatypes"
)

// SaleModel. The one-open-sale-per-(lead, product) rule is a partial unique
// index created by postgres.EnsureConstraints.
type SaleModel struct {
	ID          string `gorm:"primaryKey"`
	Reference   string `gorm:"not null;uniqueIndex"`
	LeadID      string `gorm:"not null;index"`
	ProductCode string `gorm:"not null;index"`

	SaleAmount int64 `gorm:"not null"`
	CostAmount int64 `gorm:"not null"`
	NetRevenue int64 `gorm:"not null"`

	ManagerID string  `gorm:"not null;index"`
	AgentID   *string `gorm:"index"`

	BranchCommission   *int64
	SalesCommission    *int64
	OverrideCommission *int64

	Status                string `gorm:"not null;index"`
	CommissionState       string `gorm:"not null;index"`
	CommissionProcessedAt *time.Time
	CommissionError       string
	SyncAttempts          int `gorm:"not null;default:0"`

	Metadata   datatypes.JSONMap `gorm:"type:jsonb"`
	OccurredAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (SaleModel) TableName() string {
	return "sales"
}
