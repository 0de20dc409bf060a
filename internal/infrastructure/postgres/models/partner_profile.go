package models

import (
	"time"

	"gorm.io/datatypes"
)

// PartnerProfileModel. The single-HQ rule is a partial unique index on role,
// see postgres.EnsureConstraints.
type PartnerProfileModel struct {
	ID        string            `gorm:"primaryKey"`
	AccountID string            `gorm:"not null;index"`
	Role      string            `gorm:"not null;index"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PartnerProfileModel) TableName() string {
	return "partner_profiles"
}
