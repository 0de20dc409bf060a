package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditRecordModel struct {
	ID                string `gorm:"primaryKey"`
	Kind              string `gorm:"not null;index"`
	SaleID            string `gorm:"not null;index"`
	PayeeProfileID    string
	AccountID         string
	PerformedBySystem bool
	Details           datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt         time.Time
}

func (AuditRecordModel) TableName() string {
	return "commission_audit_logs"
}
