package models

import "time"

type PartnerContractModel struct {
	ID           string `gorm:"primaryKey"`
	AccountID    string `gorm:"not null;uniqueIndex"`
	Status       string `gorm:"not null"`
	TerminatedAt *time.Time
	DBRecovered  bool `gorm:"column:db_recovered;not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PartnerContractModel) TableName() string {
	return "partner_contracts"
}
