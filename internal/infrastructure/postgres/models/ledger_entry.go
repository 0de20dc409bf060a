package models

import "time"

type CommissionLedgerEntryModel struct {
	ID             string `gorm:"primaryKey"`
	SaleID         string `gorm:"not null;uniqueIndex:idx_ledger_sale_payee_type"`
	PayeeProfileID string `gorm:"not null;uniqueIndex:idx_ledger_sale_payee_type;index"`
	PayeeRole      string `gorm:"not null"`
	Type           string `gorm:"column:commission_type;not null;uniqueIndex:idx_ledger_sale_payee_type"`
	Amount         int64  `gorm:"not null"`
	Status         string `gorm:"not null"`
	CreatedAt      time.Time
}

func (CommissionLedgerEntryModel) TableName() string {
	return "commission_ledger_entries"
}
