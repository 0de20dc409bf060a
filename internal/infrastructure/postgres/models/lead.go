package models

import (
	"time"

	"gorm.io/datatypes"
)

type LeadModel struct {
	ID        string `gorm:"primaryKey"`
	ManagerID string `gorm:"index"`
	AgentID   string `gorm:"index"`
	Status    string
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeadModel) TableName() string {
	return "leads"
}

type ProductModel struct {
	Code       string `gorm:"primaryKey"`
	Name       string
	SaleAmount int64 `gorm:"not null"`
	CostAmount int64 `gorm:"not null"`
	Active     bool  `gorm:"not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ProductModel) TableName() string {
	return "products"
}
