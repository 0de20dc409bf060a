package models

import "time"

type AccountModel struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"not null;uniqueIndex"`
	Name      string
	Role      string `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AccountModel) TableName() string {
	return "accounts"
}
