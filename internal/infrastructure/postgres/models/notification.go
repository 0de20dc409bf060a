package models

import "time"

type AdminNotificationModel struct {
	ID        string `gorm:"primaryKey"`
	Kind      string `gorm:"not null;index"`
	Title     string
	Message   string
	SaleID    string `gorm:"index"`
	Read      bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (AdminNotificationModel) TableName() string {
	return "admin_notifications"
}
