package domain

import (
	"context"
	"time"
)

const NotificationCommissionFailed = "commission_calculation_failed"

type AdminNotification struct {
	ID        string
	Kind      string
	Title     string
	Message   string
	SaleID    string
	Read      bool
	CreatedAt time.Time
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *AdminNotification) error
	GetNotificationsBySaleID(ctx context.Context, saleID string) ([]*AdminNotification, error)
}

// AdminNotifier is fire-and-forget: implementations log their own failures
// and never report them to the caller.
type AdminNotifier interface {
	NotifyCommissionCalculationFailed(ctx context.Context, saleID, message string)
}
