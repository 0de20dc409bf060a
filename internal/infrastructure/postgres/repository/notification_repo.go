package repository

import (
	"context"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultNotificationRepository struct {
	DB *gorm.DB
}

func NewDefaultNotificationRepository(db *gorm.DB) *DefaultNotificationRepository {
	return &DefaultNotificationRepository{DB: db}
}

func (r *DefaultNotificationRepository) CreateNotification(ctx context.Context, n *domain.AdminNotification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return r.DB.WithContext(ctx).Create(&models.AdminNotificationModel{
		ID:        n.ID,
		Kind:      n.Kind,
		Title:     n.Title,
		Message:   n.Message,
		SaleID:    n.SaleID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}).Error
}

func (r *DefaultNotificationRepository) GetNotificationsBySaleID(ctx context.Context, saleID string) ([]*domain.AdminNotification, error) {
	var rows []models.AdminNotificationModel
	if err := r.DB.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	notifications := make([]*domain.AdminNotification, len(rows))
	for i, row := range rows {
		notifications[i] = &domain.AdminNotification{
			ID:        row.ID,
			Kind:      row.Kind,
			Title:     row.Title,
			Message:   row.Message,
			SaleID:    row.SaleID,
			Read:      row.Read,
			CreatedAt: row.CreatedAt,
		}
	}
	return notifications, nil
}
