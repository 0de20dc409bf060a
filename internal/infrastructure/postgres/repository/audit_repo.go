package repository

import (
	"context"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultAuditRepository struct {
	DB *gorm.DB
}

func NewDefaultAuditRepository(db *gorm.DB) *DefaultAuditRepository {
	return &DefaultAuditRepository{DB: db}
}

func (r *DefaultAuditRepository) LogCommissionAudit(ctx context.Context, record *domain.AuditRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	return r.DB.WithContext(ctx).Create(mappers.ToGORMAuditRecord(record)).Error
}

func (r *DefaultAuditRepository) GetAuditRecordsBySaleID(ctx context.Context, saleID string) ([]*domain.AuditRecord, error) {
	var recordModels []models.AuditRecordModel
	if err := r.DB.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]*domain.AuditRecord, len(recordModels))
	for i := range recordModels {
		records[i] = mappers.ToDomainAuditRecord(&recordModels[i])
	}
	return records, nil
}
