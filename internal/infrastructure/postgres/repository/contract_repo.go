package repository

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultContractRepository struct {
	DB *gorm.DB
}

func NewDefaultContractRepository(db *gorm.DB) *DefaultContractRepository {
	return &DefaultContractRepository{DB: db}
}

func (r *DefaultContractRepository) GetContractStatus(ctx context.Context, accountID string) (*domain.PartnerContract, error) {
	var model models.PartnerContractModel
	err := r.DB.WithContext(ctx).First(&model, "account_id = ?", accountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainContract(&model), nil
}

func (r *DefaultContractRepository) SaveContract(ctx context.Context, contract *domain.PartnerContract) error {
	model := &models.PartnerContractModel{
		ID:           uuid.New().String(),
		AccountID:    contract.AccountID,
		Status:       string(contract.Status),
		TerminatedAt: contract.TerminatedAt,
		DBRecovered:  contract.DBRecovered,
		UpdatedAt:    time.Now(),
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "terminated_at", "db_recovered", "updated_at"}),
	}).Create(model).Error
}
