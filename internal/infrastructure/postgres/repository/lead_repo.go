package repository

import (
	"context"
	"errors"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultLeadRepository struct {
	DB *gorm.DB
}

func NewDefaultLeadRepository(db *gorm.DB) *DefaultLeadRepository {
	return &DefaultLeadRepository{DB: db}
}

func (r *DefaultLeadRepository) GetLeadForUpdate(ctx context.Context, leadID string) (*domain.Lead, error) {
	var model models.LeadModel
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", leadID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrLeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainLead(&model), nil
}

func (r *DefaultLeadRepository) CreateLead(ctx context.Context, lead *domain.Lead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	return r.DB.WithContext(ctx).Create(mappers.ToGORMLead(lead)).Error
}

type DefaultProductRepository struct {
	DB *gorm.DB
}

func NewDefaultProductRepository(db *gorm.DB) *DefaultProductRepository {
	return &DefaultProductRepository{DB: db}
}

func (r *DefaultProductRepository) GetActiveProduct(ctx context.Context, productCode string) (*domain.Product, error) {
	var model models.ProductModel
	err := r.DB.WithContext(ctx).
		Where("code = ? AND active = ?", productCode, true).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainProduct(&model), nil
}

func (r *DefaultProductRepository) SaveProduct(ctx context.Context, product *domain.Product) error {
	return r.DB.WithContext(ctx).Save(mappers.ToGORMProduct(product)).Error
}
