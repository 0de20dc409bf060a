package repository

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultSaleRepository struct {
	DB *gorm.DB
}

func NewDefaultSaleRepository(db *gorm.DB) *DefaultSaleRepository {
	return &DefaultSaleRepository{DB: db}
}

var saleReference = mustReferenceGenerator()

func mustReferenceGenerator() func() string {
	gen, err := nanoid.CustomASCII("ABCDEFGHJKLMNPQRSTUVWXYZ23456789", 10)
	if err != nil {
		panic(err)
	}
	return gen
}

func (r *DefaultSaleRepository) FindOpenSale(ctx context.Context, leadID, productCode string) (*domain.Sale, error) {
	var model models.SaleModel
	err := r.DB.WithContext(ctx).
		Where("lead_id = ? AND product_code = ? AND status IN ?", leadID, productCode, openStatuses()).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainSale(&model), nil
}

func (r *DefaultSaleRepository) CreateSale(ctx context.Context, sale *domain.Sale) (bool, error) {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if sale.Reference == "" {
		sale.Reference = "SL-" + saleReference()
	}
	if sale.Status == "" {
		sale.Status = domain.SalePending
	}
	if sale.CommissionState == "" {
		sale.CommissionState = domain.CommissionUnprocessed
	}
	now := time.Now()
	if sale.OccurredAt.IsZero() {
		sale.OccurredAt = now
	}
	sale.CreatedAt = now
	sale.UpdatedAt = now

	model := mappers.ToGORMSale(sale)
	res := r.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(model)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *DefaultSaleRepository) GetSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	return r.getSale(r.DB.WithContext(ctx), saleID)
}

func (r *DefaultSaleRepository) GetSaleForUpdate(ctx context.Context, saleID string) (*domain.Sale, error) {
	return r.getSale(r.DB.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), saleID)
}

func (r *DefaultSaleRepository) getSale(db *gorm.DB, saleID string) (*domain.Sale, error) {
	var model models.SaleModel
	err := db.First(&model, "id = ?", saleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainSale(&model), nil
}

func (r *DefaultSaleRepository) MarkCommissionProcessed(ctx context.Context, saleID string, at time.Time) error {
	res := r.DB.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("id = ? AND commission_state <> ?", saleID, domain.CommissionProcessed).
		Updates(map[string]interface{}{
			"commission_state":        domain.CommissionProcessed,
			"commission_processed_at": at,
			"commission_error":        "",
			"sync_attempts":           gorm.Expr("sync_attempts + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSaleNotRetryable
	}
	return nil
}

func (r *DefaultSaleRepository) MarkCommissionFailed(ctx context.Context, saleID, reason string) error {
	return r.DB.WithContext(ctx).
		Model(&models.SaleModel{}).
		Where("id = ? AND commission_state <> ?", saleID, domain.CommissionProcessed).
		Updates(map[string]interface{}{
			"commission_state": domain.CommissionFailed,
			"commission_error": reason,
			"sync_attempts":    gorm.Expr("sync_attempts + 1"),
		}).Error
}

func (r *DefaultSaleRepository) FindSalesByCommissionState(ctx context.Context, state domain.CommissionState, limit int) ([]*domain.Sale, error) {
	var saleModels []models.SaleModel
	q := r.DB.WithContext(ctx).
		Where("commission_state = ? AND status IN ?", state, openStatuses()).
		Order("created_at")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&saleModels).Error; err != nil {
		return nil, err
	}

	sales := make([]*domain.Sale, len(saleModels))
	for i := range saleModels {
		sales[i] = mappers.ToDomainSale(&saleModels[i])
	}
	return sales, nil
}

func openStatuses() []string {
	statuses := make([]string, len(domain.OpenSaleStatuses))
	for i, s := range domain.OpenSaleStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
