package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultLedgerRepository struct {
	DB *gorm.DB
}

func NewDefaultLedgerRepository(db *gorm.DB) *DefaultLedgerRepository {
	return &DefaultLedgerRepository{DB: db}
}

// SyncSaleCommissionLedgers writes one PENDING entry per payout of the sale.
// Existing (sale, payee, type) entries are left untouched, so re-running the
// sync yields the same set of entries.
func (r *DefaultLedgerRepository) SyncSaleCommissionLedgers(ctx context.Context, sale *domain.Sale, opts domain.LedgerSyncOptions) ([]*domain.CommissionLedgerEntry, error) {
	payouts, err := sale.Payouts()
	if err != nil {
		return nil, fmt.Errorf("sale %s: %w", sale.ID, err)
	}
	if len(payouts) == 0 {
		return nil, nil
	}

	createdAt := opts.At
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	db := r.DB.WithContext(ctx)
	for _, p := range payouts {
		if p.ProfileID == "" {
			return nil, fmt.Errorf("sale %s: %s payout without payee", sale.ID, p.Type)
		}
		entry := &models.CommissionLedgerEntryModel{
			ID:             uuid.New().String(),
			SaleID:         sale.ID,
			PayeeProfileID: p.ProfileID,
			PayeeRole:      string(p.Role),
			Type:           string(p.Type),
			Amount:         p.Amount,
			Status:         string(domain.LedgerEntryPending),
			CreatedAt:      createdAt,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sale_id"}, {Name: "payee_profile_id"}, {Name: "commission_type"}},
			DoNothing: true,
		}).Create(entry).Error; err != nil {
			return nil, fmt.Errorf("write %s ledger entry for sale %s: %w", p.Type, sale.ID, err)
		}
	}

	return r.GetEntriesBySaleID(ctx, sale.ID)
}

func (r *DefaultLedgerRepository) GetEntriesBySaleID(ctx context.Context, saleID string) ([]*domain.CommissionLedgerEntry, error) {
	var entryModels []models.CommissionLedgerEntryModel
	if err := r.DB.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at, commission_type").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*domain.CommissionLedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = mappers.ToDomainLedgerEntry(&entryModels[i])
	}
	return entries, nil
}
