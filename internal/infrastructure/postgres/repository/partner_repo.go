package repository

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultPartnerRepository struct {
	DB *gorm.DB
}

func NewDefaultPartnerRepository(db *gorm.DB) *DefaultPartnerRepository {
	return &DefaultPartnerRepository{DB: db}
}

func (r *DefaultPartnerRepository) GetProfileByID(ctx context.Context, profileID string) (*domain.PartnerProfile, error) {
	var model models.PartnerProfileModel
	err := r.DB.WithContext(ctx).First(&model, "id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainProfile(&model), nil
}

func (r *DefaultPartnerRepository) GetHQProfile(ctx context.Context) (*domain.PartnerProfile, error) {
	var model models.PartnerProfileModel
	err := r.DB.WithContext(ctx).First(&model, "role = ?", domain.RoleHQ).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainProfile(&model), nil
}

func (r *DefaultPartnerRepository) EnsureHQProfile(ctx context.Context, adminEmail, adminName string) (*domain.PartnerProfile, error) {
	hq, err := r.GetHQProfile(ctx)
	if err == nil {
		return hq, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	db := r.DB.WithContext(ctx)

	admin := &models.AccountModel{
		ID:    uuid.New().String(),
		Email: adminEmail,
		Name:  adminName,
		Role:  string(domain.AccountAdmin),
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(admin).Error; err != nil {
		return nil, err
	}

	var account models.AccountModel
	if err := db.First(&account, "email = ?", adminEmail).Error; err != nil {
		return nil, err
	}

	// A concurrent bootstrap may win the single-HQ index; DO NOTHING turns
	// that into a plain re-read below.
	profile := &models.PartnerProfileModel{
		ID:        uuid.New().String(),
		AccountID: account.ID,
		Role:      string(domain.RoleHQ),
		Metadata: datatypes.JSONMap{
			"bootstrap":       true,
			"bootstrapped_at": time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(profile).Error; err != nil {
		return nil, err
	}

	return r.GetHQProfile(ctx)
}

func (r *DefaultPartnerRepository) CreateProfile(ctx context.Context, profile *domain.PartnerProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if !profile.Role.Valid() {
		return domain.ErrUnknownPartnerRole
	}
	return r.DB.WithContext(ctx).Create(mappers.ToGORMProfile(profile)).Error
}

func (r *DefaultPartnerRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	return r.DB.WithContext(ctx).Create(mappers.ToGORMAccount(account)).Error
}
