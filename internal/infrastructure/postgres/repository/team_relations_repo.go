package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultPartnerRelationsRepository struct {
	DB *gorm.DB
}

func NewDefaultPartnerRelationsRepository(db *gorm.DB) *DefaultPartnerRelationsRepository {
	return &DefaultPartnerRelationsRepository{
		DB: db,
	}
}

func (r *DefaultPartnerRelationsRepository) CreateRelationship(ctx context.Context, relation *domain.PartnerRelation) error {
	if relation.ID == "" {
		relation.ID = uuid.New().String()
	}
	if relation.Status == "" {
		relation.Status = domain.RelationActive
	}
	if relation.ConnectedAt.IsZero() {
		relation.ConnectedAt = time.Now()
	}
	model := mappers.ToGORMRelationship(relation)
	return r.DB.WithContext(ctx).Create(model).Error
}

func (r *DefaultPartnerRelationsRepository) GetActiveRelationByAgentID(ctx context.Context, agentID string) (*domain.PartnerRelation, error) {
	var model models.PartnerRelationModel
	err := r.DB.WithContext(ctx).
		Where("agent_id = ? AND status = ?", agentID, domain.RelationActive).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRelationNotFound
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainRelationship(&model), nil
}

func (r *DefaultPartnerRelationsRepository) GetActiveRelationsByManagerID(ctx context.Context, managerID string) ([]*domain.PartnerRelation, error) {
	var relationModels []models.PartnerRelationModel
	if err := r.DB.WithContext(ctx).
		Where("manager_id = ? AND status = ?", managerID, domain.RelationActive).
		Order("connected_at").
		Find(&relationModels).Error; err != nil {
		return nil, err
	}

	relationships := make([]*domain.PartnerRelation, len(relationModels))
	for i := range relationModels {
		relationships[i] = mappers.ToDomainRelationship(&relationModels[i])
	}
	return relationships, nil
}

func (r *DefaultPartnerRelationsRepository) GetActiveManager(ctx context.Context, agentProfileID string) (*domain.PartnerProfile, error) {
	relation, err := r.GetActiveRelationByAgentID(ctx, agentProfileID)
	if errors.Is(err, domain.ErrRelationNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var manager models.PartnerProfileModel
	err = r.DB.WithContext(ctx).First(&manager, "id = ?", relation.ManagerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("relation %s references manager %s: %w", relation.ID, relation.ManagerID, domain.ErrProfileNotFound)
	}
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainProfile(&manager), nil
}

func (r *DefaultPartnerRelationsRepository) TerminateRelationship(ctx context.Context, relationID string, at time.Time) error {
	res := r.DB.WithContext(ctx).
		Model(&models.PartnerRelationModel{}).
		Where("id = ? AND status = ?", relationID, domain.RelationActive).
		Updates(map[string]interface{}{
			"status":          domain.RelationTerminated,
			"disconnected_at": at,
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRelationNotFound
	}
	return nil
}
