package mappers

import (
	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
)

func ToDomainRelationship(model *models.PartnerRelationModel) *domain.PartnerRelation {
	return &domain.PartnerRelation{
		ID:             model.ID,
		ManagerID:      model.ManagerID,
		AgentID:        model.AgentID,
		Status:         domain.RelationStatus(model.Status),
		ConnectedAt:    model.ConnectedAt,
		DisconnectedAt: model.DisconnectedAt,
	}
}

func ToGORMRelationship(relation *domain.PartnerRelation) *models.PartnerRelationModel {
	return &models.PartnerRelationModel{
		ID:             relation.ID,
		ManagerID:      relation.ManagerID,
		AgentID:        relation.AgentID,
		Status:         string(relation.Status),
		ConnectedAt:    relation.ConnectedAt,
		DisconnectedAt: relation.DisconnectedAt,
	}
}
