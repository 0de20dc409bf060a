package mappers

import (
	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/datatypes"
)

func ToDomainLead(model *models.LeadModel) *domain.Lead {
	return &domain.Lead{
		ID:        model.ID,
		ManagerID: model.ManagerID,
		AgentID:   model.AgentID,
		Status:    model.Status,
		Metadata:  fromJSONMap(model.Metadata),
	}
}

func ToGORMLead(lead *domain.Lead) *models.LeadModel {
	return &models.LeadModel{
		ID:        lead.ID,
		ManagerID: lead.ManagerID,
		AgentID:   lead.AgentID,
		Status:    lead.Status,
		Metadata:  datatypes.JSONMap(lead.Metadata),
	}
}

func ToDomainProduct(model *models.ProductModel) *domain.Product {
	return &domain.Product{
		Code:       model.Code,
		Name:       model.Name,
		SaleAmount: model.SaleAmount,
		CostAmount: model.CostAmount,
		Active:     model.Active,
	}
}

func ToGORMProduct(product *domain.Product) *models.ProductModel {
	return &models.ProductModel{
		Code:       product.Code,
		Name:       product.Name,
		SaleAmount: product.SaleAmount,
		CostAmount: product.CostAmount,
		Active:     product.Active,
	}
}
