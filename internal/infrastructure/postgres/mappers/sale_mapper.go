package mappers

import (
	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/datatypes"
)

func ToDomainSale(model *models.SaleModel) *domain.Sale {
	return &domain.Sale{
		ID:                    model.ID,
		Reference:             model.Reference,
		LeadID:                model.LeadID,
		ProductCode:           model.ProductCode,
		SaleAmount:            model.SaleAmount,
		CostAmount:            model.CostAmount,
		NetRevenue:            model.NetRevenue,
		ManagerID:             model.ManagerID,
		AgentID:               model.AgentID,
		BranchCommission:      model.BranchCommission,
		SalesCommission:       model.SalesCommission,
		OverrideCommission:    model.OverrideCommission,
		Status:                domain.SaleStatus(model.Status),
		CommissionState:       domain.CommissionState(model.CommissionState),
		CommissionProcessedAt: model.CommissionProcessedAt,
		CommissionError:       model.CommissionError,
		SyncAttempts:          model.SyncAttempts,
		Metadata:              fromJSONMap(model.Metadata),
		OccurredAt:            model.OccurredAt,
		CreatedAt:             model.CreatedAt,
		UpdatedAt:             model.UpdatedAt,
	}
}

func ToGORMSale(sale *domain.Sale) *models.SaleModel {
	return &models.SaleModel{
		ID:                    sale.ID,
		Reference:             sale.Reference,
		LeadID:                sale.LeadID,
		ProductCode:           sale.ProductCode,
		SaleAmount:            sale.SaleAmount,
		CostAmount:            sale.CostAmount,
		NetRevenue:            sale.NetRevenue,
		ManagerID:             sale.ManagerID,
		AgentID:               sale.AgentID,
		BranchCommission:      sale.BranchCommission,
		SalesCommission:       sale.SalesCommission,
		OverrideCommission:    sale.OverrideCommission,
		Status:                string(sale.Status),
		CommissionState:       string(sale.CommissionState),
		CommissionProcessedAt: sale.CommissionProcessedAt,
		CommissionError:       sale.CommissionError,
		SyncAttempts:          sale.SyncAttempts,
		Metadata:              datatypes.JSONMap(sale.Metadata),
		OccurredAt:            sale.OccurredAt,
		CreatedAt:             sale.CreatedAt,
		UpdatedAt:             sale.UpdatedAt,
	}
}
