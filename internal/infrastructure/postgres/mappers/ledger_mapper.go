package mappers

import (
	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/datatypes"
)

func ToDomainLedgerEntry(model *models.CommissionLedgerEntryModel) *domain.CommissionLedgerEntry {
	return &domain.CommissionLedgerEntry{
		ID:             model.ID,
		SaleID:         model.SaleID,
		PayeeProfileID: model.PayeeProfileID,
		PayeeRole:      domain.PartnerRole(model.PayeeRole),
		Type:           domain.CommissionType(model.Type),
		Amount:         model.Amount,
		Status:         domain.LedgerEntryStatus(model.Status),
		CreatedAt:      model.CreatedAt,
	}
}

func ToDomainAuditRecord(model *models.AuditRecordModel) *domain.AuditRecord {
	return &domain.AuditRecord{
		ID:                model.ID,
		Kind:              domain.AuditKind(model.Kind),
		SaleID:            model.SaleID,
		PayeeProfileID:    model.PayeeProfileID,
		AccountID:         model.AccountID,
		PerformedBySystem: model.PerformedBySystem,
		Details:           fromJSONMap(model.Details),
		CreatedAt:         model.CreatedAt,
	}
}

func ToGORMAuditRecord(record *domain.AuditRecord) *models.AuditRecordModel {
	return &models.AuditRecordModel{
		ID:                record.ID,
		Kind:              string(record.Kind),
		SaleID:            record.SaleID,
		PayeeProfileID:    record.PayeeProfileID,
		AccountID:         record.AccountID,
		PerformedBySystem: record.PerformedBySystem,
		Details:           datatypes.JSONMap(record.Details),
		CreatedAt:         record.CreatedAt,
	}
}
