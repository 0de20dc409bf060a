package mappers

import (
	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/datatypes"
)

func ToDomainProfile(model *models.PartnerProfileModel) *domain.PartnerProfile {
	return &domain.PartnerProfile{
		ID:        model.ID,
		AccountID: model.AccountID,
		Role:      domain.PartnerRole(model.Role),
		Metadata:  fromJSONMap(model.Metadata),
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMProfile(profile *domain.PartnerProfile) *models.PartnerProfileModel {
	return &models.PartnerProfileModel{
		ID:        profile.ID,
		AccountID: profile.AccountID,
		Role:      string(profile.Role),
		Metadata:  datatypes.JSONMap(profile.Metadata),
		CreatedAt: profile.CreatedAt,
	}
}

func ToDomainAccount(model *models.AccountModel) *domain.Account {
	return &domain.Account{
		ID:        model.ID,
		Email:     model.Email,
		Name:      model.Name,
		Role:      domain.AccountRole(model.Role),
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMAccount(account *domain.Account) *models.AccountModel {
	return &models.AccountModel{
		ID:        account.ID,
		Email:     account.Email,
		Name:      account.Name,
		Role:      string(account.Role),
		CreatedAt: account.CreatedAt,
	}
}

func ToDomainContract(model *models.PartnerContractModel) *domain.PartnerContract {
	return &domain.PartnerContract{
		AccountID:    model.AccountID,
		Status:       domain.ContractStatus(model.Status),
		TerminatedAt: model.TerminatedAt,
		DBRecovered:  model.DBRecovered,
	}
}
