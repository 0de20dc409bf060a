package postgres

import (
	"fmt"

	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

func Models() []interface{} {
	return []interface{}{
		&models.AccountModel{},
		&models.PartnerProfileModel{},
		&models.PartnerRelationModel{},
		&models.PartnerContractModel{},
		&models.LeadModel{},
		&models.ProductModel{},
		&models.SaleModel{},
		&models.CommissionLedgerEntryModel{},
		&models.AuditRecordModel{},
		&models.AdminNotificationModel{},
	}
}

// Partial unique indexes. Kept in sync with migrations/000001_init.up.sql.
var constraints = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_partner_profiles_hq
		ON partner_profiles (role) WHERE role = 'HQ'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_partner_relations_active_agent
		ON partner_relations (agent_id) WHERE status = 'ACTIVE'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_sales_open_lead_product
		ON sales (lead_id, product_code) WHERE status IN ('PENDING', 'CONFIRMED')`,
}

func EnsureConstraints(db *gorm.DB) error {
	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure constraint: %w", err)
		}
	}
	return nil
}
