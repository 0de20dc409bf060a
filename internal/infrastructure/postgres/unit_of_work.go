package postgres

import (
	"context"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/repository"
	"gorm.io/gorm"
)

type GormUnitOfWork struct {
	DB *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{DB: db}
}

func (u *GormUnitOfWork) Do(ctx context.Context, fn func(tx domain.Tx) error) error {
	return u.DB.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(newGormTx(db))
	})
}

type gormTx struct {
	db        *gorm.DB
	leads     *repository.DefaultLeadRepository
	products  *repository.DefaultProductRepository
	sales     *repository.DefaultSaleRepository
	partners  *repository.DefaultPartnerRepository
	relations *repository.DefaultPartnerRelationsRepository
	contracts *repository.DefaultContractRepository
	ledger    *repository.DefaultLedgerRepository
	audit     *repository.DefaultAuditRepository
}

func newGormTx(db *gorm.DB) *gormTx {
	return &gormTx{
		db:        db,
		leads:     repository.NewDefaultLeadRepository(db),
		products:  repository.NewDefaultProductRepository(db),
		sales:     repository.NewDefaultSaleRepository(db),
		partners:  repository.NewDefaultPartnerRepository(db),
		relations: repository.NewDefaultPartnerRelationsRepository(db),
		contracts: repository.NewDefaultContractRepository(db),
		ledger:    repository.NewDefaultLedgerRepository(db),
		audit:     repository.NewDefaultAuditRepository(db),
	}
}

func (t *gormTx) Leads() domain.LeadRepository                { return t.leads }
func (t *gormTx) Products() domain.ProductRepository          { return t.products }
func (t *gormTx) Sales() domain.SaleRepository                { return t.sales }
func (t *gormTx) Partners() domain.PartnerRepository          { return t.partners }
func (t *gormTx) Relations() domain.PartnerRelationRepository { return t.relations }
func (t *gormTx) Contracts() domain.PartnerContractRepository { return t.contracts }
func (t *gormTx) Ledger() domain.LedgerRepository             { return t.ledger }
func (t *gormTx) Audit() domain.AuditRepository               { return t.audit }

// Savepoint relies on gorm turning a nested Transaction into SAVEPOINT /
// ROLLBACK TO SAVEPOINT.
func (t *gormTx) Savepoint(ctx context.Context, fn func(tx domain.Tx) error) error {
	return t.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(newGormTx(db))
	})
}
