package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/pgtest"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string  { return &v }

func createProfile(t *testing.T, db *gorm.DB, role domain.PartnerRole) *domain.PartnerProfile {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewDefaultPartnerRepository(db)

	account := &domain.Account{Email: uuid.NewString() + "@test.local", Role: domain.AccountPartner}
	require.NoError(t, repo.CreateAccount(ctx, account))
	profile := &domain.PartnerProfile{AccountID: account.ID, Role: role}
	require.NoError(t, repo.CreateProfile(ctx, profile))
	return profile
}

func TestEnsureHQProfile_Idempotent(t *testing.T) {
	db := pgtest.NewDB(t)
	repo := repository.NewDefaultPartnerRepository(db)
	ctx := context.Background()

	_, err := repo.GetHQProfile(ctx)
	require.ErrorIs(t, err, domain.ErrProfileNotFound)

	first, err := repo.EnsureHQProfile(ctx, "hq@test.local", "HQ")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleHQ, first.Role)
	assert.Equal(t, true, first.Metadata["bootstrap"])

	second, err := repo.EnsureHQProfile(ctx, "hq@test.local", "HQ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestEnsureHQProfile_ConcurrentCallersShareOneProfile(t *testing.T) {
	db := pgtest.NewDB(t)
	repo := repository.NewDefaultPartnerRepository(db)
	ctx := context.Background()

	const callers = 8
	ids := make([]string, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hq, err := repo.EnsureHQProfile(ctx, "hq@test.local", "HQ")
			errs[i] = err
			if hq != nil {
				ids[i] = hq.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}

	var count int64
	require.NoError(t, db.Table("partner_profiles").Where("role = ?", "HQ").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateProfile_SecondHQRejected(t *testing.T) {
	db := pgtest.NewDB(t)
	repo := repository.NewDefaultPartnerRepository(db)
	ctx := context.Background()

	_, err := repo.EnsureHQProfile(ctx, "hq@test.local", "HQ")
	require.NoError(t, err)

	account := &domain.Account{Email: "other@test.local", Role: domain.AccountAdmin}
	require.NoError(t, repo.CreateAccount(ctx, account))
	err = repo.CreateProfile(ctx, &domain.PartnerProfile{AccountID: account.ID, Role: domain.RoleHQ})
	assert.Error(t, err)
}

func TestCreateProfile_UnknownRole(t *testing.T) {
	db := pgtest.NewDB(t)
	repo := repository.NewDefaultPartnerRepository(db)

	err := repo.CreateProfile(context.Background(), &domain.PartnerProfile{AccountID: "acc", Role: "TRAINEE"})
	assert.ErrorIs(t, err, domain.ErrUnknownPartnerRole)
}

func TestPartnerRelations_OneActivePerAgent(t *testing.T) {
	db := pgtest.NewDB(t)
	repo := repository.NewDefaultPartnerRelationsRepository(db)
	ctx := context.Background()

	managerA := createProfile(t, db, domain.RoleBranchManager)
	managerB := createProfile(t, db, domain.RoleBranchManager)
	agent := createProfile(t, db, domain.RoleSalesAgent)

	first := &domain.PartnerRelation{ManagerID: managerA.ID, AgentID: agent.ID}
	require.NoError(t, repo.CreateRelationship(ctx, first))

	err := repo.CreateRelationship(ctx, &domain.PartnerRelation{ManagerID: managerB.ID, AgentID: agent.ID})
	assert.Error(t, err)

	manager, err := repo.GetActiveManager(ctx, agent.ID)
	require.NoError(t, err)
	require.NotNil(t, manager)
	assert.Equal(t, managerA.ID, manager.ID)

	require.NoError(t, repo.TerminateRelationship(ctx, first.ID, time.Now()))
	assert.ErrorIs(t, repo.TerminateRelationship(ctx, first.ID, time.Now()), domain.ErrRelationNotFound)

	manager, err = repo.GetActiveManager(ctx, agent.ID)
	require.NoError(t, err)
	assert.Nil(t, manager)

	require.NoError(t, repo.CreateRelationship(ctx, &domain.PartnerRelation{ManagerID: managerB.ID, AgentID: agent.ID}))
	relations, err := repo.GetActiveRelationsByManagerID(ctx, managerB.ID)
	require.NoError(t, err)
	require.Len(t, relations, 1)
	assert.Equal(t, agent.ID, relations[0].AgentID)
}

func TestContractRepository_Upsert(t *testing.T) {
	db := pgtest.NewDB(t)
	repo := repository.NewDefaultContractRepository(db)
	ctx := context.Background()

	contract, err := repo.GetContractStatus(ctx, "acc-1")
	require.NoError(t, err)
	assert.Nil(t, contract)

	require.NoError(t, repo.SaveContract(ctx, &domain.PartnerContract{AccountID: "acc-1", Status: domain.ContractActive}))

	terminatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveContract(ctx, &domain.PartnerContract{
		AccountID:    "acc-1",
		Status:       domain.ContractTerminated,
		TerminatedAt: &terminatedAt,
		DBRecovered:  true,
	}))

	contract, err = repo.GetContractStatus(ctx, "acc-1")
	require.NoError(t, err)
	require.NotNil(t, contract)
	assert.True(t, contract.Terminated())
	assert.True(t, contract.DBRecovered)
	require.NotNil(t, contract.TerminatedAt)
	assert.True(t, terminatedAt.Equal(*contract.TerminatedAt))
}

func TestProductRepository_InactiveHidden(t *testing.T) {
	db := pgtest.NewDB(t)
	repo := repository.NewDefaultProductRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveProduct(ctx, &domain.Product{Code: "MED-7", Name: "Med 7", SaleAmount: 3000, CostAmount: 1000, Active: true}))
	require.NoError(t, repo.SaveProduct(ctx, &domain.Product{Code: "OLD-1", SaleAmount: 10, CostAmount: 1, Active: false}))

	product, err := repo.GetActiveProduct(ctx, "MED-7")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.EqualValues(t, 2000, product.NetRevenue())

	product, err = repo.GetActiveProduct(ctx, "OLD-1")
	require.NoError(t, err)
	assert.Nil(t, product)

	product, err = repo.GetActiveProduct(ctx, "NOPE")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestLeadRepository_NotFound(t *testing.T) {
	db := pgtest.NewDB(t)
	repo := repository.NewDefaultLeadRepository(db)

	_, err := repo.GetLeadForUpdate(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrLeadNotFound)
}

func newSale(leadID, managerID string) *domain.Sale {
	return &domain.Sale{
		LeadID:           leadID,
		ProductCode:      "MED-7",
		SaleAmount:       3000,
		CostAmount:       1000,
		NetRevenue:       2000,
		ManagerID:        managerID,
		BranchCommission: int64Ptr(66),
	}
}

func TestSaleRepository_OneOpenSalePerLeadProduct(t *testing.T) {
	db := pgtest.NewDB(t)
	repo := repository.NewDefaultSaleRepository(db)
	ctx := context.Background()

	first := newSale("lead-1", "mgr-1")
	created, err := repo.CreateSale(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, first.Reference)
	assert.Equal(t, domain.CommissionUnprocessed, first.CommissionState)

	created, err = repo.CreateSale(ctx, newSale("lead-1", "mgr-1"))
	require.NoError(t, err)
	assert.False(t, created)

	open, err := repo.FindOpenSale(ctx, "lead-1", "MED-7")
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, first.ID, open.ID)

	require.NoError(t, db.Table("sales").Where("id = ?", first.ID).Update("status", domain.SaleCanceled).Error)

	open, err = repo.FindOpenSale(ctx, "lead-1", "MED-7")
	require.NoError(t, err)
	assert.Nil(t, open)

	created, err = repo.CreateSale(ctx, newSale("lead-1", "mgr-1"))
	require.NoError(t, err)
	assert.True(t, created)
}

func TestSaleRepository_CommissionState(t *testing.T) {
	db := pgtest.NewDB(t)
	repo := repository.NewDefaultSaleRepository(db)
	ctx := context.Background()

	sale := newSale("lead-2", "mgr-1")
	_, err := repo.CreateSale(ctx, sale)
	require.NoError(t, err)

	require.NoError(t, repo.MarkCommissionFailed(ctx, sale.ID, "ledger down"))
	failed, err := repo.FindSalesByCommissionState(ctx, domain.CommissionFailed, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "ledger down", failed[0].CommissionError)
	assert.Equal(t, 1, failed[0].SyncAttempts)
	assert.True(t, failed[0].Retryable())

	now := time.Now()
	require.NoError(t, repo.MarkCommissionProcessed(ctx, sale.ID, now))
	assert.ErrorIs(t, repo.MarkCommissionProcessed(ctx, sale.ID, now), domain.ErrSaleNotRetryable)

	got, err := repo.GetSaleByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, got.CommissionProcessed())
	assert.Empty(t, got.CommissionError)
	assert.Equal(t, 2, got.SyncAttempts)
	require.NotNil(t, got.CommissionProcessedAt)

	_, err = repo.GetSaleForUpdate(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}

func TestLedgerRepository_SyncIsIdempotent(t *testing.T) {
	db := pgtest.NewDB(t)
	sales := repository.NewDefaultSaleRepository(db)
	ledger := repository.NewDefaultLedgerRepository(db)
	ctx := context.Background()

	sale := newSale("lead-3", "mgr-1")
	sale.BranchCommission = nil
	sale.AgentID = strPtr("agent-1")
	sale.SalesCommission = int64Ptr(66)
	_, err := sales.CreateSale(ctx, sale)
	require.NoError(t, err)

	opts := domain.LedgerSyncOptions{TriggeredBy: "system", At: time.Now()}
	entries, err := ledger.SyncSaleCommissionLedgers(ctx, sale, opts)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "agent-1", entries[0].PayeeProfileID)
	assert.Equal(t, domain.CommissionSales, entries[0].Type)
	assert.EqualValues(t, 66, entries[0].Amount)
	assert.Equal(t, domain.LedgerEntryPending, entries[0].Status)

	again, err := ledger.SyncSaleCommissionLedgers(ctx, sale, opts)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, entries[0].ID, again[0].ID)
}

func TestLedgerRepository_NoCommissionNoEntries(t *testing.T) {
	db := pgtest.NewDB(t)
	ledger := repository.NewDefaultLedgerRepository(db)

	sale := &domain.Sale{ID: "sale-x", ManagerID: "mgr-1"}
	entries, err := ledger.SyncSaleCommissionLedgers(context.Background(), sale, domain.LedgerSyncOptions{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLedgerRepository_SalesCommissionWithoutAgent(t *testing.T) {
	db := pgtest.NewDB(t)
	ledger := repository.NewDefaultLedgerRepository(db)

	sale := &domain.Sale{ID: "sale-y", ManagerID: "mgr-1", SalesCommission: int64Ptr(10)}
	_, err := ledger.SyncSaleCommissionLedgers(context.Background(), sale, domain.LedgerSyncOptions{})
	assert.ErrorIs(t, err, domain.ErrMissingAgent)
}

func TestAuditAndNotificationRepositories(t *testing.T) {
	db := pgtest.NewDB(t)
	audit := repository.NewDefaultAuditRepository(db)
	notifications := repository.NewDefaultNotificationRepository(db)
	ctx := context.Background()

	require.NoError(t, audit.LogCommissionAudit(ctx, &domain.AuditRecord{
		Kind:              domain.AuditCalculated,
		SaleID:            "sale-1",
		PayeeProfileID:    "mgr-1",
		PerformedBySystem: true,
		Details:           map[string]any{"amount": 66},
	}))
	records, err := audit.GetAuditRecordsBySaleID(ctx, "sale-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.AuditCalculated, records[0].Kind)
	assert.Equal(t, int64(66), records[0].Details["amount"])

	require.NoError(t, notifications.CreateNotification(ctx, &domain.AdminNotification{
		Kind:    domain.NotificationCommissionFailed,
		Title:   "Commission calculation failed",
		Message: "boom",
		SaleID:  "sale-1",
	}))
	list, err := notifications.GetNotificationsBySaleID(ctx, "sale-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Read)
}
