package setup_test

import (
	"context"
	"testing"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/app/setup"
	"github.com/LavaJover/cruise-commission-service/internal/config"
	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/infrastructure/postgres/pgtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.CommissionConfig {
	return &config.CommissionConfig{
		CommissionRule: config.CommissionRule{
			Rate:            "0.033",
			GracePeriodDays: 7,
			Timezone:        "UTC",
			HQAdminEmail:    "hq@cruise.test",
			HQAdminName:     "Head Office",
			AlertTimeout:    time.Second,
		},
	}
}

func TestInitializeWithoutBroker(t *testing.T) {
	db := pgtest.NewDB(t)
	deps, err := setup.InitializeDependencies(testConfig(), db, nil)
	require.NoError(t, err)

	assert.Nil(t, deps.EventPublisher)
	assert.Nil(t, deps.Subscriber)
	assert.Nil(t, deps.Notifier.Publisher)
	assert.Nil(t, deps.Notifier.Mailer)
	assert.NotNil(t, deps.Notifier.Store)

	ucs, err := setup.InitializeUsecases(deps)
	require.NoError(t, err)
	assert.NotNil(t, ucs.Commission)
	assert.NotNil(t, ucs.Relations)

	families, err := deps.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestBootstrapHQIsIdempotent(t *testing.T) {
	db := pgtest.NewDB(t)
	deps, err := setup.InitializeDependencies(testConfig(), db, nil)
	require.NoError(t, err)

	first, err := deps.BootstrapHQ(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RoleHQ, first.Role)

	second, err := deps.BootstrapHQ(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestInitializeUsecasesRejectsBadRate(t *testing.T) {
	cfg := testConfig()
	cfg.CommissionRule.Rate = "three percent"
	deps, err := setup.InitializeDependencies(cfg, pgtest.NewDB(t), nil)
	require.NoError(t, err)

	_, err = setup.InitializeUsecases(deps)
	assert.Error(t, err)
}
