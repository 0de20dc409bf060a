package commission

import (
	"testing"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_ActiveAgentExample(t *testing.T) {
	c, err := NewCalculator("0.033")
	require.NoError(t, err)

	b := c.Calculate(1_000_000, &Ownership{FinalRole: domain.RoleSalesAgent, FinalAgentID: "agent-1"})
	require.NotNil(t, b.Sales)
	assert.EqualValues(t, 33_000, *b.Sales)
	assert.Nil(t, b.Branch)
	assert.Nil(t, b.Override)
}

func TestCalculator_ExactlyOneFieldPerRole(t *testing.T) {
	c, err := NewCalculator("")
	require.NoError(t, err)

	cases := []struct {
		ownership *Ownership
		pick      func(domain.CommissionBreakdown) *int64
	}{
		{&Ownership{FinalRole: domain.RoleBranchManager}, func(b domain.CommissionBreakdown) *int64 { return b.Branch }},
		{&Ownership{FinalRole: domain.RoleSalesAgent, FinalAgentID: "a"}, func(b domain.CommissionBreakdown) *int64 { return b.Sales }},
		{&Ownership{FinalRole: domain.RoleHQ}, func(b domain.CommissionBreakdown) *int64 { return b.Override }},
	}
	for _, tc := range cases {
		t.Run(string(tc.ownership.FinalRole), func(t *testing.T) {
			b := c.Calculate(250_000, tc.ownership)
			set := 0
			for _, f := range []*int64{b.Branch, b.Sales, b.Override} {
				if f != nil {
					set++
					assert.Positive(t, *f)
				}
			}
			assert.Equal(t, 1, set)
			require.NotNil(t, tc.pick(b))
			assert.EqualValues(t, 8250, *tc.pick(b))
		})
	}
}

func TestCalculator_Floors(t *testing.T) {
	c, err := NewCalculator("0.033")
	require.NoError(t, err)

	b := c.Calculate(999, &Ownership{FinalRole: domain.RoleHQ})
	require.NotNil(t, b.Override)
	assert.EqualValues(t, 32, *b.Override)
}

func TestCalculator_BelowOneUnitIsEmpty(t *testing.T) {
	c, err := NewCalculator("0.033")
	require.NoError(t, err)

	assert.True(t, c.Calculate(30, &Ownership{FinalRole: domain.RoleHQ}).Empty())
	assert.True(t, c.Calculate(0, &Ownership{FinalRole: domain.RoleBranchManager}).Empty())
	assert.True(t, c.Calculate(-5000, &Ownership{FinalRole: domain.RoleBranchManager}).Empty())
	assert.True(t, c.Calculate(1_000_000, &Ownership{FinalRole: domain.RoleSalesAgent}).Empty())
}

func TestNewCalculator_RejectsBadRates(t *testing.T) {
	_, err := NewCalculator("three percent")
	assert.Error(t, err)
	_, err = NewCalculator("-0.01")
	assert.Error(t, err)
}
