package commission

import (
	"fmt"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/shopspring/decimal"
)

const DefaultRate = "0.033"

// Calculator applies one flat rate to net revenue and assigns the whole
// amount to the resolved owner.
type Calculator struct {
	rate decimal.Decimal
}

func NewCalculator(rate string) (*Calculator, error) {
	if rate == "" {
		rate = DefaultRate
	}
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid commission rate %q: %w", rate, err)
	}
	if !r.IsPositive() {
		return nil, fmt.Errorf("commission rate must be positive, got %s", rate)
	}
	return &Calculator{rate: r}, nil
}

func (c *Calculator) Rate() decimal.Decimal {
	return c.rate
}

// Calculate floors netRevenue*rate to whole minor units. Amounts below one
// unit produce an empty breakdown.
func (c *Calculator) Calculate(netRevenue int64, o *Ownership) domain.CommissionBreakdown {
	amount := decimal.NewFromInt(netRevenue).Mul(c.rate).Floor()
	if amount.LessThan(decimal.NewFromInt(1)) {
		return domain.CommissionBreakdown{}
	}
	v := amount.IntPart()

	switch o.FinalRole {
	case domain.RoleBranchManager:
		return domain.CommissionBreakdown{Branch: &v}
	case domain.RoleSalesAgent:
		if o.FinalAgentID == "" {
			return domain.CommissionBreakdown{}
		}
		return domain.CommissionBreakdown{Sales: &v}
	case domain.RoleHQ:
		return domain.CommissionBreakdown{Override: &v}
	}
	return domain.CommissionBreakdown{}
}
