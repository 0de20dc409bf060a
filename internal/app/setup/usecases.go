package setup

import (
	"fmt"

	"github.com/LavaJover/cruise-commission-service/internal/usecase"
	"github.com/LavaJover/cruise-commission-service/internal/usecase/commission"
)

type Usecases struct {
	Commission *commission.DefaultCommissionUsecase
	Relations  *usecase.DefaultPartnerRelationsUsecase
}

func InitializeUsecases(deps *Dependencies) (*Usecases, error) {
	loc, err := deps.Config.CommissionRule.Location()
	if err != nil {
		return nil, fmt.Errorf("commission timezone: %w", err)
	}
	rule := deps.Config.CommissionRule

	var eventPublisher commission.EventPublisher
	if deps.EventPublisher != nil {
		eventPublisher = deps.EventPublisher
	}

	commissionUc, err := commission.NewDefaultCommissionUsecase(
		deps.UnitOfWork,
		deps.Notifier,
		eventPublisher,
		deps.Metrics,
		deps.Logger.With("component", "commission"),
		commission.Options{
			Rate:         rule.Rate,
			GraceDays:    rule.GracePeriodDays,
			Location:     loc,
			HQAdminEmail: rule.HQAdminEmail,
			HQAdminName:  rule.HQAdminName,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("commission usecase: %w", err)
	}

	return &Usecases{
		Commission: commissionUc,
		Relations:  usecase.NewDefaultPartnerRelationsUsecase(deps.UnitOfWork),
	}, nil
}
