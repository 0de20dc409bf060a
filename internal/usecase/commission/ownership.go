package commission

import (
	"context"
	"fmt"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
)

type TransferReason string

const (
	ReasonGraceExpired TransferReason = "grace_expired"
	ReasonDBRecovered  TransferReason = "db_recovered"
	ReasonNoManager    TransferReason = "no_manager"
)

// GracePolicy decides how long a terminated partner keeps earning.
type GracePolicy struct {
	Days     int
	Location *time.Location
}

// GraceEnd is the last instant of the Days-th calendar day after termination,
// in the policy location.
func (p GracePolicy) GraceEnd(terminatedAt time.Time) time.Time {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := terminatedAt.In(loc).Date()
	return time.Date(y, m, d+p.Days, 23, 59, 59, int(999*time.Millisecond), loc)
}

// retains reports whether the contract holder keeps a sale made at
// occurredAt, and the forfeiture reason when it does not.
func (p GracePolicy) retains(c *domain.PartnerContract, occurredAt time.Time) (bool, TransferReason) {
	if !c.Terminated() {
		return true, ""
	}
	if c.DBRecovered {
		return false, ReasonDBRecovered
	}
	if c.TerminatedAt == nil || occurredAt.After(p.GraceEnd(*c.TerminatedAt)) {
		return false, ReasonGraceExpired
	}
	return true, ""
}

type OwnershipInput struct {
	Profile *domain.PartnerProfile
	// PersonalAgentID is the lead agent credited on a manager's personal sale.
	PersonalAgentID string
	OccurredAt      time.Time
}

// Transfer describes why a sale left the initiating partner.
type Transfer struct {
	Reason TransferReason
	// FallbackReason is set when the sale also skipped the agent's manager.
	FallbackReason    TransferReason
	From              []string
	OriginalManagerID string
	OriginalAgentID   string
}

type Ownership struct {
	FinalRole      domain.PartnerRole
	FinalManagerID string
	FinalAgentID   string
	Transfer       *Transfer
}

func (o *Ownership) Transferred() bool {
	return o.Transfer != nil
}

// OwnershipResolver walks agent -> manager -> HQ. It only reads.
type OwnershipResolver struct {
	Contracts domain.ContractLookup
	Relations domain.RelationLookup
	Policy    GracePolicy
}

func (r *OwnershipResolver) Resolve(ctx context.Context, in OwnershipInput) (*Ownership, error) {
	profile := in.Profile
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}

	switch profile.Role {
	case domain.RoleHQ:
		return &Ownership{FinalRole: domain.RoleHQ, FinalManagerID: profile.ID}, nil
	case domain.RoleBranchManager:
		return r.resolveManager(ctx, in)
	case domain.RoleSalesAgent:
		return r.resolveAgent(ctx, in)
	}
	return nil, fmt.Errorf("profile %s has role %q: %w", profile.ID, profile.Role, domain.ErrUnknownPartnerRole)
}

func (r *OwnershipResolver) resolveManager(ctx context.Context, in OwnershipInput) (*Ownership, error) {
	manager := in.Profile
	keep, reason, err := r.retains(ctx, manager, in.OccurredAt)
	if err != nil {
		return nil, err
	}
	if keep {
		return &Ownership{
			FinalRole:      domain.RoleBranchManager,
			FinalManagerID: manager.ID,
			FinalAgentID:   in.PersonalAgentID,
		}, nil
	}

	return &Ownership{
		FinalRole: domain.RoleHQ,
		Transfer: &Transfer{
			Reason:            reason,
			From:              []string{manager.ID},
			OriginalManagerID: manager.ID,
			OriginalAgentID:   in.PersonalAgentID,
		},
	}, nil
}

func (r *OwnershipResolver) resolveAgent(ctx context.Context, in OwnershipInput) (*Ownership, error) {
	agent := in.Profile

	manager, err := r.Relations.GetActiveManager(ctx, agent.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup manager of agent %s: %w", agent.ID, err)
	}
	managerID := ""
	if manager != nil {
		managerID = manager.ID
	}

	keep, reason, err := r.retains(ctx, agent, in.OccurredAt)
	if err != nil {
		return nil, err
	}
	if keep {
		return &Ownership{
			FinalRole:      domain.RoleSalesAgent,
			FinalManagerID: managerID,
			FinalAgentID:   agent.ID,
		}, nil
	}

	transfer := &Transfer{
		Reason:            reason,
		From:              []string{agent.ID},
		OriginalManagerID: managerID,
		OriginalAgentID:   agent.ID,
	}

	// First hop: the agent's manager.
	if manager == nil {
		transfer.FallbackReason = ReasonNoManager
		return &Ownership{FinalRole: domain.RoleHQ, Transfer: transfer}, nil
	}
	if manager.Role == domain.RoleHQ {
		return &Ownership{FinalRole: domain.RoleHQ, FinalManagerID: manager.ID, Transfer: transfer}, nil
	}

	managerKeeps, managerReason, err := r.retains(ctx, manager, in.OccurredAt)
	if err != nil {
		return nil, err
	}
	if managerKeeps {
		return &Ownership{
			FinalRole:      domain.RoleBranchManager,
			FinalManagerID: manager.ID,
			Transfer:       transfer,
		}, nil
	}

	// Second hop: HQ.
	transfer.FallbackReason = managerReason
	transfer.From = append(transfer.From, manager.ID)
	return &Ownership{FinalRole: domain.RoleHQ, Transfer: transfer}, nil
}

func (r *OwnershipResolver) retains(ctx context.Context, profile *domain.PartnerProfile, at time.Time) (bool, TransferReason, error) {
	contract, err := r.Contracts.GetContractStatus(ctx, profile.AccountID)
	if err != nil {
		return false, "", fmt.Errorf("lookup contract of profile %s: %w", profile.ID, err)
	}
	keep, reason := r.Policy.retains(contract, at)
	return keep, reason, nil
}
