package domain

import (
	"context"
	"time"
)

type AccountRole string

const (
	AccountAdmin    AccountRole = "ADMIN"
	AccountPartner  AccountRole = "PARTNER"
	AccountCustomer AccountRole = "CUSTOMER"
)

type Account struct {
	ID        string
	Email     string
	Name      string
	Role      AccountRole
	CreatedAt time.Time
}

type PartnerRole string

const (
	RoleHQ            PartnerRole = "HQ"
	RoleBranchManager PartnerRole = "BRANCH_MANAGER"
	RoleSalesAgent    PartnerRole = "SALES_AGENT"
)

func (r PartnerRole) Valid() bool {
	switch r {
	case RoleHQ, RoleBranchManager, RoleSalesAgent:
		return true
	}
	return false
}

// PartnerProfile is the commission-bearing identity of a partner account.
// Exactly one profile with RoleHQ exists system-wide.
type PartnerProfile struct {
	ID        string
	AccountID string
	Role      PartnerRole
	Metadata  map[string]any
	CreatedAt time.Time
}

type RelationStatus string

const (
	RelationActive     RelationStatus = "ACTIVE"
	RelationTerminated RelationStatus = "TERMINATED"
)

// PartnerRelation is a directed manager -> agent edge. At most one ACTIVE
// relation per agent.
type PartnerRelation struct {
	ID             string
	ManagerID      string
	AgentID        string
	Status         RelationStatus
	ConnectedAt    time.Time
	DisconnectedAt *time.Time
}

type ContractStatus string

const (
	ContractActive     ContractStatus = "active"
	ContractPending    ContractStatus = "pending"
	ContractSuspended  ContractStatus = "suspended"
	ContractTerminated ContractStatus = "terminated"
)

// PartnerContract tracks the legal status of a partner account.
type PartnerContract struct {
	AccountID    string
	Status       ContractStatus
	TerminatedAt *time.Time
	DBRecovered  bool
}

// Terminated reports whether termination rules apply. A terminated contract
// without a termination timestamp has no grace window.
func (c *PartnerContract) Terminated() bool {
	return c != nil && c.Status == ContractTerminated
}

type PartnerRepository interface {
	GetProfileByID(ctx context.Context, profileID string) (*PartnerProfile, error)
	GetHQProfile(ctx context.Context) (*PartnerProfile, error)
	// EnsureHQProfile finds or creates the HQ singleton. Safe under
	// concurrent callers: a lost insert race resolves to the winner's row.
	EnsureHQProfile(ctx context.Context, adminEmail, adminName string) (*PartnerProfile, error)
	CreateProfile(ctx context.Context, profile *PartnerProfile) error
	CreateAccount(ctx context.Context, account *Account) error
}

// ContractLookup is served by the partner-contract subsystem.
type ContractLookup interface {
	// GetContractStatus returns nil, nil when the account has no contract.
	GetContractStatus(ctx context.Context, accountID string) (*PartnerContract, error)
}

type PartnerContractRepository interface {
	ContractLookup
	SaveContract(ctx context.Context, contract *PartnerContract) error
}

// RelationLookup is served by the partner-relation subsystem.
type RelationLookup interface {
	// GetActiveManager returns nil, nil when the agent has no ACTIVE relation.
	GetActiveManager(ctx context.Context, agentProfileID string) (*PartnerProfile, error)
}

type PartnerRelationRepository interface {
	RelationLookup
	GetActiveRelationByAgentID(ctx context.Context, agentID string) (*PartnerRelation, error)
	GetActiveRelationsByManagerID(ctx context.Context, managerID string) ([]*PartnerRelation, error)
	CreateRelationship(ctx context.Context, relation *PartnerRelation) error
	TerminateRelationship(ctx context.Context, relationID string, at time.Time) error
}
