package domain

import "context"

// Tx exposes repositories bound to one database transaction.
type Tx interface {
	Leads() LeadRepository
	Products() ProductRepository
	Sales() SaleRepository
	Partners() PartnerRepository
	Relations() PartnerRelationRepository
	Contracts() PartnerContractRepository
	Ledger() LedgerRepository
	Audit() AuditRepository
	// Savepoint runs fn in a nested transaction. An error from fn rolls back
	// only the work done inside it.
	Savepoint(ctx context.Context, fn func(tx Tx) error) error
}

type UnitOfWork interface {
	// Do runs fn in a transaction, committing when fn returns nil.
	Do(ctx context.Context, fn func(tx Tx) error) error
}
