package domain

import (
	"context"
	"time"
)

type AuditKind string

const (
	AuditCalculated AuditKind = "CALCULATED"
	AuditSyncFailed AuditKind = "SYNC_FAILED"
)

// AuditRecord is append-only.
type AuditRecord struct {
	ID                string
	Kind              AuditKind
	SaleID            string
	PayeeProfileID    string
	AccountID         string
	PerformedBySystem bool
	Details           map[string]any
	CreatedAt         time.Time
}

type AuditLogger interface {
	LogCommissionAudit(ctx context.Context, record *AuditRecord) error
}

type AuditRepository interface {
	AuditLogger
	GetAuditRecordsBySaleID(ctx context.Context, saleID string) ([]*AuditRecord, error)
}
