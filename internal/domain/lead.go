package domain

import "context"

const (
	LeadMetaProductCode = "product_code"
	LeadMetaProductName = "product_name"
)

// Lead is a customer record owned by a manager and/or agent.
type Lead struct {
	ID        string
	ManagerID string
	AgentID   string
	Status    string
	Metadata  map[string]any
}

// ProductCode returns the product code stored in the lead metadata, if any.
func (l *Lead) ProductCode() string {
	if l == nil || l.Metadata == nil {
		return ""
	}
	code, _ := l.Metadata[LeadMetaProductCode].(string)
	return code
}

type Product struct {
	Code       string
	Name       string
	SaleAmount int64
	CostAmount int64
	Active     bool
}

func (p *Product) NetRevenue() int64 {
	return p.SaleAmount - p.CostAmount
}

type LeadRepository interface {
	// GetLeadForUpdate reads the lead and locks its row for the rest of the
	// transaction.
	GetLeadForUpdate(ctx context.Context, leadID string) (*Lead, error)
	CreateLead(ctx context.Context, lead *Lead) error
}

// ProductCatalog is served by the catalog subsystem.
type ProductCatalog interface {
	// GetActiveProduct returns nil, nil for unknown or inactive products.
	GetActiveProduct(ctx context.Context, productCode string) (*Product, error)
}

type ProductRepository interface {
	ProductCatalog
	SaveProduct(ctx context.Context, product *Product) error
}
