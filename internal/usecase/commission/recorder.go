package commission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
)

type RecordInput struct {
	Lead        *domain.Lead
	Product     *domain.Product
	Ownership   *Ownership
	Breakdown   domain.CommissionBreakdown
	OccurredAt  time.Time
	TriggeredBy string
}

// SaleRecorder creates at most one open sale per (lead, product).
type SaleRecorder struct {
	HQAdminEmail string
	HQAdminName  string
}

// Record returns the new sale, or the already open one with created=false.
func (r *SaleRecorder) Record(ctx context.Context, tx domain.Tx, in RecordInput) (*domain.Sale, bool, error) {
	existing, err := tx.Sales().FindOpenSale(ctx, in.Lead.ID, in.Product.Code)
	if err != nil {
		return nil, false, fmt.Errorf("check open sale: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	managerID, err := r.managerID(ctx, tx, in)
	if err != nil {
		return nil, false, err
	}

	sale := &domain.Sale{
		LeadID:             in.Lead.ID,
		ProductCode:        in.Product.Code,
		SaleAmount:         in.Product.SaleAmount,
		CostAmount:         in.Product.CostAmount,
		NetRevenue:         in.Product.NetRevenue(),
		ManagerID:          managerID,
		BranchCommission:   in.Breakdown.Branch,
		SalesCommission:    in.Breakdown.Sales,
		OverrideCommission: in.Breakdown.Override,
		Status:             domain.SalePending,
		CommissionState:    domain.CommissionUnprocessed,
		Metadata:           saleMetadata(in),
		OccurredAt:         in.OccurredAt,
	}
	if in.Ownership.FinalAgentID != "" {
		agentID := in.Ownership.FinalAgentID
		sale.AgentID = &agentID
	}

	created, err := tx.Sales().CreateSale(ctx, sale)
	if err != nil {
		return nil, false, fmt.Errorf("create sale: %w", err)
	}
	if created {
		return sale, true, nil
	}

	// Lost the insert race against the open-sale index.
	existing, err = tx.Sales().FindOpenSale(ctx, in.Lead.ID, in.Product.Code)
	if err != nil {
		return nil, false, fmt.Errorf("re-read open sale: %w", err)
	}
	if existing == nil {
		return nil, false, fmt.Errorf("sale for lead %s product %s was neither created nor found", in.Lead.ID, in.Product.Code)
	}
	return existing, false, nil
}

// managerID picks the sale's manager. HQ-owned sales, and agent sales with
// no manager on record, are booked under the HQ profile.
func (r *SaleRecorder) managerID(ctx context.Context, tx domain.Tx, in RecordInput) (string, error) {
	o := in.Ownership
	if o.FinalRole != domain.RoleHQ {
		if o.FinalManagerID != "" {
			return o.FinalManagerID, nil
		}
		if in.Lead.ManagerID != "" {
			return in.Lead.ManagerID, nil
		}
	} else if o.FinalManagerID != "" {
		return o.FinalManagerID, nil
	}

	hq, err := tx.Partners().EnsureHQProfile(ctx, r.HQAdminEmail, r.HQAdminName)
	if err != nil {
		return "", fmt.Errorf("bootstrap HQ profile: %w", err)
	}
	if hq == nil {
		return "", errors.New("bootstrap HQ profile: no profile returned")
	}
	return hq.ID, nil
}

func saleMetadata(in RecordInput) map[string]any {
	meta := map[string]any{
		domain.SaleMetaTransferred: false,
	}
	if in.Product.Name != "" {
		meta[domain.SaleMetaProductName] = in.Product.Name
	} else if name, ok := in.Lead.Metadata[domain.LeadMetaProductName].(string); ok && name != "" {
		meta[domain.SaleMetaProductName] = name
	}
	if in.TriggeredBy != "" {
		meta[domain.SaleMetaTriggeredBy] = in.TriggeredBy
	}

	t := in.Ownership.Transfer
	if t == nil {
		return meta
	}
	meta[domain.SaleMetaTransferred] = true
	meta[domain.SaleMetaTransferReason] = string(t.Reason)
	if t.FallbackReason != "" {
		meta[domain.SaleMetaFallbackReason] = string(t.FallbackReason)
	}
	from := make([]any, len(t.From))
	for i, id := range t.From {
		from[i] = id
	}
	meta[domain.SaleMetaTransferredFrom] = from
	if t.OriginalManagerID != "" {
		meta[domain.SaleMetaOriginalManagerID] = t.OriginalManagerID
	}
	if t.OriginalAgentID != "" {
		meta[domain.SaleMetaOriginalAgentID] = t.OriginalAgentID
	}
	return meta
}
