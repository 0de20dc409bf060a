package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LavaJover/cruise-commission-service/internal/delivery/http/dto/commission/request"
	"github.com/LavaJover/cruise-commission-service/internal/delivery/http/dto/commission/response"
	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/usecase/commission"
	commissiondto "github.com/LavaJover/cruise-commission-service/internal/usecase/dto/commission"
	"github.com/go-chi/chi/v5"
)

type CommissionHandler struct {
	uc commission.CommissionUsecase
}

func NewCommissionHandler(uc commission.CommissionUsecase) *CommissionHandler {
	return &CommissionHandler{uc: uc}
}

// LeadPurchased handles POST /api/v1/leads/{leadID}/purchases.
func (h *CommissionHandler) LeadPurchased(w http.ResponseWriter, r *http.Request) {
	var req request.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := &commissiondto.PurchaseInput{
		LeadID:              chi.URLParam(r, "leadID"),
		ProductCode:         req.ProductCode,
		TriggeringProfileID: req.TriggeringProfileID,
		PersonalAgentID:     req.PersonalAgentID,
	}
	if req.OccurredAt != nil {
		input.OccurredAt = *req.OccurredAt
	}

	result, err := h.uc.HandleLeadPurchased(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := response.PurchaseResponse{
		Outcome:   string(result.Outcome),
		SyncError: result.SyncError,
	}
	status := http.StatusOK
	if result.Sale != nil {
		sale := toSaleResponse(result.Sale)
		resp.Sale = &sale
	}
	switch result.Outcome {
	case commissiondto.OutcomeRecorded, commissiondto.OutcomeRecordedSyncFailed:
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

// GetSale handles GET /api/v1/sales/{saleID}.
func (h *CommissionHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.GetSale(r.Context(), chi.URLParam(r, "saleID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	entries := make([]response.LedgerEntryResponse, len(out.Entries))
	for i, e := range out.Entries {
		entries[i] = response.LedgerEntryResponse{
			ID:             e.ID,
			PayeeProfileID: e.PayeeProfileID,
			PayeeRole:      string(e.PayeeRole),
			CommissionType: string(e.Type),
			Amount:         e.Amount,
			Status:         string(e.Status),
			CreatedAt:      e.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, response.SaleDetailsResponse{
		Sale:    toSaleResponse(out.Sale),
		Entries: entries,
	})
}

// RetryLedgerSync handles POST /api/v1/sales/{saleID}/ledger-sync.
func (h *CommissionHandler) RetryLedgerSync(w http.ResponseWriter, r *http.Request) {
	sale, err := h.uc.RetryLedgerSync(r.Context(), chi.URLParam(r, "saleID"))
	if err != nil {
		if sale != nil && !errors.Is(err, domain.ErrSaleNotRetryable) {
			// Sync failed again; the sale is still FAILED and retryable.
			writeJSON(w, http.StatusBadGateway, response.PurchaseResponse{
				Outcome:   string(commissiondto.OutcomeRecordedSyncFailed),
				Sale:      ptr(toSaleResponse(sale)),
				SyncError: err.Error(),
			})
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleResponse(sale))
}

func toSaleResponse(s *domain.Sale) response.SaleResponse {
	return response.SaleResponse{
		ID:                    s.ID,
		Reference:             s.Reference,
		LeadID:                s.LeadID,
		ProductCode:           s.ProductCode,
		SaleAmount:            s.SaleAmount,
		CostAmount:            s.CostAmount,
		NetRevenue:            s.NetRevenue,
		ManagerID:             s.ManagerID,
		AgentID:               s.AgentID,
		BranchCommission:      s.BranchCommission,
		SalesCommission:       s.SalesCommission,
		OverrideCommission:    s.OverrideCommission,
		Status:                string(s.Status),
		CommissionState:       string(s.CommissionState),
		CommissionProcessed:   s.CommissionProcessed(),
		CommissionProcessedAt: s.CommissionProcessedAt,
		CommissionError:       s.CommissionError,
		SyncAttempts:          s.SyncAttempts,
		Metadata:              s.Metadata,
		OccurredAt:            s.OccurredAt,
	}
}

func ptr[T any](v T) *T {
	return &v
}
