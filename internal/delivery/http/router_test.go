package httpapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapi "github.com/LavaJover/cruise-commission-service/internal/delivery/http"
	"github.com/LavaJover/cruise-commission-service/internal/delivery/http/dto/commission/response"
	"github.com/LavaJover/cruise-commission-service/internal/delivery/http/handlers"
	"github.com/LavaJover/cruise-commission-service/internal/domain"
	commissiondto "github.com/LavaJover/cruise-commission-service/internal/usecase/dto/commission"
	relationsdto "github.com/LavaJover/cruise-commission-service/internal/usecase/dto/relations"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommission struct {
	purchase func(*commissiondto.PurchaseInput) (*commissiondto.TriggerResult, error)
	retry    func(string) (*domain.Sale, error)
	get      func(string) (*commissiondto.SaleOutput, error)
}

func (f *fakeCommission) HandleLeadPurchased(_ context.Context, in *commissiondto.PurchaseInput) (*commissiondto.TriggerResult, error) {
	return f.purchase(in)
}

func (f *fakeCommission) RetryLedgerSync(_ context.Context, id string) (*domain.Sale, error) {
	return f.retry(id)
}

func (f *fakeCommission) RetryFailedSales(context.Context, int) (*commissiondto.RetrySummary, error) {
	return &commissiondto.RetrySummary{}, nil
}

func (f *fakeCommission) GetSale(_ context.Context, id string) (*commissiondto.SaleOutput, error) {
	return f.get(id)
}

type fakeRelations struct {
	assignErr     error
	disconnectErr error
}

func (f *fakeRelations) AssignAgent(_ context.Context, in *relationsdto.AssignAgentInput) (*domain.PartnerRelation, error) {
	if f.assignErr != nil {
		return nil, f.assignErr
	}
	return &domain.PartnerRelation{ID: "rel-1", ManagerID: in.ManagerID, AgentID: in.AgentID, Status: domain.RelationActive, ConnectedAt: time.Now()}, nil
}

func (f *fakeRelations) DisconnectAgent(context.Context, string) error {
	return f.disconnectErr
}

func (f *fakeRelations) GetActiveManager(_ context.Context, agentID string) (*domain.PartnerProfile, error) {
	if agentID != "agt-1" {
		return nil, nil
	}
	return &domain.PartnerProfile{ID: "mgr-1", AccountID: "acc-1", Role: domain.RoleBranchManager}, nil
}

func (f *fakeRelations) ListAgents(_ context.Context, managerID string) ([]*domain.PartnerRelation, error) {
	if managerID != "mgr-1" {
		return nil, nil
	}
	return []*domain.PartnerRelation{{ID: "rel-1", ManagerID: managerID, AgentID: "agt-1", Status: domain.RelationActive}}, nil
}

func newServer(c *fakeCommission, r *fakeRelations) *httptest.Server {
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Commission: handlers.NewCommissionHandler(c),
		Relations:  handlers.NewRelationsHandler(r),
		Gatherer:   prometheus.NewRegistry(),
	})
	return httptest.NewServer(router)
}

func sampleSale() *domain.Sale {
	amount := int64(2000)
	return &domain.Sale{
		ID:               "sale-1",
		Reference:        "SL-ABCDEFGHJK",
		LeadID:           "lead-1",
		ProductCode:      "CRUISE-7",
		SaleAmount:       100000,
		CostAmount:       80000,
		NetRevenue:       20000,
		ManagerID:        "mgr-1",
		BranchCommission: &amount,
		Status:           domain.SaleConfirmed,
		CommissionState:  domain.CommissionProcessed,
	}
}

func TestLeadPurchased(t *testing.T) {
	var got *commissiondto.PurchaseInput
	srv := newServer(&fakeCommission{
		purchase: func(in *commissiondto.PurchaseInput) (*commissiondto.TriggerResult, error) {
			got = in
			return &commissiondto.TriggerResult{Outcome: commissiondto.OutcomeRecorded, Sale: sampleSale()}, nil
		},
	}, &fakeRelations{})
	defer srv.Close()

	body := `{"product_code":"CRUISE-7","triggering_profile_id":"mgr-1"}`
	resp, err := http.Post(srv.URL+"/api/v1/leads/lead-1/purchases", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, got)
	assert.Equal(t, "lead-1", got.LeadID)
	assert.Equal(t, "mgr-1", got.TriggeringProfileID)

	var out response.PurchaseResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "RECORDED", out.Outcome)
	require.NotNil(t, out.Sale)
	assert.Equal(t, int64(2000), *out.Sale.BranchCommission)
	assert.Nil(t, out.Sale.SalesCommission)
	assert.True(t, out.Sale.CommissionProcessed)
}

func TestLeadPurchasedOutcomes(t *testing.T) {
	tests := []struct {
		name   string
		result *commissiondto.TriggerResult
		err    error
		status int
	}{
		{"duplicate", &commissiondto.TriggerResult{Outcome: commissiondto.OutcomeDuplicate, Sale: sampleSale()}, nil, http.StatusOK},
		{"inactive product", &commissiondto.TriggerResult{Outcome: commissiondto.OutcomeProductInactive}, nil, http.StatusOK},
		{"sync failed", &commissiondto.TriggerResult{Outcome: commissiondto.OutcomeRecordedSyncFailed, Sale: sampleSale(), SyncError: "boom"}, nil, http.StatusCreated},
		{"invalid input", nil, fmt.Errorf("lead id: %w", domain.ErrInvalidInput), http.StatusBadRequest},
		{"lead missing", nil, domain.ErrLeadNotFound, http.StatusNotFound},
		{"internal", nil, fmt.Errorf("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(&fakeCommission{
				purchase: func(*commissiondto.PurchaseInput) (*commissiondto.TriggerResult, error) {
					return tt.result, tt.err
				},
			}, &fakeRelations{})
			defer srv.Close()

			resp, err := http.Post(srv.URL+"/api/v1/leads/lead-1/purchases", "application/json",
				strings.NewReader(`{"triggering_profile_id":"mgr-1"}`))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestLeadPurchasedBadBody(t *testing.T) {
	srv := newServer(&fakeCommission{}, &fakeRelations{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/leads/lead-1/purchases", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetSale(t *testing.T) {
	srv := newServer(&fakeCommission{
		get: func(id string) (*commissiondto.SaleOutput, error) {
			if id != "sale-1" {
				return nil, domain.ErrSaleNotFound
			}
			return &commissiondto.SaleOutput{
				Sale: sampleSale(),
				Entries: []*domain.CommissionLedgerEntry{{
					ID: "le-1", SaleID: id, PayeeProfileID: "mgr-1", PayeeRole: domain.RoleBranchManager,
					Type: domain.CommissionBranch, Amount: 2000, Status: domain.LedgerEntryPending,
				}},
			}, nil
		},
	}, &fakeRelations{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/sales/sale-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out response.SaleDetailsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "SL-ABCDEFGHJK", out.Sale.Reference)
	require.Len(t, out.Entries, 1)
	assert.Equal(t, "BRANCH", out.Entries[0].CommissionType)

	missing, err := http.Get(srv.URL + "/api/v1/sales/nope")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestRetryLedgerSync(t *testing.T) {
	failed := sampleSale()
	failed.ID = "sale-failed"
	failed.CommissionState = domain.CommissionFailed

	srv := newServer(&fakeCommission{
		retry: func(id string) (*domain.Sale, error) {
			switch id {
			case "sale-1":
				return sampleSale(), nil
			case "sale-failed":
				return failed, fmt.Errorf("ledger sync: backend unavailable")
			case "sale-canceled":
				return nil, domain.ErrSaleNotRetryable
			}
			return nil, domain.ErrSaleNotFound
		},
	}, &fakeRelations{})
	defer srv.Close()

	tests := map[string]int{
		"sale-1":        http.StatusOK,
		"sale-failed":   http.StatusBadGateway,
		"sale-canceled": http.StatusConflict,
		"sale-unknown":  http.StatusNotFound,
	}
	for id, status := range tests {
		resp, err := http.Post(srv.URL+"/api/v1/sales/"+id+"/ledger-sync", "application/json", nil)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, status, resp.StatusCode, id)
	}
}

func TestRelations(t *testing.T) {
	srv := newServer(&fakeCommission{}, &fakeRelations{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/partners/relations", "application/json",
		strings.NewReader(`{"manager_id":"mgr-1","agent_id":"agt-1"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rel response.RelationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rel))
	assert.Equal(t, "ACTIVE", rel.Status)
	assert.Equal(t, "agt-1", rel.AgentID)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/partners/relations/agt-1", nil)
	require.NoError(t, err)
	del, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusNoContent, del.StatusCode)
}

func TestRelationsErrors(t *testing.T) {
	srv := newServer(&fakeCommission{}, &fakeRelations{
		assignErr:     domain.ErrInvalidRelation,
		disconnectErr: domain.ErrRelationNotFound,
	})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/partners/relations", "application/json",
		strings.NewReader(`{"manager_id":"mgr-1","agent_id":"mgr-1"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/partners/relations/agt-1", nil)
	require.NoError(t, err)
	del, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	del.Body.Close()
	assert.Equal(t, http.StatusNotFound, del.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newServer(&fakeCommission{}, &fakeRelations{})
	defer srv.Close()

	for _, path := range []string{"/healthz", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestRelationLookups(t *testing.T) {
	srv := newServer(&fakeCommission{}, &fakeRelations{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/partners/relations/agt-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var manager response.ManagerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&manager))
	assert.Equal(t, "mgr-1", manager.ID)
	assert.Equal(t, "BRANCH_MANAGER", manager.Role)

	orphan, err := http.Get(srv.URL + "/api/v1/partners/relations/agt-2")
	require.NoError(t, err)
	orphan.Body.Close()
	assert.Equal(t, http.StatusNotFound, orphan.StatusCode)

	list, err := http.Get(srv.URL + "/api/v1/partners/mgr-1/agents")
	require.NoError(t, err)
	defer list.Body.Close()
	require.Equal(t, http.StatusOK, list.StatusCode)
	var agents []response.RelationResponse
	require.NoError(t, json.NewDecoder(list.Body).Decode(&agents))
	require.Len(t, agents, 1)
	assert.Equal(t, "agt-1", agents[0].AgentID)

	empty, err := http.Get(srv.URL + "/api/v1/partners/mgr-9/agents")
	require.NoError(t, err)
	defer empty.Body.Close()
	var none []response.RelationResponse
	require.NoError(t, json.NewDecoder(empty.Body).Decode(&none))
	assert.Empty(t, none)
}
