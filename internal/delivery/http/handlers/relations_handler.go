package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/LavaJover/cruise-commission-service/internal/delivery/http/dto/commission/request"
	"github.com/LavaJover/cruise-commission-service/internal/delivery/http/dto/commission/response"
	"github.com/LavaJover/cruise-commission-service/internal/domain"
	"github.com/LavaJover/cruise-commission-service/internal/usecase"
	relationsdto "github.com/LavaJover/cruise-commission-service/internal/usecase/dto/relations"
	"github.com/go-chi/chi/v5"
)

type RelationsHandler struct {
	uc usecase.PartnerRelationsUsecase
}

func NewRelationsHandler(uc usecase.PartnerRelationsUsecase) *RelationsHandler {
	return &RelationsHandler{uc: uc}
}

// AssignAgent handles POST /api/v1/partners/relations.
func (h *RelationsHandler) AssignAgent(w http.ResponseWriter, r *http.Request) {
	var req request.AssignAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	relation, err := h.uc.AssignAgent(r.Context(), &relationsdto.AssignAgentInput{
		ManagerID: req.ManagerID,
		AgentID:   req.AgentID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toRelationResponse(relation))
}

// DisconnectAgent handles DELETE /api/v1/partners/relations/{agentID}.
func (h *RelationsHandler) DisconnectAgent(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DisconnectAgent(r.Context(), chi.URLParam(r, "agentID")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetActiveManager handles GET /api/v1/partners/relations/{agentID}.
func (h *RelationsHandler) GetActiveManager(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "agentID")
	manager, err := h.uc.GetActiveManager(r.Context(), agentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if manager == nil {
		writeError(w, http.StatusNotFound, "agent "+agentID+" has no active manager")
		return
	}
	writeJSON(w, http.StatusOK, response.ManagerResponse{
		ID:        manager.ID,
		AccountID: manager.AccountID,
		Role:      string(manager.Role),
	})
}

// ListAgents handles GET /api/v1/partners/{managerID}/agents.
func (h *RelationsHandler) ListAgents(w http.ResponseWriter, r *http.Request) {
	relations, err := h.uc.ListAgents(r.Context(), chi.URLParam(r, "managerID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]response.RelationResponse, len(relations))
	for i, rel := range relations {
		out[i] = toRelationResponse(rel)
	}
	writeJSON(w, http.StatusOK, out)
}

func toRelationResponse(rel *domain.PartnerRelation) response.RelationResponse {
	return response.RelationResponse{
		ID:          rel.ID,
		ManagerID:   rel.ManagerID,
		AgentID:     rel.AgentID,
		Status:      string(rel.Status),
		ConnectedAt: rel.ConnectedAt,
	}
}
