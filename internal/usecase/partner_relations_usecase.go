package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/cruise-commission-service/internal/domain"
	relationsdto "github.com/LavaJover/cruise-commission-service/internal/usecase/dto/relations"
	"github.com/go-playground/validator/v10"
)

type PartnerRelationsUsecase interface {
	AssignAgent(ctx context.Context, input *relationsdto.AssignAgentInput) (*domain.PartnerRelation, error)
	DisconnectAgent(ctx context.Context, agentID string) error
	GetActiveManager(ctx context.Context, agentID string) (*domain.PartnerProfile, error)
	ListAgents(ctx context.Context, managerID string) ([]*domain.PartnerRelation, error)
}

type DefaultPartnerRelationsUsecase struct {
	uow      domain.UnitOfWork
	validate *validator.Validate
}

func NewDefaultPartnerRelationsUsecase(uow domain.UnitOfWork) *DefaultPartnerRelationsUsecase {
	return &DefaultPartnerRelationsUsecase{
		uow:      uow,
		validate: validator.New(),
	}
}

// AssignAgent moves the agent under managerID. The previous ACTIVE relation,
// if any, is terminated in the same transaction.
func (uc *DefaultPartnerRelationsUsecase) AssignAgent(ctx context.Context, input *relationsdto.AssignAgentInput) (*domain.PartnerRelation, error) {
	if err := uc.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}

	var relation *domain.PartnerRelation
	err := uc.uow.Do(ctx, func(tx domain.Tx) error {
		manager, err := tx.Partners().GetProfileByID(ctx, input.ManagerID)
		if err != nil {
			return fmt.Errorf("manager %s: %w", input.ManagerID, err)
		}
		agent, err := tx.Partners().GetProfileByID(ctx, input.AgentID)
		if err != nil {
			return fmt.Errorf("agent %s: %w", input.AgentID, err)
		}
		if manager.Role != domain.RoleBranchManager && manager.Role != domain.RoleHQ {
			return fmt.Errorf("%w: %s cannot manage agents", domain.ErrInvalidRelation, manager.Role)
		}
		if agent.Role != domain.RoleSalesAgent {
			return fmt.Errorf("%w: %s cannot be assigned to a manager", domain.ErrInvalidRelation, agent.Role)
		}

		now := time.Now()
		current, err := tx.Relations().GetActiveRelationByAgentID(ctx, agent.ID)
		switch {
		case errors.Is(err, domain.ErrRelationNotFound):
		case err != nil:
			return err
		case current.ManagerID == manager.ID:
			relation = current
			return nil
		default:
			if err := tx.Relations().TerminateRelationship(ctx, current.ID, now); err != nil {
				return fmt.Errorf("terminate relation %s: %w", current.ID, err)
			}
		}

		relation = &domain.PartnerRelation{
			ManagerID:   manager.ID,
			AgentID:     agent.ID,
			Status:      domain.RelationActive,
			ConnectedAt: now,
		}
		return tx.Relations().CreateRelationship(ctx, relation)
	})
	if err != nil {
		return nil, err
	}
	return relation, nil
}

func (uc *DefaultPartnerRelationsUsecase) DisconnectAgent(ctx context.Context, agentID string) error {
	return uc.uow.Do(ctx, func(tx domain.Tx) error {
		current, err := tx.Relations().GetActiveRelationByAgentID(ctx, agentID)
		if err != nil {
			return err
		}
		return tx.Relations().TerminateRelationship(ctx, current.ID, time.Now())
	})
}

func (uc *DefaultPartnerRelationsUsecase) GetActiveManager(ctx context.Context, agentID string) (*domain.PartnerProfile, error) {
	var manager *domain.PartnerProfile
	err := uc.uow.Do(ctx, func(tx domain.Tx) error {
		var err error
		manager, err = tx.Relations().GetActiveManager(ctx, agentID)
		return err
	})
	return manager, err
}

func (uc *DefaultPartnerRelationsUsecase) ListAgents(ctx context.Context, managerID string) ([]*domain.PartnerRelation, error) {
	var relations []*domain.PartnerRelation
	err := uc.uow.Do(ctx, func(tx domain.Tx) error {
		var err error
		relations, err = tx.Relations().GetActiveRelationsByManagerID(ctx, managerID)
		return err
	})
	return relations, err
}
