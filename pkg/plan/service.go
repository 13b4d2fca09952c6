package plan

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spenso/spenso/pkg/user"
)

type Service interface {
	GetPlan(ctx context.Context, planId int) (Plan, error)
	GetCurrentPlan(ctx context.Context) (Plan, error)
	ListPlans(ctx context.Context) ([]Plan, error)
	CreatePlan(ctx context.Context, plan Plan) (Plan, error)
	UpdatePlan(ctx context.Context, plan Plan) (Plan, error)
	DeletePlan(ctx context.Context, planId int) (bool, error)
	GetItem(ctx context.Context, itemId int) (PlanItem, error)
	CreateItem(ctx context.Context, item PlanItem) (PlanItem, error)
	UpdateItem(ctx context.Context, item PlanItem) (PlanItem, error)
	SetItemCompletion(ctx context.Context, itemId int, isCompleted bool, planId int) error
	DeleteItem(ctx context.Context, itemId int) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetPlan(ctx context.Context, planId int) (Plan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetPlan(ctx, userId, planId)
}

func (s *ServiceImpl) GetCurrentPlan(ctx context.Context) (Plan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetCurrentPlan(ctx, userId)
}

func (s *ServiceImpl) ListPlans(ctx context.Context) ([]Plan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListPlans(ctx, userId)
}

func (s *ServiceImpl) CreatePlan(ctx context.Context, plan Plan) (Plan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.CreatePlan(ctx, userId, plan)
}

func (s *ServiceImpl) UpdatePlan(ctx context.Context, plan Plan) (Plan, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.UpdatePlan(ctx, userId, plan)
}

func (s *ServiceImpl) DeletePlan(ctx context.Context, planId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeletePlan(ctx, userId, planId)
}

func (s *ServiceImpl) GetItem(ctx context.Context, itemId int) (PlanItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return PlanItem{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetItem(ctx, userId, itemId)
}

func (s *ServiceImpl) CreateItem(ctx context.Context, item PlanItem) (PlanItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return PlanItem{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if item.Amount.IsNegative() {
		return PlanItem{}, fmt.Errorf("item amount must not be negative")
	}
	id, err := s.repo.StoreItem(ctx, userId, item)
	if err != nil {
		return PlanItem{}, err
	}
	item.Id = id
	return item, nil
}

func (s *ServiceImpl) UpdateItem(ctx context.Context, item PlanItem) (PlanItem, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return PlanItem{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if item.Amount.IsNegative() {
		return PlanItem{}, fmt.Errorf("item amount must not be negative")
	}
	updated, err := s.repo.UpdateItem(ctx, userId, item)
	if err != nil {
		return PlanItem{}, err
	}
	if !updated {
		log.Warnf("item not updated, probably because it does not exist (%d) or the user (%d) is not the owner", item.Id, userId)
		return PlanItem{}, ErrItemNotFound
	}
	return item, nil
}

// SetItemCompletion persists only the completion flag of a fixed payment item.
// The planId parameter is accepted for symmetry with the expense batch call so
// callers can scope cache invalidation; the repository scopes by user and item.
func (s *ServiceImpl) SetItemCompletion(ctx context.Context, itemId int, isCompleted bool, planId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	updated, err := s.repo.SetItemCompletion(ctx, userId, itemId, isCompleted)
	if err != nil {
		return err
	}
	if !updated {
		log.Warnf("completion flag not updated for item %d (plan %d, user %d)", itemId, planId, userId)
		return ErrItemNotFound
	}
	return nil
}

func (s *ServiceImpl) DeleteItem(ctx context.Context, itemId int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.DeleteItem(ctx, userId, itemId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("item not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", itemId, userId)
		return false, ErrItemNotFound
	}
	return true, nil
}
