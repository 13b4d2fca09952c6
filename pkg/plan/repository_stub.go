package plan

import (
	"context"
	"fmt"
)

type RepositoryStub struct {
	nextId        int
	plans         map[int]Plan
	currentPlanId int
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{nextId: 2, plans: map[int]Plan{}}
}

func (s *RepositoryStub) CreatePlan(ctx context.Context, userId int, plan Plan) (Plan, error) {
	s.nextId++
	plan.Id = s.nextId
	if len(s.plans) == 0 {
		s.currentPlanId = plan.Id
		plan.IsCurrent = true
	}
	if s.currentPlanId != plan.Id {
		plan.IsCurrent = false
	}
	s.plans[plan.Id] = plan
	return plan, nil
}

func (s *RepositoryStub) GetPlan(ctx context.Context, userId int, planId int) (Plan, error) {
	if plan, exists := s.plans[planId]; exists {
		if s.currentPlanId == planId {
			plan.IsCurrent = true
		}
		return plan, nil
	}
	return Plan{}, ErrPlanNotFound
}

func (s *RepositoryStub) GetCurrentPlan(ctx context.Context, userId int) (Plan, error) {
	return s.GetPlan(ctx, userId, s.currentPlanId)
}

func (s *RepositoryStub) ListPlans(ctx context.Context, userId int) ([]Plan, error) {
	plans := make([]Plan, 0, len(s.plans))
	for _, plan := range s.plans {
		plans = append(plans, plan)
	}
	return plans, nil
}

func (s *RepositoryStub) UpdatePlan(ctx context.Context, userId int, plan Plan) (Plan, error) {
	existing, exists := s.plans[plan.Id]
	if !exists {
		return Plan{}, ErrPlanNotFound
	}
	if plan.IsCurrent {
		s.currentPlanId = plan.Id
	}
	if s.currentPlanId != plan.Id {
		plan.IsCurrent = false
	}
	plan.Items = existing.Items
	s.plans[plan.Id] = plan
	return plan, nil
}

func (s *RepositoryStub) DeletePlan(ctx context.Context, userId int, planId int) (bool, error) {
	if s.plans[planId].IsCurrent || s.currentPlanId == planId {
		return false, ErrDeletingCurrentPlan
	}
	if _, exists := s.plans[planId]; exists {
		delete(s.plans, planId)
		return true, nil
	}
	return false, nil
}

func (s *RepositoryStub) StoreItem(ctx context.Context, userId int, item PlanItem) (int, error) {
	plan, exists := s.plans[item.PlanId]
	if !exists {
		return 0, fmt.Errorf("plan with id %d does not exist", item.PlanId)
	}
	s.nextId++
	item.Id = s.nextId
	plan.Items = append(plan.Items, item)
	s.plans[item.PlanId] = plan
	return item.Id, nil
}

func (s *RepositoryStub) GetItem(ctx context.Context, userId int, itemId int) (PlanItem, error) {
	for _, plan := range s.plans {
		for _, item := range plan.Items {
			if item.Id == itemId {
				return item, nil
			}
		}
	}
	return PlanItem{}, ErrItemNotFound
}

func (s *RepositoryStub) UpdateItem(ctx context.Context, userId int, item PlanItem) (bool, error) {
	if plan, exists := s.plans[item.PlanId]; exists {
		for i, it := range plan.Items {
			if it.Id == item.Id {
				item.IsCompleted = it.IsCompleted
				plan.Items[i] = item
				s.plans[item.PlanId] = plan
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *RepositoryStub) SetItemCompletion(ctx context.Context, userId int, itemId int, isCompleted bool) (bool, error) {
	for planId, plan := range s.plans {
		for i, item := range plan.Items {
			if item.Id == itemId {
				plan.Items[i].IsCompleted = isCompleted
				s.plans[planId] = plan
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *RepositoryStub) DeleteItem(ctx context.Context, userId int, itemId int) (bool, error) {
	for _, plan := range s.plans {
		for i, item := range plan.Items {
			if item.Id == itemId {
				plan.Items = append(plan.Items[:i], plan.Items[i+1:]...)
				s.plans[plan.Id] = plan
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *RepositoryStub) Cleanup() {
	s.plans = map[int]Plan{}
	s.currentPlanId = 0
}
