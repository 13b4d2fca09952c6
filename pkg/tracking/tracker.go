package tracking

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/spenso/spenso/internal/event_bus"
	"github.com/spenso/spenso/internal/notification"
	"github.com/spenso/spenso/internal/utils"
	"github.com/spenso/spenso/pkg/expense"
	"github.com/spenso/spenso/pkg/plan"
)

const (
	EventPlanItemCompleted   event_bus.EventType = "plan_item.completed"
	EventPlanItemUncompleted event_bus.EventType = "plan_item.uncompleted"
)

const (
	msgCompleteFailed   = "Failed to mark item as completed. Please try again."
	msgNoLinkedExpenses = "No expenses found to remove for this item"
	msgIncompleteFailed = "Failed to mark item as incomplete. Please try again."
)

var (
	ErrNotFixedPayment  = errors.New("completion can only be toggled on fixed payment items")
	ErrToggleInFlight   = errors.New("a toggle for this item is already in progress")
	ErrNoLinkedExpenses = errors.New("no expenses linked to this item")
)

// ExpenseStore is the slice of the expense service the tracker needs.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, expense expense.Expense) (expense.Expense, error)
	GetExpensesForPlanItem(ctx context.Context, planItemId int) ([]expense.Expense, error)
	DeleteExpensesBatch(ctx context.Context, expenseIds []int, planId int, planItemId int, hasRemainingExpensesForItem bool) error
}

// ItemStore persists the completion flag of a plan item.
type ItemStore interface {
	SetItemCompletion(ctx context.Context, itemId int, isCompleted bool, planId int) error
}

// Tracker toggles completion of fixed payment items. Completing an item
// records a matching expense dated today; uncompleting removes every expense
// linked to the item. Either side effect and the flag change succeed together
// or the item is reported back unchanged.
type Tracker interface {
	Toggle(ctx context.Context, item plan.PlanItem, force *bool) (plan.PlanItem, error)
}

type TrackerImpl struct {
	expenses ExpenseStore
	items    ItemStore
	notifier notification.Sink
	eventBus *event_bus.EventBus
	clock    utils.Clock

	mu       sync.Mutex
	inFlight map[int]struct{}
}

func NewTracker(
	expenses ExpenseStore,
	items ItemStore,
	notifier notification.Sink,
	eventBus *event_bus.EventBus,
	clock utils.Clock,
) *TrackerImpl {
	return &TrackerImpl{
		expenses: expenses,
		items:    items,
		notifier: notifier,
		eventBus: eventBus,
		clock:    clock,
		inFlight: make(map[int]struct{}),
	}
}

// Toggle flips the completion state of item, or forces it to *force when
// force is non-nil. It returns a snapshot of the item in its resulting state;
// the passed item is never mutated. Concurrent toggles of the same item are
// rejected while the first one is still running.
func (t *TrackerImpl) Toggle(ctx context.Context, item plan.PlanItem, force *bool) (plan.PlanItem, error) {
	if !item.IsFixedPayment {
		return item, ErrNotFixedPayment
	}

	target := !item.IsCompleted
	if force != nil {
		target = *force
	}
	if target == item.IsCompleted {
		return item, nil
	}

	if !t.acquire(item.Id) {
		log.Warnf("Rejecting concurrent completion toggle for item %d", item.Id)
		return item, ErrToggleInFlight
	}
	defer t.release(item.Id)

	if target {
		return t.complete(ctx, item)
	}
	return t.uncomplete(ctx, item)
}

func (t *TrackerImpl) acquire(itemId int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, busy := t.inFlight[itemId]; busy {
		return false
	}
	t.inFlight[itemId] = struct{}{}
	return true
}

func (t *TrackerImpl) release(itemId int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inFlight, itemId)
}

func (t *TrackerImpl) complete(ctx context.Context, item plan.PlanItem) (plan.PlanItem, error) {
	created, err := t.expenses.CreateExpense(ctx, expense.Expense{
		PlanId:     item.PlanId,
		CategoryId: item.CategoryId,
		PlanItemId: &item.Id,
		Name:       item.Name,
		Amount:     item.Amount,
		Date:       t.clock.Now(),
	})
	if err != nil {
		log.Errorf("Error creating expense for item %d: %v", item.Id, err)
		t.notifier.ShowError(msgCompleteFailed)
		return item, err
	}

	if err := t.items.SetItemCompletion(ctx, item.Id, true, item.PlanId); err != nil {
		log.Errorf("Error marking item %d as completed: %v", item.Id, err)
		t.notifier.ShowError(msgCompleteFailed)
		return item, err
	}

	updated := item
	updated.IsCompleted = true

	if err := t.eventBus.Publish(event_bus.NewEvent(ctx, EventPlanItemCompleted, event_bus.PlanItemCompleted{
		ItemId:     item.Id,
		PlanId:     item.PlanId,
		CategoryId: item.CategoryId,
		Name:       item.Name,
		Amount:     item.Amount,
		ExpenseId:  created.Id,
	})); err != nil {
		log.Errorf("Error publishing completion event for item %d: %v", item.Id, err)
	}
	return updated, nil
}

func (t *TrackerImpl) uncomplete(ctx context.Context, item plan.PlanItem) (plan.PlanItem, error) {
	linked, err := t.expenses.GetExpensesForPlanItem(ctx, item.Id)
	if err != nil {
		log.Errorf("Error listing expenses for item %d: %v", item.Id, err)
		t.notifier.ShowError(msgIncompleteFailed)
		return item, err
	}
	if len(linked) == 0 {
		log.Warnf("No expenses linked to completed item %d, leaving it completed", item.Id)
		t.notifier.ShowError(msgNoLinkedExpenses)
		return item, ErrNoLinkedExpenses
	}

	expenseIds := make([]int, 0, len(linked))
	for _, e := range linked {
		expenseIds = append(expenseIds, e.Id)
	}
	if err := t.expenses.DeleteExpensesBatch(ctx, expenseIds, item.PlanId, item.Id, false); err != nil {
		log.Errorf("Error removing expenses for item %d: %v", item.Id, err)
		t.notifier.ShowError(msgIncompleteFailed)
		return item, err
	}

	if err := t.items.SetItemCompletion(ctx, item.Id, false, item.PlanId); err != nil {
		log.Errorf("Error marking item %d as incomplete: %v", item.Id, err)
		t.notifier.ShowError(msgIncompleteFailed)
		return item, err
	}

	updated := item
	updated.IsCompleted = false

	if err := t.eventBus.Publish(event_bus.NewEvent(ctx, EventPlanItemUncompleted, event_bus.PlanItemUncompleted{
		ItemId:            item.Id,
		PlanId:            item.PlanId,
		RemovedExpenseIds: expenseIds,
	})); err != nil {
		log.Errorf("Error publishing uncompletion event for item %d: %v", item.Id, err)
	}
	return updated, nil
}
