package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/spenso/spenso/internal/config"
	"github.com/spenso/spenso/internal/event_bus"
	"github.com/spenso/spenso/internal/notification"
	"github.com/spenso/spenso/internal/utils"
	"github.com/spenso/spenso/pkg/category"
	"github.com/spenso/spenso/pkg/currency"
	"github.com/spenso/spenso/pkg/expense"
	"github.com/spenso/spenso/pkg/plan"
	"github.com/spenso/spenso/pkg/tracking"
	"github.com/spenso/spenso/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Notifier notification.Sink
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	CategoryRepo    category.Repository
	CategoryService category.Service
	CategoryHandler *category.Handler

	PlanRepo    plan.Repository
	PlanService plan.Service
	PlanHandler *plan.Handler

	ExpenseRepo    expense.Repository
	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	Tracker         tracking.Tracker
	TrackingService tracking.Service
	TrackingHandler *tracking.Handler

	RateClient          currency.RateClient
	CurrencyCoordinator *currency.Coordinator
	CurrencyHandler     *currency.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(pool *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Notifier = notification.LogSink{}
	deps.Clock = utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(pool))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.CategoryRepo = category.NewRepository(pool)
	deps.CategoryService = category.NewService(deps.CategoryRepo)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.PlanRepo = plan.NewRepository(pool)
	deps.PlanService = plan.NewService(deps.PlanRepo)
	deps.PlanHandler = plan.NewHandler(deps.PlanService)

	deps.ExpenseRepo = expense.NewRepository(pool)
	deps.ExpenseService = expense.NewService(deps.ExpenseRepo)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.Tracker = tracking.NewTracker(deps.ExpenseService, deps.PlanService, deps.Notifier, deps.EventBus, deps.Clock)
	deps.TrackingService = tracking.NewService(deps.PlanService, deps.ExpenseService, deps.CategoryService, deps.Tracker)
	deps.TrackingHandler = tracking.NewHandler(deps.TrackingService)

	deps.RateClient = currency.NewHTTPRateClient(cfg.Currency)
	deps.CurrencyCoordinator = currency.NewCoordinator(deps.RateClient, deps.Clock)
	deps.CurrencyHandler = currency.NewHandler(deps.CurrencyCoordinator, deps.UserService)

	registerSubscribers(deps.EventBus)

	return deps
}

// registerSubscribers attaches the audit log listeners for completion events.
func registerSubscribers(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, tracking.EventPlanItemCompleted,
		func(e event_bus.EventT[event_bus.PlanItemCompleted]) error {
			log.Infof("Plan item %d (%s) completed, recorded expense %d of %s",
				e.Data.ItemId, e.Data.Name, e.Data.ExpenseId, e.Data.Amount)
			return nil
		})
	event_bus.SubscribeTyped(bus, tracking.EventPlanItemUncompleted,
		func(e event_bus.EventT[event_bus.PlanItemUncompleted]) error {
			log.Infof("Plan item %d marked incomplete, removed %d expenses",
				e.Data.ItemId, len(e.Data.RemovedExpenseIds))
			return nil
		})
}
