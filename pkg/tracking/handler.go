package tracking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/spenso/spenso/pkg/plan"
)

type CompletionRequestDTO struct {
	IsCompleted *bool `json:"isCompleted"`
}

type CategoryStatusDTO struct {
	CategoryId          int             `json:"categoryId"`
	CategoryName        string          `json:"categoryName"`
	CategoryColor       string          `json:"categoryColor,omitempty"`
	CategoryIcon        string          `json:"categoryIcon,omitempty"`
	FixedItems          []plan.ItemDTO  `json:"fixedItems"`
	NonFixedItems       []plan.ItemDTO  `json:"nonFixedItems"`
	TotalPlanned        decimal.Decimal `json:"totalPlanned"`
	CompletedCount      int             `json:"completedCount"`
	Spent               decimal.Decimal `json:"spent"`
	StillToPay          decimal.Decimal `json:"stillToPay"`
	UsagePercent        float64         `json:"usagePercent"`
	ProgressColor       string          `json:"progressColor"`
	RemainingColorClass string          `json:"remainingColorClass"`
}

type OverviewDTO struct {
	PlanId         int                 `json:"planId"`
	PlanName       string              `json:"planName"`
	Currency       string              `json:"currency,omitempty"`
	CompletedCount int                 `json:"completedCount"`
	TotalCount     int                 `json:"totalCount"`
	Categories     []CategoryStatusDTO `json:"categories"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetOverview godoc
// @Summary Get the tracking overview of a plan
// @Description Items grouped per category with spending, outstanding amounts and usage tones
// @Tags Tracking
// @Produce json
// @Param planId path int true "Plan ID"
// @Success 200 {object} OverviewDTO
// @Failure 404 {string} string "Plan Not Found"
// @Router /api/plan/{planId}/tracking [get]
// @Security XUserId
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planId, err := strconv.Atoi(mux.Vars(r)["planId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	overview, err := h.service.GetOverview(r.Context(), planId)
	if err != nil {
		if errors.Is(err, plan.ErrPlanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(OverviewToDTO(overview)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// SetItemCompletion godoc
// @Summary Toggle completion of a fixed payment item
// @Description Marks the item completed or incomplete. A null isCompleted toggles the current state.
// @Description Completing records a matching expense dated today, uncompleting removes the linked expenses.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param planId path int true "Plan ID"
// @Param itemId path int true "Item ID"
// @Param completion body CompletionRequestDTO true "Target state, null toggles"
// @Success 200 {object} plan.ItemDTO
// @Failure 400 {string} string "Not a fixed payment item"
// @Failure 404 {string} string "Item Not Found"
// @Failure 409 {string} string "Toggle already in progress"
// @Router /api/plan/{planId}/item/{itemId}/completion [put]
// @Security XUserId
func (h *Handler) SetItemCompletion(w http.ResponseWriter, r *http.Request) {
	log.Debug("Toggling plan item completion")
	w.Header().Set("Content-Type", "application/json")
	itemId, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto CompletionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.ToggleItem(r.Context(), itemId, dto.IsCompleted)
	if err != nil {
		switch {
		case errors.Is(err, plan.ErrItemNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrNotFixedPayment):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrToggleInFlight), errors.Is(err, ErrNoLinkedExpenses):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(plan.ItemToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func OverviewToDTO(overview Overview) OverviewDTO {
	categories := make([]CategoryStatusDTO, 0, len(overview.Categories))
	for _, status := range overview.Categories {
		categories = append(categories, categoryStatusToDTO(status))
	}
	return OverviewDTO{
		PlanId:         overview.PlanId,
		PlanName:       overview.PlanName,
		Currency:       overview.Currency,
		CompletedCount: overview.CompletedCount,
		TotalCount:     overview.TotalCount,
		Categories:     categories,
	}
}

func categoryStatusToDTO(status CategoryStatus) CategoryStatusDTO {
	fixed := make([]plan.ItemDTO, 0, len(status.FixedItems))
	for _, item := range status.FixedItems {
		fixed = append(fixed, plan.ItemToDTO(item))
	}
	nonFixed := make([]plan.ItemDTO, 0, len(status.NonFixedItems))
	for _, item := range status.NonFixedItems {
		nonFixed = append(nonFixed, plan.ItemToDTO(item))
	}
	return CategoryStatusDTO{
		CategoryId:          status.Category.Id,
		CategoryName:        status.Category.Name,
		CategoryColor:       status.Category.Color,
		CategoryIcon:        status.Category.Icon,
		FixedItems:          fixed,
		NonFixedItems:       nonFixed,
		TotalPlanned:        status.TotalPlanned,
		CompletedCount:      status.CompletedCount,
		Spent:               status.Spent,
		StillToPay:          status.StillToPay,
		UsagePercent:        status.UsagePercent,
		ProgressColor:       status.ProgressColor,
		RemainingColorClass: status.RemainingColorClass,
	}
}
