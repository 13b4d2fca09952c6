package plan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type PlanDTO struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency,omitempty"`
	IsCurrent bool      `json:"isCurrent"`
	Items     []ItemDTO `json:"items,omitempty"`
}

type ItemDTO struct {
	Id             int             `json:"id"`
	CategoryId     int             `json:"categoryId"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	IsFixedPayment bool            `json:"isFixedPayment"`
	IsCompleted    bool            `json:"isCompleted"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListPlans godoc
// @Summary List all plans
// @Description Get a list of all plans for the current user
// @Tags Plan
// @Produce json
// @Success 200 {array} PlanDTO
// @Failure 403 {string} string "User not found"
// @Router /api/plan [get]
// @Security XUserId
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing plans")
	w.Header().Set("Content-Type", "application/json")
	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]PlanDTO, 0, len(plans))
	for _, p := range plans {
		dtos = append(dtos, PlanToDTO(p))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreatePlan godoc
// @Summary Create a new plan
// @Tags Plan
// @Accept json
// @Produce json
// @Param plan body PlanDTO true "Plan"
// @Success 201 {object} PlanDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/plan [post]
// @Security XUserId
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new plan")
	w.Header().Set("Content-Type", "application/json")
	var dto PlanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreatePlan(r.Context(), DTOToPlan(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(PlanToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetCurrentPlan godoc
// @Summary Get the current plan with all its items
// @Tags Plan
// @Produce json
// @Success 200 {object} PlanDTO
// @Failure 404 {string} string "Plan Not Found"
// @Router /api/plan/current [get]
// @Security XUserId
func (h *Handler) GetCurrentPlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	plan, err := h.service.GetCurrentPlan(r.Context())
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PlanToDTO(plan)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetPlan godoc
// @Summary Get a plan by ID with all its items
// @Tags Plan
// @Produce json
// @Param planId path int true "Plan ID"
// @Success 200 {object} PlanDTO
// @Failure 404 {string} string "Plan Not Found"
// @Router /api/plan/{planId} [get]
// @Security XUserId
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	planId, err := strconv.Atoi(mux.Vars(r)["planId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	plan, err := h.service.GetPlan(r.Context(), planId)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PlanToDTO(plan)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdatePlan godoc
// @Summary Update an existing plan
// @Tags Plan
// @Accept json
// @Produce json
// @Param planId path int true "Plan ID"
// @Param plan body PlanDTO true "Plan"
// @Success 200 {object} PlanDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Plan Not Found"
// @Router /api/plan/{planId} [put]
// @Security XUserId
func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating plan")
	w.Header().Set("Content-Type", "application/json")
	planId, err := strconv.Atoi(mux.Vars(r)["planId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto PlanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Id == 0 || dto.Id != planId {
		http.Error(w, "Invalid plan id in request body", http.StatusBadRequest)
		return
	}
	updated, err := h.service.UpdatePlan(r.Context(), DTOToPlan(dto))
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(PlanToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeletePlan godoc
// @Summary Delete a plan
// @Tags Plan
// @Param planId path int true "Plan ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Plan Not Found"
// @Router /api/plan/{planId} [delete]
// @Security XUserId
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting plan")
	w.Header().Set("Content-Type", "application/json")
	planId, err := strconv.Atoi(mux.Vars(r)["planId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deleted, err := h.service.DeletePlan(r.Context(), planId)
	if err != nil {
		if errors.Is(err, ErrDeletingCurrentPlan) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "plan not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegisterItem godoc
// @Summary Add a new item to a plan
// @Tags PlanItem
// @Accept json
// @Produce json
// @Param planId path int true "Plan ID"
// @Param item body ItemDTO true "Plan Item"
// @Success 201 {object} ItemDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/plan/{planId}/item [post]
// @Security XUserId
func (h *Handler) RegisterItem(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new plan item")
	w.Header().Set("Content-Type", "application/json")

	planId, err := strconv.Atoi(mux.Vars(r)["planId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto ItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateItem(r.Context(), DTOToItem(planId, dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ItemToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateItem godoc
// @Summary Update an existing plan item
// @Description Updates category, name, amount and fixed payment flag. The
// @Description completion flag is controlled by the tracking endpoint only.
// @Tags PlanItem
// @Accept json
// @Produce json
// @Param planId path int true "Plan ID"
// @Param itemId path int true "Item ID"
// @Param item body ItemDTO true "Plan Item"
// @Success 200 {object} ItemDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Item Not Found"
// @Router /api/plan/{planId}/item/{itemId} [put]
// @Security XUserId
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	planId, err := strconv.Atoi(vars["planId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	itemId, err := strconv.Atoi(vars["itemId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto ItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Id == 0 || dto.Id != itemId {
		http.Error(w, "Invalid item id in request body", http.StatusBadRequest)
		return
	}
	updated, err := h.service.UpdateItem(r.Context(), DTOToItem(planId, dto))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ItemToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteItem godoc
// @Summary Delete a plan item
// @Tags PlanItem
// @Param planId path int true "Plan ID"
// @Param itemId path int true "Item ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Item Not Found"
// @Router /api/plan/{planId}/item/{itemId} [delete]
// @Security XUserId
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	itemId, err := strconv.Atoi(mux.Vars(r)["itemId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deleted, err := h.service.DeleteItem(r.Context(), itemId)
	if err != nil && !errors.Is(err, ErrItemNotFound) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func PlanToDTO(p Plan) PlanDTO {
	items := make([]ItemDTO, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, ItemToDTO(item))
	}
	return PlanDTO{
		Id:        p.Id,
		Name:      p.Name,
		Currency:  p.Currency,
		IsCurrent: p.IsCurrent,
		Items:     items,
	}
}

func DTOToPlan(dto PlanDTO) Plan {
	items := make([]PlanItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, DTOToItem(dto.Id, item))
	}
	return Plan{
		Id:        dto.Id,
		Name:      dto.Name,
		Currency:  dto.Currency,
		IsCurrent: dto.IsCurrent,
		Items:     items,
	}
}

func ItemToDTO(item PlanItem) ItemDTO {
	return ItemDTO{
		Id:             item.Id,
		CategoryId:     item.CategoryId,
		Name:           item.Name,
		Amount:         item.Amount,
		IsFixedPayment: item.IsFixedPayment,
		IsCompleted:    item.IsCompleted,
	}
}

func DTOToItem(planId int, dto ItemDTO) PlanItem {
	return PlanItem{
		Id:             dto.Id,
		PlanId:         planId,
		CategoryId:     dto.CategoryId,
		Name:           dto.Name,
		Amount:         dto.Amount,
		IsFixedPayment: dto.IsFixedPayment,
		IsCompleted:    dto.IsCompleted,
	}
}
