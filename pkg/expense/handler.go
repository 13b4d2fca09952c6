package expense

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const dateFormat = "2006-01-02"

type ExpenseDTO struct {
	Id         int             `json:"id"`
	PlanId     int             `json:"planId"`
	CategoryId int             `json:"categoryId"`
	PlanItemId *int            `json:"planItemId,omitempty"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListExpenses godoc
// @Summary List expenses of a plan
// @Tags Expense
// @Produce json
// @Param planId query int true "Plan ID"
// @Success 200 {array} ExpenseDTO
// @Failure 403 {string} string "User not found"
// @Router /api/expense [get]
// @Security XUserId
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing expenses")
	w.Header().Set("Content-Type", "application/json")
	planId, err := strconv.Atoi(r.URL.Query().Get("planId"))
	if err != nil {
		http.Error(w, "planId is required", http.StatusBadRequest)
		return
	}
	expenses, err := h.service.ListForPlan(r.Context(), planId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		dtos = append(dtos, toDTO(e))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateExpense godoc
// @Summary Record a new expense
// @Tags Expense
// @Accept json
// @Produce json
// @Param expense body ExpenseDTO true "Expense"
// @Success 201 {object} ExpenseDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/expense [post]
// @Security XUserId
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new expense")
	w.Header().Set("Content-Type", "application/json")
	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expense, err := fromDTO(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.CreateExpense(r.Context(), expense)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Tags Expense
// @Param expenseId path int true "Expense ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Expense Not Found"
// @Router /api/expense/{expenseId} [delete]
// @Security XUserId
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	expenseId, err := strconv.Atoi(mux.Vars(r)["expenseId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	deleted, err := h.service.DeleteExpense(r.Context(), expenseId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "expense not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDTO(e Expense) ExpenseDTO {
	return ExpenseDTO{
		Id:         e.Id,
		PlanId:     e.PlanId,
		CategoryId: e.CategoryId,
		PlanItemId: e.PlanItemId,
		Name:       e.Name,
		Amount:     e.Amount,
		Date:       e.Date.Format(dateFormat),
	}
}

func fromDTO(dto ExpenseDTO) (Expense, error) {
	date := time.Time{}
	if dto.Date != "" {
		parsed, err := time.Parse(dateFormat, dto.Date)
		if err != nil {
			return Expense{}, err
		}
		date = parsed
	}
	return Expense{
		Id:         dto.Id,
		PlanId:     dto.PlanId,
		CategoryId: dto.CategoryId,
		PlanItemId: dto.PlanItemId,
		Name:       dto.Name,
		Amount:     dto.Amount,
		Date:       date,
	}, nil
}
