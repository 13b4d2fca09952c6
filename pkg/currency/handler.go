package currency

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/spenso/spenso/pkg/user"
)

type ConversionResultDTO struct {
	From            string          `json:"from"`
	To              string          `json:"to"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	Rate            decimal.Decimal `json:"rate"`
	Timestamp       string          `json:"timestamp"`
}

type Handler struct {
	coordinator  *Coordinator
	userProvider user.Provider
}

func NewHandler(coordinator *Coordinator, userProvider user.Provider) *Handler {
	return &Handler{coordinator: coordinator, userProvider: userProvider}
}

// Convert godoc
// @Summary Convert an amount between two currencies
// @Tags Currency
// @Produce json
// @Param from query string false "Source currency code, defaults to the user's currency"
// @Param to query string true "Target currency code"
// @Param amount query number true "Amount in the source currency"
// @Success 200 {object} ConversionResultDTO
// @Failure 400 {string} string "Invalid conversion input"
// @Failure 502 {string} string "Conversion failed"
// @Router /api/currency/convert [get]
// @Security XUserId
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	log.Debug("Converting currency")
	w.Header().Set("Content-Type", "application/json")

	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")
	if from == "" {
		u, err := h.userProvider.GetCurrentUser(r.Context())
		if err != nil {
			http.Error(w, "Source currency is required", http.StatusBadRequest)
			return
		}
		from = u.Settings.Currency
	}
	amount, err := decimal.NewFromString(query.Get("amount"))
	if err != nil {
		http.Error(w, "Invalid amount", http.StatusBadRequest)
		return
	}

	status := h.coordinator.PerformConversion(r.Context(), from, to, amount)
	if status.ErrorMessage != "" {
		http.Error(w, status.ErrorMessage, http.StatusBadGateway)
		return
	}
	if status.Result == nil {
		http.Error(w, "Invalid conversion input", http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ResultToDTO(*status.Result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func ResultToDTO(result ConversionResult) ConversionResultDTO {
	return ConversionResultDTO{
		From:            result.From,
		To:              result.To,
		OriginalAmount:  result.OriginalAmount,
		ConvertedAmount: result.ConvertedAmount,
		Rate:            result.Rate,
		Timestamp:       result.Timestamp.Format(time.RFC3339),
	}
}
