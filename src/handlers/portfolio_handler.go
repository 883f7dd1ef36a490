package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wilqq-the/btc-tracker/src/logger"
	"github.com/wilqq-the/btc-tracker/src/services"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

type PortfolioHandler struct {
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(service services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: service,
	}
}

func (h *PortfolioHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	summary, err := h.portfolioService.GetSummary(userID)
	if err != nil {
		logger.L.Error("Error computing portfolio summary", "userID", userID, "error", err)
		utils.SendJSONError(w, "Error computing portfolio summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		logger.L.Error("Error encoding JSON response for portfolio summary", "userID", userID, "error", err)
	}
}
