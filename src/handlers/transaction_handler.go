package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/wilqq-the/btc-tracker/src/logger"
	"github.com/wilqq-the/btc-tracker/src/models"
	"github.com/wilqq-the/btc-tracker/src/services"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

type TransactionHandler struct {
	importService services.ImportService
}

func NewTransactionHandler(service services.ImportService) *TransactionHandler {
	return &TransactionHandler{
		importService: service,
	}
}

// HandleGetTransactions returns the owner's ledger in insertion order,
// with ETag support so unchanged ledgers cost a 304.
func (h *TransactionHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	transactions, err := h.importService.GetTransactions(userID)
	if err != nil {
		logger.L.Error("Error retrieving transactions", "userID", userID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error retrieving transactions for userID %d", userID), http.StatusInternalServerError)
		return
	}
	if transactions == nil {
		transactions = []models.CanonicalTransaction{}
	}

	w.Header().Set("Cache-Control", "no-cache, private")
	if currentETag, etagErr := utils.GenerateETag(transactions); etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("%q", currentETag)
		w.Header().Set("ETag", quotedETag)
		for _, clientETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(clientETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(transactions); err != nil {
		logger.L.Error("Error encoding JSON response for transactions", "userID", userID, "error", err)
	}
}

// HandleDeleteAllTransactions wipes the owner's ledger.
func (h *TransactionHandler) HandleDeleteAllTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := h.importService.DeleteAllTransactions(userID); err != nil {
		logger.L.Error("Error deleting transactions", "userID", userID, "error", err)
		utils.SendJSONError(w, "Error deleting transactions", http.StatusInternalServerError)
		return
	}

	logger.L.Info("Deleted all transactions", "userID", userID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "all transactions deleted"})
}
