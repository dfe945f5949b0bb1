package web

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"coinbot/models"
)

type webhookRequest struct {
	AccountID string `json:"account_id"`
	Amount    int64  `json:"amount"`
}

type webhookResponse struct {
	AccountID string `json:"account_id"`
	Amount    int64  `json:"amount"`
	Removed   bool   `json:"removed"`
}

// handleWebhook lets external systems credit or debit an account. A
// negative amount is a removal, which clamps at zero like the admin
// remove command.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.AccountID == "" {
		writeJSONError(w, http.StatusBadRequest, "account_id is required")
		return
	}
	if req.Amount == 0 {
		writeJSONError(w, http.StatusBadRequest, "amount must be non-zero")
		return
	}

	amount := req.Amount
	remove := false
	if amount < 0 {
		amount = -amount
		remove = true
	}

	result, err := s.economy.AdminAdjust(ctx, []string{req.AccountID}, amount, remove)
	if err != nil {
		if errors.Is(err, models.ErrInvalidAmount) || errors.Is(err, models.ErrNoTargets) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Errorf("Webhook adjustment failed for account %s: %v", req.AccountID, err)
		writeJSONError(w, http.StatusInternalServerError, "adjustment failed")
		return
	}

	writeJSON(w, http.StatusOK, webhookResponse{
		AccountID: req.AccountID,
		Amount:    result.Amount,
		Removed:   result.Removed,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("Error encoding JSON response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
