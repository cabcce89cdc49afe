package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/stripe/ecommerce/internal/services"
)

// IntentStatusHandler reports the recorded state of a payment intent,
// refreshed from Stripe. Client-side confirmation never notifies the
// backend, so this is how the store learns the outcome of a checkout.
type IntentStatusHandler struct {
	intentService services.IntentService
}

// NewIntentStatusHandler creates a new intent status handler
func NewIntentStatusHandler(intentService services.IntentService) *IntentStatusHandler {
	return &IntentStatusHandler{
		intentService: intentService,
	}
}

// IntentStatusResponse represents the status payload sent to the client
type IntentStatusResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// ServeHTTP handles the status request
func (h *IntentStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reference := r.URL.Query().Get("reference")
	if reference == "" {
		sendErrorResponse(w, "Missing reference", http.StatusBadRequest)
		return
	}

	intent, err := h.intentService.SyncStatus(reference)
	if err != nil {
		log.Printf("Error syncing intent status: %v", err)
		sendErrorResponse(w, "Failed to get intent status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(IntentStatusResponse{
		Reference: intent.Reference,
		Status:    string(intent.Status),
		Amount:    intent.Amount,
		Currency:  intent.Currency,
	}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
