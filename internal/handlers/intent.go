package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/stripe/ecommerce/internal/cart"
	"github.com/stripe/ecommerce/internal/services"
)

// CreateIntentHandler handles payment intent creation for the wallet checkout
type CreateIntentHandler struct {
	intentService services.IntentService
}

// NewCreateIntentHandler creates a new create-intent handler
func NewCreateIntentHandler(intentService services.IntentService) *CreateIntentHandler {
	return &CreateIntentHandler{
		intentService: intentService,
	}
}

// IntentResponse represents the response sent to the client
type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ServeHTTP handles the intent creation request. The body is the full
// cart-details mapping of item id to item.
func (h *CreateIntentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var details map[string]cart.Item
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		log.Printf("Error decoding cart details: %v", err)
		sendErrorResponse(w, "Invalid cart details", http.StatusBadRequest)
		return
	}
	if len(details) == 0 {
		sendErrorResponse(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	result, err := h.intentService.CreatePaymentIntent(details)
	if err != nil {
		log.Printf("Error creating payment intent: %v", err)
		sendErrorResponse(w, "Failed to create payment intent", http.StatusInternalServerError)
		return
	}

	log.Printf("Payment intent created - Reference: %s, Amount: %d", result.Reference, result.Amount)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(IntentResponse{ClientSecret: result.ClientSecret}); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
