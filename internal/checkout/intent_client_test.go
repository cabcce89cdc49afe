package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stripe/ecommerce/internal/cart"
)

func TestHTTPIntentClient_CreatePaymentIntent(t *testing.T) {
	details := map[string]cart.Item{
		"sunnies": {ID: "sunnies", Name: "Sunglasses", Price: 500, Currency: "usd", Quantity: 1},
	}

	tests := []struct {
		name       string
		statusCode int
		body       string
		wantSecret string
		wantErr    bool
	}{
		{
			name:       "successful response",
			statusCode: http.StatusOK,
			body:       `{"clientSecret":"pi_1_secret_abc"}`,
			wantSecret: "pi_1_secret_abc",
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       `{"error":"Internal Server Error","message":"boom"}`,
			wantErr:    true,
		},
		{
			name:       "missing clientSecret",
			statusCode: http.StatusOK,
			body:       `{}`,
			wantErr:    true,
		},
		{
			name:       "malformed response",
			statusCode: http.StatusOK,
			body:       `not json`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("Expected POST, got %s", r.Method)
				}
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("Expected application/json, got %s", ct)
				}

				var posted map[string]cart.Item
				if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
					t.Errorf("Failed to decode posted details: %v", err)
				}
				if posted["sunnies"].Price != 500 {
					t.Errorf("Expected posted price 500, got %d", posted["sunnies"].Price)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewIntentClient(server.URL)
			secret, err := client.CreatePaymentIntent(context.Background(), details)

			if (err != nil) != tt.wantErr {
				t.Fatalf("CreatePaymentIntent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if secret != tt.wantSecret {
				t.Errorf("Expected secret %q, got %q", tt.wantSecret, secret)
			}
		})
	}
}
