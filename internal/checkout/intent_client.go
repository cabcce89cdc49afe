package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/stripe/ecommerce/internal/cart"
)

// IntentEndpointPath is the route of the payment-intent creation endpoint
const IntentEndpointPath = "/.netlify/functions/create-payment-intent"

// HTTPIntentClient calls the create-payment-intent endpoint over HTTP
type HTTPIntentClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewIntentClient creates a client for the given endpoint URL
func NewIntentClient(endpoint string) *HTTPIntentClient {
	return &HTTPIntentClient{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

// CreatePaymentIntent posts the full cart-details mapping and returns the
// client secret minted by the backend
func (c *HTTPIntentClient) CreatePaymentIntent(ctx context.Context, details map[string]cart.Item) (string, error) {
	reqBody, err := json.Marshal(details)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cart details: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if payload.ClientSecret == "" {
		return "", fmt.Errorf("response missing clientSecret")
	}

	return payload.ClientSecret, nil
}
