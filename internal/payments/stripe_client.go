package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/stripe/ecommerce/internal/config"
)

// Intent statuses reported by Stripe
const (
	StatusRequiresPaymentMethod = "requires_payment_method"
	StatusRequiresConfirmation  = "requires_confirmation"
	StatusRequiresAction        = "requires_action"
	StatusProcessing            = "processing"
	StatusSucceeded             = "succeeded"
	StatusCanceled              = "canceled"
)

// StripeClient handles communication with the Stripe API
type StripeClient interface {
	PaymentRequest(config RequestConfig) *Request
	CreatePaymentIntent(req *IntentRequest) (*IntentResponse, error)
	ConfirmCardPayment(clientSecret string, details *ConfirmDetails, opts ConfirmOptions) (*IntentResponse, error)
	GetPaymentIntent(stripeID string) (*IntentResponse, error)
}

// HTTPStripeClient implements StripeClient using HTTP
type HTTPStripeClient struct {
	config     *config.StripeConfig
	httpClient *http.Client
}

// NewStripeClient creates a new Stripe API client
func NewStripeClient(cfg *config.StripeConfig) StripeClient {
	return &HTTPStripeClient{
		config:     cfg,
		httpClient: &http.Client{},
	}
}

// IntentRequest represents the request to create a payment intent
type IntentRequest struct {
	Amount      int64
	Currency    string
	Description string
}

// IntentResponse represents a payment intent as reported by Stripe
type IntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// ConfirmDetails carries the payment method and shipping contact for a
// confirmation call
type ConfirmDetails struct {
	PaymentMethod string
	Shipping      *Shipping
}

// Shipping is the shipping block sent with a confirmation
type Shipping struct {
	Name    string
	Phone   string
	Address Address
}

// Address is a confirmation shipping address
type Address struct {
	Line1      string
	City       string
	PostalCode string
	State      string
	Country    string
}

// ConfirmOptions controls how a confirmation call behaves. With
// HandleActions disabled the call returns as soon as Stripe answers, leaving
// any follow-up action (such as a 3-D Secure challenge) to a later call.
type ConfirmOptions struct {
	HandleActions bool
}

// stripeError is the error envelope returned by the Stripe API
type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// PaymentRequest creates a wallet payment request handle. Feasibility
// depends on a publishable key being configured; without one the wallet
// button is never shown.
func (c *HTTPStripeClient) PaymentRequest(cfg RequestConfig) *Request {
	return NewRequest(cfg, func(ctx context.Context) (bool, error) {
		return c.config.PublishableKey != "", nil
	})
}

// CreatePaymentIntent creates a new payment intent with Stripe
func (c *HTTPStripeClient) CreatePaymentIntent(req *IntentRequest) (*IntentResponse, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", req.Currency)
	form.Add("payment_method_types[]", "card")
	if req.Description != "" {
		form.Set("description", req.Description)
	}

	resp, err := c.post("/v1/payment_intents", form)
	if err != nil {
		return nil, err
	}

	log.Printf("Stripe payment intent created: %s", resp.ID)
	return resp, nil
}

// ConfirmCardPayment confirms the payment intent identified by the client
// secret. A nil details means the call re-drives the current attempt; an
// intent that already reached a settled status is reported as-is instead of
// failing the confirm call.
func (c *HTTPStripeClient) ConfirmCardPayment(clientSecret string, details *ConfirmDetails, opts ConfirmOptions) (*IntentResponse, error) {
	intentID, err := IntentIDFromClientSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	if details == nil {
		current, err := c.GetPaymentIntent(intentID)
		if err != nil {
			return nil, err
		}
		if current.Status == StatusSucceeded || current.Status == StatusProcessing {
			return current, nil
		}
	}

	form := url.Values{}
	form.Set("client_secret", clientSecret)
	if details != nil {
		form.Set("payment_method", details.PaymentMethod)
		if details.Shipping != nil {
			form.Set("shipping[name]", details.Shipping.Name)
			form.Set("shipping[phone]", details.Shipping.Phone)
			form.Set("shipping[address][line1]", details.Shipping.Address.Line1)
			form.Set("shipping[address][city]", details.Shipping.Address.City)
			form.Set("shipping[address][postal_code]", details.Shipping.Address.PostalCode)
			form.Set("shipping[address][state]", details.Shipping.Address.State)
			form.Set("shipping[address][country]", details.Shipping.Address.Country)
		}
	}

	resp, err := c.post(fmt.Sprintf("/v1/payment_intents/%s/confirm", intentID), form)
	if err != nil {
		return nil, err
	}

	log.Printf("Stripe confirmation for %s returned status %s", intentID, resp.Status)
	return resp, nil
}

// GetPaymentIntent retrieves the current state of a payment intent
func (c *HTTPStripeClient) GetPaymentIntent(stripeID string) (*IntentResponse, error) {
	req, err := http.NewRequest(http.MethodGet, c.config.APIBase+"/v1/payment_intents/"+stripeID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)

	return c.do(req)
}

// post sends a form-encoded POST to the Stripe API
func (c *HTTPStripeClient) post(path string, form url.Values) (*IntentResponse, error) {
	req, err := http.NewRequest(http.MethodPost, c.config.APIBase+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)

	return c.do(req)
}

// do executes a Stripe API request and decodes the intent response
func (c *HTTPStripeClient) do(req *http.Request) (*IntentResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr stripeError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			log.Printf("Stripe API error (status %d): %s", resp.StatusCode, apiErr.Error.Message)
			return nil, fmt.Errorf("stripe API error: %s", apiErr.Error.Message)
		}
		log.Printf("Stripe API error (status %d): %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var intentResp IntentResponse
	if err := json.Unmarshal(body, &intentResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &intentResp, nil
}

// IntentIDFromClientSecret derives the intent identifier from a client
// secret of the form pi_xxx_secret_yyy
func IntentIDFromClientSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret")
	}
	return id, nil
}
