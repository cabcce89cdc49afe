package services

import (
	"fmt"
	"log"

	"github.com/stripe/ecommerce/internal/cart"
	"github.com/stripe/ecommerce/internal/checkout"
	"github.com/stripe/ecommerce/internal/models"
	"github.com/stripe/ecommerce/internal/payments"
)

// IntentRepository defines the interface for payment-intent persistence
type IntentRepository interface {
	CreatePaymentIntent(intent *models.PaymentIntent) error
	GetByReference(reference string) (*models.PaymentIntent, error)
	UpdateStatus(reference, status, stripeID string) error
}

// IntentService handles payment-intent business logic
type IntentService interface {
	CreatePaymentIntent(details map[string]cart.Item) (*IntentResult, error)
	SyncStatus(reference string) (*models.PaymentIntent, error)
}

// IntentServiceImpl implements IntentService
type IntentServiceImpl struct {
	stripeClient payments.StripeClient
	repo         IntentRepository
}

// NewIntentService creates a new intent service
func NewIntentService(stripeClient payments.StripeClient, repo IntentRepository) IntentService {
	return &IntentServiceImpl{
		stripeClient: stripeClient,
		repo:         repo,
	}
}

// IntentResult represents a freshly minted payment intent
type IntentResult struct {
	Reference    string
	ClientSecret string
	StripeID     string
	Amount       int64
}

// CreatePaymentIntent records an intent for the posted cart details and
// mints the matching intent with Stripe. The amount recomputes the same
// total the wallet sheet shows: line prices plus the fixed base amount.
func (s *IntentServiceImpl) CreatePaymentIntent(details map[string]cart.Item) (*IntentResult, error) {
	if len(details) == 0 {
		return nil, fmt.Errorf("cart details are empty")
	}

	amount := int64(checkout.BaseAmount)
	currency := "usd"
	var units int64
	for _, item := range details {
		amount += item.Price
		units += item.Quantity
		if item.Currency != "" {
			currency = item.Currency
		}
	}

	intent, err := models.NewPaymentIntent(amount, currency, fmt.Sprintf("Wallet checkout (%d units)", units))
	if err != nil {
		return nil, fmt.Errorf("invalid intent: %w", err)
	}

	if err := s.repo.CreatePaymentIntent(intent); err != nil {
		return nil, fmt.Errorf("failed to record intent: %w", err)
	}

	log.Printf("Recorded payment intent: %s", intent.Reference)

	resp, err := s.stripeClient.CreatePaymentIntent(&payments.IntentRequest{
		Amount:      amount,
		Currency:    currency,
		Description: intent.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Stripe intent: %w", err)
	}

	if err := intent.AttachStripeID(resp.ID); err != nil {
		return nil, fmt.Errorf("bad Stripe intent: %w", err)
	}
	if err := intent.ApplyStatus(models.IntentStatus(resp.Status)); err != nil {
		log.Printf("Warning: unexpected status from Stripe: %v", err)
	}

	if err := s.repo.UpdateStatus(intent.Reference, string(intent.Status), intent.StripeID); err != nil {
		log.Printf("Warning: failed to update intent record: %v", err)
		// Continue anyway - the client secret is what the checkout needs
	}

	return &IntentResult{
		Reference:    intent.Reference,
		ClientSecret: resp.ClientSecret,
		StripeID:     resp.ID,
		Amount:       amount,
	}, nil
}

// SyncStatus refreshes a recorded intent with the status Stripe reports.
// An intent that never reached Stripe is returned unchanged.
func (s *IntentServiceImpl) SyncStatus(reference string) (*models.PaymentIntent, error) {
	intent, err := s.repo.GetByReference(reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get intent: %w", err)
	}

	if intent.StripeID == "" {
		return intent, nil
	}

	resp, err := s.stripeClient.GetPaymentIntent(intent.StripeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get Stripe intent: %w", err)
	}

	if err := intent.ApplyStatus(models.IntentStatus(resp.Status)); err != nil {
		log.Printf("Warning: not applying status %q to %s: %v", resp.Status, reference, err)
		return intent, nil
	}

	if err := s.repo.UpdateStatus(intent.Reference, string(intent.Status), intent.StripeID); err != nil {
		log.Printf("Warning: failed to update intent record: %v", err)
	}

	return intent, nil
}
