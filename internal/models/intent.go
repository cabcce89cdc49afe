package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IntentStatus represents the lifecycle state of a payment intent record.
// The values mirror the status vocabulary reported by Stripe.
type IntentStatus string

// Payment intent statuses
const (
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusRequiresConfirmation  IntentStatus = "requires_confirmation"
	IntentStatusRequiresAction        IntentStatus = "requires_action"
	IntentStatusProcessing            IntentStatus = "processing"
	IntentStatusSucceeded             IntentStatus = "succeeded"
	IntentStatusCanceled              IntentStatus = "canceled"
)

// PaymentIntent is the server-side record of an attempted charge,
// created before confirmation and updated as the provider reports progress.
type PaymentIntent struct {
	ID          string
	Reference   string
	Amount      int64
	Currency    string
	Status      IntentStatus
	StripeID    string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Domain errors
var (
	ErrInvalidAmount           = errors.New("intent amount must be positive")
	ErrInvalidCurrency         = errors.New("currency code must be 3 characters")
	ErrInvalidStatus           = errors.New("unknown intent status")
	ErrInvalidStatusTransition = errors.New("invalid intent status transition")
)

// NewPaymentIntent creates a new payment intent record with validation
func NewPaymentIntent(amount int64, currency, description string) (*PaymentIntent, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if len(currency) != 3 {
		return nil, ErrInvalidCurrency
	}

	now := time.Now()

	return &PaymentIntent{
		ID:          uuid.New().String(),
		Reference:   fmt.Sprintf("CHECKOUT-%d", now.UnixNano()),
		Amount:      amount,
		Currency:    currency,
		Status:      IntentStatusRequiresPaymentMethod,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// validStatuses holds every status the record accepts from the provider.
var validStatuses = map[IntentStatus]bool{
	IntentStatusRequiresPaymentMethod: true,
	IntentStatusRequiresConfirmation:  true,
	IntentStatusRequiresAction:        true,
	IntentStatusProcessing:            true,
	IntentStatusSucceeded:             true,
	IntentStatusCanceled:              true,
}

// ApplyStatus transitions the record to the status reported by the provider.
// Terminal statuses (succeeded, canceled) cannot be left once entered.
func (p *PaymentIntent) ApplyStatus(status IntentStatus) error {
	if !validStatuses[status] {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if p.IsTerminal() && status != p.Status {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidStatusTransition, p.Status, status)
	}

	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}

// AttachStripeID records the provider-side intent identifier
func (p *PaymentIntent) AttachStripeID(stripeID string) error {
	if stripeID == "" {
		return errors.New("stripe intent ID cannot be empty")
	}
	p.StripeID = stripeID
	p.UpdatedAt = time.Now()
	return nil
}

// IsTerminal returns true once the intent has reached a final status
func (p *PaymentIntent) IsTerminal() bool {
	return p.Status == IntentStatusSucceeded || p.Status == IntentStatusCanceled
}

// IsSucceeded returns true if the charge completed
func (p *PaymentIntent) IsSucceeded() bool {
	return p.Status == IntentStatusSucceeded
}

// GetFormattedAmount returns the amount formatted with currency
func (p *PaymentIntent) GetFormattedAmount() string {
	amountInMajorUnits := float64(p.Amount) / 100.0
	return fmt.Sprintf("%.2f %s", amountInMajorUnits, p.Currency)
}
