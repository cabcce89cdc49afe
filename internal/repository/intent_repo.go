package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/stripe/ecommerce/internal/database"
	"github.com/stripe/ecommerce/internal/models"
)

// IntentRepository handles database operations for payment intents
type IntentRepository struct {
	db *sql.DB
}

// NewIntentRepository creates a new intent repository
func NewIntentRepository() *IntentRepository {
	return &IntentRepository{
		db: database.DB,
	}
}

// NewIntentRepositoryWithDB creates a new intent repository with a specific database connection
func NewIntentRepositoryWithDB(db *sql.DB) *IntentRepository {
	return &IntentRepository{
		db: db,
	}
}

// CreatePaymentIntent inserts a new payment intent record
func (r *IntentRepository) CreatePaymentIntent(intent *models.PaymentIntent) error {
	query := `
		INSERT INTO payment_intents (id, reference, amount, currency, status, stripe_id, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now()
	_, err := r.db.Exec(query,
		intent.ID,
		intent.Reference,
		intent.Amount,
		intent.Currency,
		intent.Status,
		intent.StripeID,
		intent.Description,
		now,
		now,
	)

	if err != nil {
		return fmt.Errorf("failed to create payment intent: %w", err)
	}

	intent.CreatedAt = now
	intent.UpdatedAt = now

	return nil
}

// GetByReference retrieves a payment intent by its reference
func (r *IntentRepository) GetByReference(reference string) (*models.PaymentIntent, error) {
	query := `
		SELECT id, reference, amount, currency, status,
		       COALESCE(stripe_id, ''), COALESCE(description, ''), created_at, updated_at
		FROM payment_intents
		WHERE reference = $1
	`

	intent := &models.PaymentIntent{}
	err := r.db.QueryRow(query, reference).Scan(
		&intent.ID,
		&intent.Reference,
		&intent.Amount,
		&intent.Currency,
		&intent.Status,
		&intent.StripeID,
		&intent.Description,
		&intent.CreatedAt,
		&intent.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment intent not found")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	return intent, nil
}

// UpdateStatus updates the status and Stripe ID of a payment intent
func (r *IntentRepository) UpdateStatus(reference, status, stripeID string) error {
	query := `
		UPDATE payment_intents
		SET status = $1, stripe_id = $2, updated_at = $3
		WHERE reference = $4
	`

	result, err := r.db.Exec(query, status, stripeID, time.Now(), reference)
	if err != nil {
		return fmt.Errorf("failed to update payment intent: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("payment intent not found")
	}

	return nil
}
