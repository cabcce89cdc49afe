package database

import (
	"fmt"
	"log"
)

// RunMigrations creates the necessary database tables
func RunMigrations() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}

	// Create payment_intents table
	createPaymentIntentsTable := `
	CREATE TABLE IF NOT EXISTS payment_intents (
		id UUID PRIMARY KEY,
		reference VARCHAR(255) UNIQUE NOT NULL,
		amount BIGINT NOT NULL,
		currency VARCHAR(3) NOT NULL,
		status VARCHAR(50) NOT NULL,
		stripe_id VARCHAR(255),
		description VARCHAR(255),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_payment_intents_reference ON payment_intents(reference);
	CREATE INDEX IF NOT EXISTS idx_payment_intents_status ON payment_intents(status);
	`

	_, err := DB.Exec(createPaymentIntentsTable)
	if err != nil {
		return fmt.Errorf("failed to create payment_intents table: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
