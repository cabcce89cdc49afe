package config

import (
	"fmt"
	"os"
)

// StripeConfig holds configuration for Stripe integration
type StripeConfig struct {
	SecretKey      string
	PublishableKey string
	APIBase        string
}

// DefaultAPIBase is the production Stripe API endpoint.
const DefaultAPIBase = "https://api.stripe.com"

// LoadStripeConfig loads Stripe configuration from environment variables
func LoadStripeConfig() (*StripeConfig, error) {
	config := StripeConfig{
		SecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		PublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
		APIBase:        os.Getenv("STRIPE_API_BASE"),
	}

	// Validate required fields
	if config.SecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if config.PublishableKey == "" {
		return nil, fmt.Errorf("STRIPE_PUBLISHABLE_KEY is required")
	}
	if config.APIBase == "" {
		config.APIBase = DefaultAPIBase
	}

	return &config, nil
}
