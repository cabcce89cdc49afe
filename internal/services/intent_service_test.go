package services

import (
	"errors"
	"testing"

	"github.com/stripe/ecommerce/internal/cart"
	"github.com/stripe/ecommerce/internal/models"
	"github.com/stripe/ecommerce/internal/payments"
)

// MockStripeClient is a mock implementation of payments.StripeClient for testing
type MockStripeClient struct {
	CreatePaymentIntentFunc func(*payments.IntentRequest) (*payments.IntentResponse, error)
	GetPaymentIntentFunc    func(string) (*payments.IntentResponse, error)
}

func (m *MockStripeClient) PaymentRequest(config payments.RequestConfig) *payments.Request {
	return payments.NewRequest(config, nil)
}

func (m *MockStripeClient) CreatePaymentIntent(req *payments.IntentRequest) (*payments.IntentResponse, error) {
	if m.CreatePaymentIntentFunc != nil {
		return m.CreatePaymentIntentFunc(req)
	}
	return &payments.IntentResponse{
		ID:           "pi_123",
		ClientSecret: "pi_123_secret_456",
		Status:       payments.StatusRequiresPaymentMethod,
	}, nil
}

func (m *MockStripeClient) ConfirmCardPayment(clientSecret string, details *payments.ConfirmDetails, opts payments.ConfirmOptions) (*payments.IntentResponse, error) {
	return nil, errors.New("not used in these tests")
}

func (m *MockStripeClient) GetPaymentIntent(stripeID string) (*payments.IntentResponse, error) {
	if m.GetPaymentIntentFunc != nil {
		return m.GetPaymentIntentFunc(stripeID)
	}
	return &payments.IntentResponse{
		ID:     stripeID,
		Status: payments.StatusSucceeded,
	}, nil
}

// MockIntentRepository is a mock implementation of IntentRepository for testing
type MockIntentRepository struct {
	CreatePaymentIntentFunc func(*models.PaymentIntent) error
	GetByReferenceFunc      func(string) (*models.PaymentIntent, error)
	UpdateStatusFunc        func(string, string, string) error
}

func (m *MockIntentRepository) CreatePaymentIntent(intent *models.PaymentIntent) error {
	if m.CreatePaymentIntentFunc != nil {
		return m.CreatePaymentIntentFunc(intent)
	}
	return nil
}

func (m *MockIntentRepository) GetByReference(reference string) (*models.PaymentIntent, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(reference)
	}
	return &models.PaymentIntent{
		Reference: reference,
		Amount:    2050,
		Currency:  "usd",
		Status:    models.IntentStatusRequiresPaymentMethod,
		StripeID:  "pi_123",
	}, nil
}

func (m *MockIntentRepository) UpdateStatus(reference, status, stripeID string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(reference, status, stripeID)
	}
	return nil
}

func testDetails() map[string]cart.Item {
	return map[string]cart.Item{
		"sunnies":  {ID: "sunnies", Name: "Sunglasses", Price: 500, Currency: "usd", Quantity: 1},
		"logo-tee": {ID: "logo-tee", Name: "Logo Tee", Price: 1200, Currency: "usd", Quantity: 2},
	}
}

func TestIntentService_CreatePaymentIntent(t *testing.T) {
	tests := []struct {
		name        string
		details     map[string]cart.Item
		repoError   error
		stripeError error
		updateError error
		wantErr     bool
	}{
		{
			name:    "successful intent creation",
			details: testDetails(),
		},
		{
			name:    "empty cart details",
			details: map[string]cart.Item{},
			wantErr: true,
		},
		{
			name:      "repository failure",
			details:   testDetails(),
			repoError: errors.New("database error"),
			wantErr:   true,
		},
		{
			name:        "Stripe intent creation fails",
			details:     testDetails(),
			stripeError: errors.New("API error"),
			wantErr:     true,
		},
		{
			name:        "status update failure is tolerated",
			details:     testDetails(),
			updateError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStripe := &MockStripeClient{
				CreatePaymentIntentFunc: func(req *payments.IntentRequest) (*payments.IntentResponse, error) {
					if tt.stripeError != nil {
						return nil, tt.stripeError
					}
					// 500 + 1200 line prices plus the 350 base; quantity
					// affects the details, not the total
					if req.Amount != 2050 {
						t.Errorf("Expected amount 2050, got %d", req.Amount)
					}
					if req.Currency != "usd" {
						t.Errorf("Expected currency usd, got %s", req.Currency)
					}
					return &payments.IntentResponse{
						ID:           "pi_123",
						ClientSecret: "pi_123_secret_456",
						Status:       payments.StatusRequiresPaymentMethod,
					}, nil
				},
			}

			var recorded *models.PaymentIntent
			mockRepo := &MockIntentRepository{
				CreatePaymentIntentFunc: func(intent *models.PaymentIntent) error {
					if tt.repoError != nil {
						return tt.repoError
					}
					recorded = intent
					return nil
				},
				UpdateStatusFunc: func(reference, status, stripeID string) error {
					return tt.updateError
				},
			}

			service := NewIntentService(mockStripe, mockRepo)
			result, err := service.CreatePaymentIntent(tt.details)

			if (err != nil) != tt.wantErr {
				t.Fatalf("CreatePaymentIntent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if result.ClientSecret != "pi_123_secret_456" {
				t.Errorf("Expected client secret from Stripe, got %q", result.ClientSecret)
			}
			if result.StripeID != "pi_123" {
				t.Errorf("Expected Stripe ID pi_123, got %q", result.StripeID)
			}
			if result.Amount != 2050 {
				t.Errorf("Expected amount 2050, got %d", result.Amount)
			}
			if recorded == nil {
				t.Fatal("Expected intent record to be persisted")
			}
			if recorded.Amount != 2050 {
				t.Errorf("Expected recorded amount 2050, got %d", recorded.Amount)
			}
		})
	}
}

func TestIntentService_SyncStatus(t *testing.T) {
	tests := []struct {
		name         string
		stored       *models.PaymentIntent
		getError     error
		stripeStatus string
		stripeError  error
		wantErr      bool
		wantStatus   models.IntentStatus
	}{
		{
			name: "status refreshed from Stripe",
			stored: &models.PaymentIntent{
				Reference: "CHECKOUT-1",
				Status:    models.IntentStatusRequiresPaymentMethod,
				StripeID:  "pi_123",
			},
			stripeStatus: "succeeded",
			wantStatus:   models.IntentStatusSucceeded,
		},
		{
			name: "intent without stripe id returned unchanged",
			stored: &models.PaymentIntent{
				Reference: "CHECKOUT-2",
				Status:    models.IntentStatusRequiresPaymentMethod,
			},
			wantStatus: models.IntentStatusRequiresPaymentMethod,
		},
		{
			name:     "unknown reference",
			getError: errors.New("payment intent not found"),
			wantErr:  true,
		},
		{
			name: "Stripe lookup failure",
			stored: &models.PaymentIntent{
				Reference: "CHECKOUT-3",
				Status:    models.IntentStatusRequiresPaymentMethod,
				StripeID:  "pi_123",
			},
			stripeError: errors.New("API error"),
			wantErr:     true,
		},
		{
			name: "terminal record is not rewound",
			stored: &models.PaymentIntent{
				Reference: "CHECKOUT-4",
				Status:    models.IntentStatusSucceeded,
				StripeID:  "pi_123",
			},
			stripeStatus: "requires_payment_method",
			wantStatus:   models.IntentStatusSucceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStripe := &MockStripeClient{
				GetPaymentIntentFunc: func(stripeID string) (*payments.IntentResponse, error) {
					if tt.stripeError != nil {
						return nil, tt.stripeError
					}
					return &payments.IntentResponse{ID: stripeID, Status: tt.stripeStatus}, nil
				},
			}
			mockRepo := &MockIntentRepository{
				GetByReferenceFunc: func(reference string) (*models.PaymentIntent, error) {
					if tt.getError != nil {
						return nil, tt.getError
					}
					return tt.stored, nil
				},
			}

			service := NewIntentService(mockStripe, mockRepo)
			intent, err := service.SyncStatus("CHECKOUT-X")

			if (err != nil) != tt.wantErr {
				t.Fatalf("SyncStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if intent.Status != tt.wantStatus {
				t.Errorf("Expected status %s, got %s", tt.wantStatus, intent.Status)
			}
		})
	}
}
