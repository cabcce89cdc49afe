package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/stripe/ecommerce/internal/cart"
	"github.com/stripe/ecommerce/internal/checkout"
	"github.com/stripe/ecommerce/internal/payments"
)

// CheckoutDependencies holds everything the headless checkout flow needs
type CheckoutDependencies struct {
	Cart            *cart.Store
	Provider        checkout.WalletProvider
	Intents         checkout.IntentCreator
	PaymentMethodID string
}

// RunCheckout drives the same handshake the wallet sheet performs, using a
// test payment method instead of a real wallet. Useful as a smoke test
// against a running server.
func RunCheckout(deps CheckoutDependencies) error {
	ctx := context.Background()

	var navigated string
	controller := checkout.NewController(deps.Cart, deps.Provider, deps.Intents,
		func(path string) { navigated = path },
		func(message string) { log.Printf("Alert: %s", message) },
	)

	request, err := controller.EnsureHandle(ctx)
	if err != nil {
		return err
	}
	if request == nil {
		log.Println("Wallet payments are not available; nothing to do")
		return nil
	}

	click := &checkout.ClickEvent{}
	controller.HandleClick(ctx, click)
	if click.Prevented() {
		return fmt.Errorf("checkout aborted: cart is empty")
	}
	if controller.ClientSecret() == "" {
		return fmt.Errorf("payment intent creation failed, no client secret")
	}

	event := &payments.PaymentMethodEvent{
		PaymentMethod: payments.PaymentMethod{ID: deps.PaymentMethodID},
		ShippingAddress: payments.ContactAddress{
			Recipient:   "Jenny Rosen",
			Phone:       "+15555551212",
			AddressLine: []string{"510 Townsend St"},
			City:        "San Francisco",
			PostalCode:  "94103",
			Region:      "CA",
			Country:     "US",
		},
		Complete: func(status string) { log.Printf("Wallet sheet closed: %s", status) },
	}

	if !request.Dispatch(event) {
		return fmt.Errorf("no payment-method listener attached")
	}

	if navigated == "" {
		return fmt.Errorf("payment did not reach succeeded status")
	}

	log.Printf("Checkout complete, navigated to %s", navigated)
	return nil
}
