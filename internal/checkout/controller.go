package checkout

import (
	"context"
	"fmt"
	"log"

	"github.com/stripe/ecommerce/internal/cart"
	"github.com/stripe/ecommerce/internal/payments"
)

// BaseAmount is the fixed baseline added to every total, in minor units.
// It doubles as the flat fee of the single shipping option.
const BaseAmount = 350

// SuccessPath is where the shopper lands after a confirmed payment
const SuccessPath = "/success"

const totalLabel = "Demo total"

// CartReader exposes the cart-state capability to the controller
type CartReader interface {
	Items() []cart.Item
	Details() map[string]cart.Item
	Count() int64
}

// WalletProvider is the slice of the payment provider the controller needs
type WalletProvider interface {
	PaymentRequest(config payments.RequestConfig) *payments.Request
	ConfirmCardPayment(clientSecret string, details *payments.ConfirmDetails, opts payments.ConfirmOptions) (*payments.IntentResponse, error)
}

// IntentCreator exchanges cart details for a client secret
type IntentCreator interface {
	CreatePaymentIntent(ctx context.Context, details map[string]cart.Item) (string, error)
}

// ClickEvent models a wallet button click. PreventDefault cancels the
// wallet sheet before it opens.
type ClickEvent struct {
	prevented bool
}

// PreventDefault cancels the triggering wallet action
func (e *ClickEvent) PreventDefault() {
	e.prevented = true
}

// Prevented reports whether the wallet action was cancelled
func (e *ClickEvent) Prevented() bool {
	return e.prevented
}

// Controller orchestrates the wallet checkout handshake: it owns the payment
// request handle, exchanges cart details for a client secret on click, and
// drives the two-phase confirmation when the wallet reports a payment method.
type Controller struct {
	cart     CartReader
	provider WalletProvider
	intents  IntentCreator
	navigate func(path string)
	alert    func(message string)

	request      *payments.Request
	clientSecret string
}

// NewController creates a checkout controller. navigate and alert may be nil
// when the caller has no use for them.
func NewController(cartReader CartReader, provider WalletProvider, intents IntentCreator, navigate func(string), alert func(string)) *Controller {
	if navigate == nil {
		navigate = func(string) {}
	}
	if alert == nil {
		alert = func(string) {}
	}

	return &Controller{
		cart:     cartReader,
		provider: provider,
		intents:  intents,
		navigate: navigate,
		alert:    alert,
	}
}

// EnsureHandle builds the payment request handle the first time the provider
// becomes available. The handle is only published when the wallet probe
// reports it feasible; an infeasible wallet is a silent, expected outcome
// and leaves the flow inert.
func (c *Controller) EnsureHandle(ctx context.Context) (*payments.Request, error) {
	if c.request != nil {
		return c.request, nil
	}

	pr := c.provider.PaymentRequest(payments.RequestConfig{
		Country:  "US",
		Currency: "usd",
		Total: payments.Total{
			Label:   totalLabel,
			Amount:  c.total(),
			Pending: true,
		},
		RequestPayerName:  true,
		RequestPayerEmail: true,
		RequestShipping:   true,
		ShippingOptions: []payments.ShippingOption{
			{
				ID:     "standard-global",
				Label:  "Global shipping",
				Detail: "Handling and delivery fee",
				Amount: BaseAmount,
			},
		},
	})

	feasible, err := pr.CanMakePayment(ctx)
	if err != nil {
		return nil, fmt.Errorf("wallet feasibility probe failed: %w", err)
	}
	if !feasible {
		return nil, nil
	}

	c.request = pr
	return pr, nil
}

// Request returns the published handle, or nil when no wallet is available
func (c *Controller) Request() *payments.Request {
	return c.request
}

// ClientSecret returns the client secret of the current checkout attempt
func (c *Controller) ClientSecret() string {
	return c.clientSecret
}

// CartChanged recomputes the total and pushes it to the existing handle.
// The handle is never recreated and feasibility is not re-probed.
func (c *Controller) CartChanged() {
	if c.request == nil {
		return
	}

	c.request.Update(payments.Total{
		Label:   totalLabel,
		Amount:  c.total(),
		Pending: false,
	})
}

// HandleClick reacts to the wallet button. An empty cart cancels the sheet
// with an alert. Otherwise a fresh client secret is requested from the
// payment backend and the payment-method listener is (re)attached. A failed
// intent request is logged only; no secret is set and the button stays
// available for a retry.
func (c *Controller) HandleClick(ctx context.Context, event *ClickEvent) {
	if c.cart.Count() == 0 {
		event.PreventDefault()
		c.alert("Cart is empty!")
		return
	}
	if c.request == nil {
		return
	}

	if c.clientSecret != "" {
		// The amount may have changed since the last attempt: detach the
		// listener until a fresh client secret is in hand, so a stale secret
		// can never be confirmed against a newer payment-method event.
		c.request.Off()
	}

	secret, err := c.intents.CreatePaymentIntent(ctx, c.cart.Details())
	if err != nil {
		log.Printf("Error creating payment intent: %v", err)
		return
	}

	c.clientSecret = secret
	c.request.On(c.handlePaymentMethod)
}

// handlePaymentMethod confirms the intent with the payment method returned
// from the wallet sheet. The first confirmation runs with follow-up actions
// disabled and decides the sheet's closing status; on success a second,
// unconditional confirmation lets the provider run any follow-up actions
// (3-D Secure and friends) before navigating to the success page.
func (c *Controller) handlePaymentMethod(event *payments.PaymentMethodEvent) {
	details := &payments.ConfirmDetails{
		PaymentMethod: event.PaymentMethod.ID,
		Shipping:      shippingFromContact(event.ShippingAddress),
	}

	_, err := c.provider.ConfirmCardPayment(c.clientSecret, details, payments.ConfirmOptions{HandleActions: false})
	if err != nil {
		log.Printf("Error confirming card payment: %v", err)
		event.Complete(payments.CompleteFail)
		return
	}

	event.Complete(payments.CompleteSuccess)

	resp, err := c.provider.ConfirmCardPayment(c.clientSecret, nil, payments.ConfirmOptions{HandleActions: true})
	if err != nil {
		log.Printf("Error completing payment: %v", err)
		return
	}
	if resp.Status == payments.StatusSucceeded {
		c.navigate(SuccessPath)
	}
}

// total sums the cart line prices on top of the fixed base amount
func (c *Controller) total() int64 {
	total := int64(BaseAmount)
	for _, item := range c.cart.Items() {
		total += item.Price
	}
	return total
}

// shippingFromContact maps the wallet shipping contact to the confirmation
// shipping block
func shippingFromContact(contact payments.ContactAddress) *payments.Shipping {
	var line1 string
	if len(contact.AddressLine) > 0 {
		line1 = contact.AddressLine[0]
	}

	return &payments.Shipping{
		Name:  contact.Recipient,
		Phone: contact.Phone,
		Address: payments.Address{
			Line1:      line1,
			City:       contact.City,
			PostalCode: contact.PostalCode,
			State:      contact.Region,
			Country:    contact.Country,
		},
	}
}
