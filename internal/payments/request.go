package payments

import (
	"context"
	"sync"
)

// Completion statuses reported back to the wallet sheet
const (
	CompleteSuccess = "success"
	CompleteFail    = "fail"
)

// RequestConfig parameterizes a payment request handle
type RequestConfig struct {
	Country           string
	Currency          string
	Total             Total
	RequestPayerName  bool
	RequestPayerEmail bool
	RequestShipping   bool
	ShippingOptions   []ShippingOption
}

// Total is the line-item total shown on the wallet sheet
type Total struct {
	Label   string
	Amount  int64
	Pending bool
}

// ShippingOption is a selectable shipping method on the wallet sheet
type ShippingOption struct {
	ID     string
	Label  string
	Detail string
	Amount int64
}

// PaymentMethod identifies the payment method collected by the wallet sheet
type PaymentMethod struct {
	ID         string
	PayerName  string
	PayerEmail string
}

// ContactAddress is the shipping contact collected by the wallet sheet
type ContactAddress struct {
	Recipient   string
	Phone       string
	AddressLine []string
	City        string
	PostalCode  string
	Region      string
	Country     string
}

// PaymentMethodEvent notifies the listener that the shopper approved a
// payment method. Complete closes the wallet sheet with the given status
// (CompleteSuccess or CompleteFail).
type PaymentMethodEvent struct {
	PaymentMethod   PaymentMethod
	ShippingAddress ContactAddress
	Complete        func(status string)
}

// CanMakePaymentFunc probes whether a wallet payment is feasible
type CanMakePaymentFunc func(ctx context.Context) (bool, error)

// Request is an owned handle to a wallet payment solicitation. It carries
// the sheet configuration and a single mutable payment-method listener slot:
// attaching a listener replaces the previous one, so at most one listener is
// ever subscribed. Callers must detach before a new client secret invalidates
// the listener's confirmation context.
type Request struct {
	mu       sync.Mutex
	config   RequestConfig
	canPay   CanMakePaymentFunc
	listener func(*PaymentMethodEvent)
}

// NewRequest creates a payment request handle with the given configuration
func NewRequest(config RequestConfig, canPay CanMakePaymentFunc) *Request {
	return &Request{
		config: config,
		canPay: canPay,
	}
}

// CanMakePayment probes whether the wallet can satisfy this request
func (r *Request) CanMakePayment(ctx context.Context) (bool, error) {
	if r.canPay == nil {
		return false, nil
	}
	return r.canPay(ctx)
}

// Update pushes a new total to the existing handle without recreating it
func (r *Request) Update(total Total) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config.Total = total
}

// Config returns the current handle configuration
func (r *Request) Config() RequestConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.config
}

// On subscribes the payment-method listener, replacing any previous one
func (r *Request) On(listener func(*PaymentMethodEvent)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = listener
}

// Off detaches the payment-method listener
func (r *Request) Off() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = nil
}

// HasListener reports whether a payment-method listener is attached
func (r *Request) HasListener() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listener != nil
}

// Dispatch delivers a payment-method event to the current listener.
// It returns false when no listener is attached.
func (r *Request) Dispatch(event *PaymentMethodEvent) bool {
	r.mu.Lock()
	listener := r.listener
	r.mu.Unlock()

	if listener == nil {
		return false
	}
	if event.Complete == nil {
		event.Complete = func(string) {}
	}
	listener(event)
	return true
}
