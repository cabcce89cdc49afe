package cart

import "sync"

// Item represents one cart line: a product with its unit price and quantity.
// The JSON shape matches the body posted to the create-payment-intent endpoint.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	Quantity int64  `json:"quantity"`
}

// Store is the in-memory cart-state capability. Items keep their insertion
// order; adding an item that is already present bumps its quantity instead
// of appending a second line.
type Store struct {
	mu    sync.Mutex
	order []string
	items map[string]Item
}

// NewStore creates an empty cart
func NewStore() *Store {
	return &Store{
		items: make(map[string]Item),
	}
}

// Add puts an item in the cart or increments its quantity if already present
func (s *Store) Add(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	if existing, ok := s.items[item.ID]; ok {
		existing.Quantity += item.Quantity
		s.items[item.ID] = existing
		return
	}

	s.order = append(s.order, item.ID)
	s.items[item.ID] = item
}

// Items returns the cart lines in insertion order
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.items[id])
	}
	return items
}

// Details returns the item-id to item mapping posted to the payment backend
func (s *Store) Details() map[string]Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	details := make(map[string]Item, len(s.items))
	for id, item := range s.items {
		details[id] = item
	}
	return details
}

// Count returns the total number of units in the cart
func (s *Store) Count() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Clear empties the cart. Clearing an already-empty cart is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	s.items = make(map[string]Item)
}
