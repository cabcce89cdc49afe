package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/stripe/ecommerce/internal/cart"
)

// StoreHandler renders the storefront page with the product catalog and the
// current cart count
type StoreHandler struct {
	template *template.Template
	catalog  []cart.Item
	cart     *cart.Store
}

// StoreData represents the data passed to the store template
type StoreData struct {
	Products  []cart.Item
	CartCount int64
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(templatePath string, catalog []cart.Item, cartStore *cart.Store) (*StoreHandler, error) {
	funcMap := template.FuncMap{
		"price": func(amount int64) string {
			return fmt.Sprintf("$%.2f", float64(amount)/100.0)
		},
	}

	tmpl, err := template.New("store.html").Funcs(funcMap).ParseFiles(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &StoreHandler{
		template: tmpl,
		catalog:  catalog,
		cart:     cartStore,
	}, nil
}

// ServeHTTP handles the storefront page request
func (h *StoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := StoreData{
		Products:  h.catalog,
		CartCount: h.cart.Count(),
	}

	if err := h.template.Execute(w, data); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// AddToCartHandler puts a catalog item in the cart
type AddToCartHandler struct {
	catalog map[string]cart.Item
	cart    *cart.Store
}

// NewAddToCartHandler creates a new add-to-cart handler
func NewAddToCartHandler(catalog []cart.Item, cartStore *cart.Store) *AddToCartHandler {
	byID := make(map[string]cart.Item, len(catalog))
	for _, item := range catalog {
		byID[item.ID] = item
	}

	return &AddToCartHandler{
		catalog: byID,
		cart:    cartStore,
	}
}

// ServeHTTP handles the add-to-cart form post
func (h *AddToCartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.FormValue("id")
	item, ok := h.catalog[id]
	if !ok {
		http.Error(w, "Unknown product", http.StatusNotFound)
		return
	}

	h.cart.Add(item)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
