package handlers

import (
	"fmt"
	"html/template"
	"net/http"
)

// CartClearer is the one cart operation the success page needs
type CartClearer interface {
	Clear()
}

// SuccessHandler renders the post-purchase page. Arriving here clears the
// cart; clearing is assumed infallible and has no error path.
type SuccessHandler struct {
	template *template.Template
	cart     CartClearer
}

// NewSuccessHandler creates a new success handler
func NewSuccessHandler(templatePath string, cart CartClearer) (*SuccessHandler, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &SuccessHandler{
		template: tmpl,
		cart:     cart,
	}, nil
}

// ServeHTTP handles the success page request
func (h *SuccessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.cart.Clear()

	if err := h.template.Execute(w, nil); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
