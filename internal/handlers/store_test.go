package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stripe/ecommerce/internal/cart"
)

func testCatalog() []cart.Item {
	return []cart.Item{
		{ID: "sunnies", Name: "Sunglasses", Price: 500, Currency: "usd", Quantity: 1},
		{ID: "logo-tee", Name: "Logo Tee", Price: 1200, Currency: "usd", Quantity: 1},
	}
}

func TestStoreHandler_ServeHTTP(t *testing.T) {
	templatePath := writeTemplate(t, "store.html",
		`<p>Cart: {{.CartCount}}</p>{{range .Products}}<span>{{.Name}} {{price .Price}}</span>{{end}}`)

	cartStore := cart.NewStore()
	cartStore.Add(cart.Item{ID: "sunnies", Price: 500})

	handler, err := NewStoreHandler(templatePath, testCatalog(), cartStore)
	if err != nil {
		t.Fatalf("NewStoreHandler() error = %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Cart: 1", "Sunglasses", "$5.00", "Logo Tee", "$12.00"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %q in page, got %q", want, body)
		}
	}
}

func TestAddToCartHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		itemID         string
		expectedStatus int
		expectedCount  int64
	}{
		{
			name:           "adds known product",
			method:         http.MethodPost,
			itemID:         "sunnies",
			expectedStatus: http.StatusSeeOther,
			expectedCount:  1,
		},
		{
			name:           "unknown product",
			method:         http.MethodPost,
			itemID:         "no-such-item",
			expectedStatus: http.StatusNotFound,
			expectedCount:  0,
		},
		{
			name:           "method not allowed",
			method:         http.MethodGet,
			itemID:         "sunnies",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedCount:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cartStore := cart.NewStore()
			handler := NewAddToCartHandler(testCatalog(), cartStore)

			form := url.Values{"id": {tt.itemID}}
			req := httptest.NewRequest(tt.method, "/cart/items", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if cartStore.Count() != tt.expectedCount {
				t.Errorf("Expected cart count %d, got %d", tt.expectedCount, cartStore.Count())
			}
			if tt.expectedStatus == http.StatusSeeOther {
				if loc := rec.Header().Get("Location"); loc != "/" {
					t.Errorf("Expected redirect to /, got %q", loc)
				}
			}
		})
	}
}
