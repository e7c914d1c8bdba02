package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/rmedina/stockroom-backend/internal/cart"
	"github.com/rmedina/stockroom-backend/internal/catalog"
	checkoutsvc "github.com/rmedina/stockroom-backend/internal/checkout"
	"github.com/rmedina/stockroom-backend/internal/dashboard"
	"github.com/rmedina/stockroom-backend/internal/orders"
	productsvc "github.com/rmedina/stockroom-backend/internal/products"
	"github.com/rmedina/stockroom-backend/internal/session"
	"github.com/rmedina/stockroom-backend/internal/users"
	"github.com/rmedina/stockroom-backend/pkg/config"
	"github.com/rmedina/stockroom-backend/pkg/delay"
	"github.com/rmedina/stockroom-backend/pkg/enums"
	"github.com/rmedina/stockroom-backend/pkg/kvstate"
	"github.com/rmedina/stockroom-backend/pkg/metrics"
	"github.com/rmedina/stockroom-backend/pkg/models"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: config.AppEnvDev, Port: "0"},
		JWT: config.JWTConfig{Secret: "test-secret", Issuer: "stockroom", ExpirationMinutes: 5},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *session.Store, *orders.Book) {
	t.Helper()
	ctx := context.Background()
	cfg := testConfig()

	directory := users.NewDirectory([]models.User{
		{ID: "u1", Username: "admin", Password: "admin123", Role: enums.RoleAdmin},
		{ID: "u2", Username: "customer", Password: "customer123", Role: enums.RoleUser},
	})
	store := catalog.NewStore([]models.Product{
		{ID: "p1", Name: "Headphones", Description: "Over-ear", Category: "Electronics", Price: decimal.NewFromFloat(129.99), Quantity: 45},
		{ID: "p2", Name: "Keyboard", Description: "Mechanical", Category: "Electronics", Price: decimal.NewFromFloat(89.50), Quantity: 8},
	})
	slots := kvstate.NewMemory()

	sessions, err := session.NewStore(ctx, directory, slots, nil)
	if err != nil {
		t.Fatalf("building session store: %v", err)
	}
	crt, err := cart.NewStore(ctx, store, slots, nil)
	if err != nil {
		t.Fatalf("building cart store: %v", err)
	}
	book := orders.NewBook([]models.Order{
		{ID: "o1001", UserID: "u2", Status: enums.OrderStatusPending, TotalAmount: decimal.NewFromFloat(89.5)},
		{ID: "o1002", UserID: "u3", Status: enums.OrderStatusShipped, TotalAmount: decimal.NewFromFloat(75)},
	}, nil)

	registry := prometheus.NewRegistry()
	router := NewRouter(Deps{
		Config:      cfg,
		Slots:       slots,
		Catalog:     store,
		Sessions:    sessions,
		Cart:        crt,
		Orders:      book,
		Checkout:    checkoutsvc.NewService(sessions, crt, book, delay.None{}, nil),
		Products:    productsvc.NewService(store, nil, nil),
		Dashboard:   dashboard.NewService(store, book),
		Sleeper:     delay.None{},
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		Gatherer:    registry,
	})
	return router, sessions, book
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router http.Handler, username, password string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
		fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))
	if w.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	if body.Data.Token == "" {
		t.Fatalf("expected a token in the login response")
	}
	return body.Data.Token
}

func TestHealthEndpoints(t *testing.T) {
	router, _, _ := newTestRouter(t)

	if w := doJSON(t, router, http.MethodGet, "/health/live", "", ""); w.Code != http.StatusOK {
		t.Fatalf("live returned %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/health/ready", "", ""); w.Code != http.StatusOK {
		t.Fatalf("ready returned %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/metrics", "", ""); w.Code != http.StatusOK {
		t.Fatalf("metrics returned %d", w.Code)
	}
}

func TestPublicCatalogRoutes(t *testing.T) {
	router, _, _ := newTestRouter(t)

	if w := doJSON(t, router, http.MethodGet, "/api/v1/products", "", ""); w.Code != http.StatusOK {
		t.Fatalf("products returned %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/api/v1/products/categories", "", ""); w.Code != http.StatusOK {
		t.Fatalf("categories returned %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/api/v1/products/p1", "", ""); w.Code != http.StatusOK {
		t.Fatalf("product get returned %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/api/v1/products/p99", "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing product returned %d", w.Code)
	}
}

func TestLoginFailure(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "",
		`{"username":"admin","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/checkout"},
		{http.MethodGet, "/api/v1/orders"},
		{http.MethodGet, "/api/v1/dashboard"},
	} {
		if w := doJSON(t, router, route.method, route.path, "", ""); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s returned %d without a token", route.method, route.path, w.Code)
		}
	}
}

func TestTokenAloneIsNotEnoughAfterLogout(t *testing.T) {
	router, _, _ := newTestRouter(t)
	token := login(t, router, "customer", "customer123")

	if w := doJSON(t, router, http.MethodGet, "/api/v1/cart", token, ""); w.Code != http.StatusOK {
		t.Fatalf("cart returned %d with a live session", w.Code)
	}

	if w := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", "", ""); w.Code != http.StatusOK {
		t.Fatalf("logout returned %d", w.Code)
	}

	// The session slot is the source of truth; a stale token is rejected.
	if w := doJSON(t, router, http.MethodGet, "/api/v1/cart", token, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestCartCheckoutFlow(t *testing.T) {
	router, _, book := newTestRouter(t)
	token := login(t, router, "customer", "customer123")

	if w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", token,
		`{"productId":"p1","quantity":2}`); w.Code != http.StatusOK {
		t.Fatalf("add item returned %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, router, http.MethodPut, "/api/v1/cart/items/p1", token,
		`{"quantity":3}`); w.Code != http.StatusOK {
		t.Fatalf("update item returned %d", w.Code)
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/checkout", token,
		`{"shippingAddress":"14 Birchwood Lane"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout returned %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Data models.Order `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding checkout response: %v", err)
	}
	if body.Data.UserID != "u2" {
		t.Fatalf("expected order owned by u2, got %q", body.Data.UserID)
	}
	if _, ok := book.Get(body.Data.ID); !ok {
		t.Fatalf("committed order must land in the book")
	}

	// Cart is empty after checkout.
	w = doJSON(t, router, http.MethodGet, "/api/v1/cart", token, "")
	var cartBody struct {
		Data struct {
			TotalItems int `json:"totalItems"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&cartBody); err != nil {
		t.Fatalf("decoding cart response: %v", err)
	}
	if cartBody.Data.TotalItems != 0 {
		t.Fatalf("expected empty cart after checkout, got %d items", cartBody.Data.TotalItems)
	}
}

func TestOrderScoping(t *testing.T) {
	router, _, _ := newTestRouter(t)
	token := login(t, router, "customer", "customer123")

	w := doJSON(t, router, http.MethodGet, "/api/v1/orders", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("orders returned %d", w.Code)
	}
	var body struct {
		Data []models.Order `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decoding orders response: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].ID != "o1001" {
		t.Fatalf("customer must only see their own orders, got %+v", body.Data)
	}

	// Another user's order reads as not found.
	if w := doJSON(t, router, http.MethodGet, "/api/v1/orders/o1002", token, ""); w.Code != http.StatusNotFound {
		t.Fatalf("foreign order returned %d", w.Code)
	}
}

func TestAdminOnlyRoutes(t *testing.T) {
	router, _, _ := newTestRouter(t)

	userToken := login(t, router, "customer", "customer123")
	for _, route := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/v1/dashboard", ""},
		{http.MethodPatch, "/api/v1/orders/o1001/status", `{"status":"shipped"}`},
		{http.MethodPost, "/api/v1/products", `{"name":"x","description":"y","category":"z","price":1,"quantity":1}`},
	} {
		if w := doJSON(t, router, route.method, route.path, userToken, route.body); w.Code != http.StatusForbidden {
			t.Fatalf("%s %s returned %d for non-admin", route.method, route.path, w.Code)
		}
	}

	adminToken := login(t, router, "admin", "admin123")
	if w := doJSON(t, router, http.MethodGet, "/api/v1/dashboard", adminToken, ""); w.Code != http.StatusOK {
		t.Fatalf("dashboard returned %d for admin", w.Code)
	}
	if w := doJSON(t, router, http.MethodPatch, "/api/v1/orders/o1001/status", adminToken,
		`{"status":"shipped"}`); w.Code != http.StatusOK {
		t.Fatalf("status patch returned %d for admin", w.Code)
	}
	if w := doJSON(t, router, http.MethodPatch, "/api/v1/orders/o9999/status", adminToken,
		`{"status":"shipped"}`); w.Code != http.StatusNotFound {
		t.Fatalf("unknown order patch returned %d", w.Code)
	}
}
