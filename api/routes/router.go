package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rmedina/stockroom-backend/api/controllers"
	"github.com/rmedina/stockroom-backend/api/middleware"
	"github.com/rmedina/stockroom-backend/internal/cart"
	"github.com/rmedina/stockroom-backend/internal/catalog"
	checkoutsvc "github.com/rmedina/stockroom-backend/internal/checkout"
	"github.com/rmedina/stockroom-backend/internal/dashboard"
	"github.com/rmedina/stockroom-backend/internal/orders"
	productsvc "github.com/rmedina/stockroom-backend/internal/products"
	"github.com/rmedina/stockroom-backend/internal/session"
	"github.com/rmedina/stockroom-backend/pkg/config"
	"github.com/rmedina/stockroom-backend/pkg/delay"
	"github.com/rmedina/stockroom-backend/pkg/kvstate"
	"github.com/rmedina/stockroom-backend/pkg/logger"
	"github.com/rmedina/stockroom-backend/pkg/metrics"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Slots       kvstate.Store
	Catalog     *catalog.Store
	Sessions    *session.Store
	Cart        *cart.Store
	Orders      *orders.Book
	Checkout    *checkoutsvc.Service
	Products    *productsvc.Service
	Dashboard   *dashboard.Service
	Sleeper     delay.Sleeper
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Slots))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.Sessions, deps.Sleeper, cfg.JWT, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Sessions, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductsList(deps.Catalog))
		r.Get("/products/categories", controllers.ProductCategories(deps.Catalog))
		r.Get("/products/{productId}", controllers.ProductGet(deps.Catalog, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(deps.Cart))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Put("/items/{productId}", controllers.CartUpdateItem(deps.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
			})

			r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrdersList(deps.Orders, logg))
				r.Get("/{orderId}", controllers.OrderGet(deps.Orders, logg))
				r.With(middleware.RequireAdmin(logg)).Patch("/{orderId}/status", controllers.OrderUpdateStatus(deps.Orders, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(logg))
				r.Post("/products", controllers.ProductCreate(deps.Products, logg))
				r.Put("/products/{productId}", controllers.ProductUpdate(deps.Products, logg))
				r.Get("/dashboard", controllers.Dashboard(deps.Dashboard))
			})
		})
	})

	return r
}
