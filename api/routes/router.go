package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopfront/shopfront-backend/api/controllers"
	"github.com/shopfront/shopfront-backend/api/middleware"
	authsvc "github.com/shopfront/shopfront-backend/internal/auth"
	cartsvc "github.com/shopfront/shopfront-backend/internal/cart"
	catalogsvc "github.com/shopfront/shopfront-backend/internal/catalog"
	"github.com/shopfront/shopfront-backend/pkg/auth/session"
	"github.com/shopfront/shopfront-backend/pkg/config"
	"github.com/shopfront/shopfront-backend/pkg/db"
	"github.com/shopfront/shopfront-backend/pkg/logger"
	"github.com/shopfront/shopfront-backend/pkg/metrics"
	"github.com/shopfront/shopfront-backend/pkg/redis"
)

// RouterParams bundles everything the router needs.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             db.Pinger
	Redis          redis.Pinger
	SessionChecker session.AccessSessionChecker
	AuthService    authsvc.Service
	CatalogService catalogsvc.Service
	CartService    cartsvc.Service
	Metrics        *metrics.HTTPMetrics
	Registry       *prometheus.Registry
}

// NewRouter wires the HTTP surface: health, metrics, auth, catalog, cart.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.Metrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, p.Redis, logg))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", controllers.Signup(p.AuthService, logg))
			r.Post("/login", controllers.Login(p.AuthService, logg))
			r.Post("/refresh", controllers.Refresh(p.AuthService, logg))
			r.With(middleware.Auth(cfg.JWT, p.SessionChecker, logg)).
				Post("/logout", controllers.Logout(p.AuthService, logg))
		})

		r.Get("/items", controllers.ListItems(p.CatalogService, logg))
		r.Get("/items/{id}", controllers.GetItem(p.CatalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))

			r.Get("/me", controllers.Me(p.AuthService, logg))

			r.Post("/items", controllers.CreateItem(p.CatalogService, logg))
			r.Put("/items/{id}", controllers.UpdateItem(p.CatalogService, logg))
			r.Delete("/items/{id}", controllers.DeleteItem(p.CatalogService, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.FetchCart(p.CartService, logg))
				r.Post("/add", controllers.AddToCart(p.CartService, logg))
				r.Post("/remove", controllers.RemoveFromCart(p.CartService, logg))
				r.Delete("/clear", controllers.ClearCart(p.CartService, logg))
			})
		})
	})

	return r
}
