package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maisonluxe/storefront-backend/api/controllers"
	"github.com/maisonluxe/storefront-backend/api/middleware"
	authsvc "github.com/maisonluxe/storefront-backend/internal/auth"
	cartsvc "github.com/maisonluxe/storefront-backend/internal/cart"
	"github.com/maisonluxe/storefront-backend/internal/catalog"
	"github.com/maisonluxe/storefront-backend/pkg/auth/session"
	"github.com/maisonluxe/storefront-backend/pkg/config"
	"github.com/maisonluxe/storefront-backend/pkg/logger"
	"github.com/maisonluxe/storefront-backend/pkg/metrics"
	"github.com/maisonluxe/storefront-backend/pkg/redis"
)

// Deps bundles everything the router needs from cmd/api.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Redis       *redis.Client
	Sessions    *session.Manager
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger

	AuthService    authsvc.Service
	CartService    cartsvc.Service
	CatalogService catalog.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": d.DBPinger,
			"redis":    d.RedisPinger,
		}))
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	// Page routes carry the browser hardening policy and the session gate.
	// API routes are exempt: their callers are not browsers rendering HTML.
	r.Group(func(r chi.Router) {
		r.Use(
			middleware.SecureHeaders(cfg.Security),
			middleware.RouteGuard(cfg.RouteGuard, cfg.JWT, d.Sessions),
		)

		r.Get("/auth/verify", controllers.VerifyEmail(d.AuthService, cfg.Verification, logg))

		// Pages themselves are rendered by the storefront frontend. The
		// wildcard keeps the guard in front of every page path, so a
		// protected prefix redirects before anything else can answer.
		r.Handle("/*", http.NotFoundHandler())
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).
			Post("/login", controllers.Login(d.AuthService, cfg.JWT, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).
			Post("/register", controllers.Register(d.AuthService, logg))
		r.With(middleware.Auth(cfg.JWT, d.Sessions, logg)).
			Post("/logout", controllers.Logout(d.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit, d.Redis, d.Redis, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(d.CatalogService, logg))
			r.Get("/{slug}", controllers.GetProduct(d.CatalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", controllers.CreateCart(d.CartService, logg))

			r.Route("/{cartID}", func(r chi.Router) {
				r.Get("/", controllers.GetCart(d.CartService, logg))
				r.Put("/gift-bag", controllers.SetGiftBag(d.CartService, logg))

				r.Route("/lines", func(r chi.Router) {
					r.Post("/", controllers.AddCartLine(d.CartService, logg))
					r.Patch("/{productID}", controllers.UpdateCartLine(d.CartService, logg))
					r.Delete("/{productID}", controllers.RemoveCartLine(d.CartService, logg))
				})

				r.Route("/shipping", func(r chi.Router) {
					r.Put("/postal-code", controllers.SetShippingPostalCode(d.CartService, logg))
					r.Post("/calculate", controllers.CalculateShipping(d.CartService, logg))
					r.Post("/reset", controllers.ResetShipping(d.CartService, logg))
					r.Post("/toggle", controllers.ToggleShippingOpen(d.CartService, logg))
				})

				r.Route("/promo", func(r chi.Router) {
					r.Post("/", controllers.ApplyPromo(d.CartService, logg))
					r.Delete("/", controllers.RemovePromo(d.CartService, logg))
					r.Post("/toggle", controllers.TogglePromoOpen(d.CartService, logg))
				})
			})
		})

		// authed shoppers get their cart bound to the account
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
			r.Get("/ping", controllers.PrivatePing())
			r.Post("/me/cart", controllers.CreateCart(d.CartService, logg))
		})
	})

	return r
}
