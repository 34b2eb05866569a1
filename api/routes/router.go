package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mstanchev/pricewatch-backend/api/controllers"
	"github.com/mstanchev/pricewatch-backend/api/middleware"
	"github.com/mstanchev/pricewatch-backend/internal/auth"
	"github.com/mstanchev/pricewatch-backend/internal/dashboard"
	"github.com/mstanchev/pricewatch-backend/internal/moderation"
	"github.com/mstanchev/pricewatch-backend/internal/preferences"
	"github.com/mstanchev/pricewatch-backend/internal/prices"
	"github.com/mstanchev/pricewatch-backend/internal/products"
	"github.com/mstanchev/pricewatch-backend/internal/regions"
	"github.com/mstanchev/pricewatch-backend/internal/stores"
	"github.com/mstanchev/pricewatch-backend/pkg/auth/session"
	"github.com/mstanchev/pricewatch-backend/pkg/config"
	"github.com/mstanchev/pricewatch-backend/pkg/db"
	"github.com/mstanchev/pricewatch-backend/pkg/enums"
	"github.com/mstanchev/pricewatch-backend/pkg/logger"
	"github.com/mstanchev/pricewatch-backend/pkg/metrics"
	"github.com/mstanchev/pricewatch-backend/pkg/redis"
)

// Params bundles everything the HTTP surface needs.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry

	AuthService       auth.Service
	StoreService      stores.Service
	ProductService    products.Service
	PriceService      prices.Service
	RegionService     regions.Service
	PreferenceService preferences.Service
	ModerationService moderation.Service
	DashboardService  dashboard.Service
}

// New assembles the chi router with the full middleware chain and route tree.
func New(p Params) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(p.Logger))
	r.Use(middleware.Logging(p.Logger))
	r.Use(middleware.Recoverer(p.Logger))
	r.Use(middleware.CORS())

	var httpMetrics *metrics.HTTPMetrics
	if p.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(p.Registry)
	}
	r.Use(middleware.Metrics(httpMetrics))

	requireAuth := middleware.Auth(p.Config.JWT, p.Sessions, p.Logger)
	optionalAuth := middleware.OptionalAuth(p.Config.JWT, p.Sessions, p.Logger)
	requireAdmin := middleware.RequireRole(enums.SystemRoleAdmin.String(), p.Logger)

	noop := func(next http.Handler) http.Handler { return next }
	loginLimiter, registerLimiter := noop, noop
	if p.Redis != nil {
		loginLimiter = middleware.AuthRateLimit(
			middleware.NewAuthRateLimitPolicy("login",
				p.Config.AuthRateLimit.LoginWindow,
				p.Config.AuthRateLimit.LoginIPLimit,
				p.Config.AuthRateLimit.LoginEmailLimit),
			p.Redis, p.Logger)
		registerLimiter = middleware.AuthRateLimit(
			middleware.NewAuthRateLimitPolicy("register",
				p.Config.AuthRateLimit.RegisterWindow,
				p.Config.AuthRateLimit.RegisterIPLimit,
				p.Config.AuthRateLimit.RegisterEmailLimit),
			p.Redis, p.Logger)
	}

	r.Get("/health/live", controllers.Live())
	r.Get("/health/ready", controllers.Ready(p.DB, p.Redis, p.Logger))
	if p.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(registerLimiter).Post("/register", controllers.Register(p.AuthService, p.Logger))
			r.With(loginLimiter).Post("/login", controllers.Login(p.AuthService, p.Logger))
			r.Post("/refresh", controllers.Refresh(p.AuthService, p.Logger))
			r.Post("/logout", controllers.Logout(p.AuthService, p.Logger))
			r.With(requireAuth).Get("/me", controllers.Me(p.AuthService, p.Logger))
		})

		// Public reads; a valid token upgrades visibility for admins.
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/stores", controllers.ListStores(p.StoreService, p.Logger))
			r.Get("/products", controllers.ListProducts(p.ProductService, p.Logger))
			r.Get("/regions", controllers.ListRegions(p.RegionService, p.Logger))
			r.Get("/prices", controllers.ListPrices(p.PriceService, p.Logger))
			r.Get("/prices/compare", controllers.ComparePrices(p.PriceService, p.Logger))
			r.Get("/dashboard", controllers.DashboardStats(p.DashboardService, p.Logger))
		})

		// Authenticated mutations.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/stores", controllers.CreateStore(p.StoreService, p.Logger))
			r.Put("/stores/{storeId}", controllers.UpdateStore(p.StoreService, p.Logger))
			r.Delete("/stores/{storeId}", controllers.DeleteStore(p.StoreService, p.Logger))

			r.Post("/products", controllers.CreateProduct(p.ProductService, p.Logger))
			r.Put("/products/{productId}", controllers.UpdateProduct(p.ProductService, p.Logger))
			r.Delete("/products/{productId}", controllers.DeleteProduct(p.ProductService, p.Logger))

			r.Post("/prices", controllers.CreatePrice(p.PriceService, p.Logger))
			r.Delete("/prices/{priceId}", controllers.DeletePrice(p.PriceService, p.Logger))

			r.Get("/preferences", controllers.GetPreferences(p.PreferenceService, p.Logger))
			r.Put("/preferences", controllers.PutPreferences(p.PreferenceService, p.Logger))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(requireAdmin)
		r.Get("/moderation/pending", controllers.PendingModeration(p.ModerationService, p.Logger))
		r.Post("/moderation/{kind}/{id}", controllers.ReviewModeration(p.ModerationService, p.Logger))
		r.Post("/regions", controllers.CreateRegion(p.RegionService, p.Logger))
	})

	return r
}
