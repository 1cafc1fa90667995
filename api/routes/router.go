package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Leadfive-LLC/estimate-system/api/controllers"
	"github.com/Leadfive-LLC/estimate-system/api/middleware"
	"github.com/Leadfive-LLC/estimate-system/internal/auth"
	"github.com/Leadfive-LLC/estimate-system/internal/clients"
	"github.com/Leadfive-LLC/estimate-system/internal/estimates"
	"github.com/Leadfive-LLC/estimate-system/internal/items"
	"github.com/Leadfive-LLC/estimate-system/pkg/auth/session"
	"github.com/Leadfive-LLC/estimate-system/pkg/config"
	"github.com/Leadfive-LLC/estimate-system/pkg/db"
	"github.com/Leadfive-LLC/estimate-system/pkg/logger"
	"github.com/Leadfive-LLC/estimate-system/pkg/metrics"
	"github.com/Leadfive-LLC/estimate-system/pkg/redis"
)

// Deps carries the wiring a router needs. Optional members (redis, metrics)
// may be nil; the affected middleware then degrades to a pass-through.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Registry *prometheus.Registry
	HTTP     *metrics.HTTPMetrics

	AuthService     auth.Service
	ClientService   clients.Service
	ItemService     items.Service
	EstimateService estimates.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTP),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	var limiter func(http.Handler) http.Handler
	if deps.Redis != nil {
		limiter = middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)
	} else {
		limiter = middleware.AuthRateLimit(loginPolicy, nil, logg)
	}

	idempotent := middleware.Idempotency(idempotencyStore(deps.Redis), logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, redisPinger(deps.Redis), logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(limiter).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(limiter, idempotent).Post("/register", controllers.AuthRegister(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Get("/me", controllers.AuthMe(deps.AuthService, logg))
			r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", controllers.ClientList(deps.ClientService, logg))
			r.With(idempotent).Post("/", controllers.ClientCreate(deps.ClientService, logg))
			r.Get("/{clientId}", controllers.ClientGet(deps.ClientService, logg))
			r.Put("/{clientId}", controllers.ClientUpdate(deps.ClientService, logg))
			r.Delete("/{clientId}", controllers.ClientDelete(deps.ClientService, logg))
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", controllers.ItemList(deps.ItemService, logg))
			r.Get("/categories", controllers.ItemCategories(deps.ItemService, logg))
			r.With(idempotent).Post("/", controllers.ItemCreate(deps.ItemService, logg))
			r.Get("/{itemId}", controllers.ItemGet(deps.ItemService, logg))
			r.Get("/{itemId}/derived-price", controllers.ItemDerivedPrice(deps.ItemService, logg))
			r.Put("/{itemId}", controllers.ItemUpdate(deps.ItemService, logg))
			r.Delete("/{itemId}", controllers.ItemDelete(deps.ItemService, logg))
		})

		r.Route("/estimates", func(r chi.Router) {
			r.Get("/", controllers.EstimateList(deps.EstimateService, logg))
			r.With(idempotent).Post("/", controllers.EstimateCreate(deps.EstimateService, logg))
			r.Get("/{estimateId}", controllers.EstimateGet(deps.EstimateService, logg))
			r.Put("/{estimateId}", controllers.EstimateUpdate(deps.EstimateService, logg))
			r.Delete("/{estimateId}", controllers.EstimateDelete(deps.EstimateService, logg))
		})
	})

	return r
}

// idempotencyStore keeps the middleware off a typed-nil interface when the
// redis client is absent.
func idempotencyStore(client *redis.Client) redis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}

func redisPinger(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}
