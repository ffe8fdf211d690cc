package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/accounts/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterDeps bundles the dependencies NewRouter needs.
type RouterDeps struct {
	Users    UserServiceInterface
	Logins   LoginServiceInterface
	Logger   logging.Logger
	Registry *prometheus.Registry
}

// NewRouter builds the chi router with the middleware chain
// recovery -> logging -> metrics and all API routes.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	h := NewHandler(deps.Users, deps.Logins, deps.Logger)

	var collector *Collector
	if deps.Registry != nil {
		collector = NewCollector(deps.Registry)
	}

	r.Use(recoveryMiddleware(deps.Logger))
	r.Use(loggingMiddleware(deps.Logger))
	r.Use(metricsMiddleware(collector))

	r.Post("/api/login", h.Login)
	r.Post("/api/validate", h.Validate)

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetByID)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})

	r.Get("/ping", h.Ping)
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", MetricsHandler(deps.Registry))
	}

	return r
}
