package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akozyrev/userpower-backend/api/controllers"
	"github.com/akozyrev/userpower-backend/api/middleware"
	"github.com/akozyrev/userpower-backend/internal/auth"
	"github.com/akozyrev/userpower-backend/internal/users"
	"github.com/akozyrev/userpower-backend/pkg/config"
	"github.com/akozyrev/userpower-backend/pkg/logger"
	"github.com/akozyrev/userpower-backend/pkg/metrics"
)

// RouterParams bundles everything the HTTP surface depends on. Registry and
// DB are optional; a nil registry disables the metrics endpoint and a nil DB
// reduces the readiness probe to a liveness check.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              controllers.Pinger
	Registry        *prometheus.Registry
	AuthService     auth.Service
	RegisterService auth.RegisterService
	UserService     users.Service
}

// NewRouter assembles the HTTP routes. User reads and registration are
// public; every mutation sits behind the bearer-token middleware.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	httpMetrics := (*metrics.HTTPMetrics)(nil)
	if p.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(p.Registry)
	}

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.DB, p.Logger))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/ping", controllers.PublicPing())

	r.Route("/login", func(r chi.Router) {
		r.Post("/token", controllers.LoginToken(p.AuthService, p.Logger))
	})

	r.Route("/user", func(r chi.Router) {
		r.Post("/", controllers.CreateUser(p.RegisterService, p.Logger))
		r.Get("/", controllers.GetUser(p.UserService, p.Logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(p.AuthService, p.Logger))
			r.Get("/ping", controllers.PrivatePing())
			r.Delete("/", controllers.DeleteUser(p.UserService, p.Logger))
			r.Patch("/", controllers.UpdateUser(p.UserService, p.Logger))
			r.Patch("/admin_privilege", controllers.GrantAdminPrivilege(p.UserService, p.Logger))
			r.Delete("/admin_privilege", controllers.RevokeAdminPrivilege(p.UserService, p.Logger))
		})
	})

	return r
}
