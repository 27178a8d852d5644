package http

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/aussiebroadwan/intake/internal/intake/service"
	"github.com/aussiebroadwan/intake/internal/intake/store"
	"github.com/aussiebroadwan/intake/pkg/httpx"
	"github.com/aussiebroadwan/intake/pkg/slogx"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *Metrics

	store             store.Store
	AuthGate          *service.AuthGate
	SubmissionService *service.SubmissionService
	AdminService      *service.AdminService
}

// NewRouter builds the router and its global middleware chain. Services are
// assigned by the caller before ApplyRoutes.
func NewRouter(
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		metrics:      NewMetrics(),
		store:        st,
	}

	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		httpx.AnswerOptions,
	}
	if slices.Contains(corsOrigins, "*") {
		// Ahead of the CORS handler so bare OPTIONS answers carry it too.
		r.middlewares = slices.Insert(r.middlewares, 2, httpx.AllowAnyOrigin)
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerPublic()
	r.registerAdmin()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Client Intake API
//	@version		0.1.0
//	@description	Accepts client contact-form submissions and exposes admin-only listing, CSV export and statistics.
//
//	@BasePath		/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin token from /admin/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// handle registers h under "METHOD /path" with per-route metrics.
func (r *Router) handle(method, path string, h http.Handler, mws ...httpx.Middleware) {
	mws = append([]httpx.Middleware{r.metrics.Instrument(method, path)}, mws...)
	r.Mux.Handle(method+" "+path, httpx.Chain(h, mws...))
}

func (r *Router) registerPublic() {
	r.handle(http.MethodGet, "/{$}", RootHandler())

	clients := &ClientsHandler{SubmissionService: r.SubmissionService, metrics: r.metrics}
	r.handle(http.MethodPost, "/clients", clients)

	login := &LoginHandler{AuthGate: r.AuthGate}
	r.handle(http.MethodPost, "/admin/login", login)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AdminService: r.AdminService}
	requireAdmin := httpx.RequireBearer(r.AuthGate)

	r.handle(http.MethodGet, "/admin/clients", http.HandlerFunc(h.HandleList), requireAdmin)
	r.handle(http.MethodGet, "/admin/clients/export", http.HandlerFunc(h.HandleExport), requireAdmin)
	r.handle(http.MethodGet, "/admin/stats", http.HandlerFunc(h.HandleStats), requireAdmin)
}

func (r *Router) registerSystem() {
	r.handle(http.MethodGet, "/livez", LivezHandler(r.startTime, r.buildVersion))
	r.handle(http.MethodGet, "/readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
