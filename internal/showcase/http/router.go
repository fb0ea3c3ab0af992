package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/LauchlanT/brickshowcase/internal/showcase/service"
	"github.com/LauchlanT/brickshowcase/internal/showcase/store"
	"github.com/LauchlanT/brickshowcase/pkg/httpx"
	"github.com/LauchlanT/brickshowcase/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	AccountService *service.AccountService
	ContentService *service.ContentService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAPI()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			MOCShare API
//	@version		0.1.0
//	@description	Content sharing service for user-built models. Two dispatcher endpoints
//	@description	accept JSON envelopes selecting an operation; authentication rides on an
//	@description	opaque, HttpOnly session cookie.
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAPI() {
	caller := CallerMiddleware(r.AuthService)

	// POST /api/user - strict rate limit (carries credentials)
	userHandler := &UserHandler{
		Auth:       r.AuthService,
		Accounts:   r.AccountService,
		SessionTTL: r.AuthService.SessionTTL,
	}
	r.Mux.Handle("POST /api/user",
		httpx.Chain(userHandler,
			caller,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /api/moc - moderate rate limit (authenticated mutations)
	mocHandler := &MocHandler{Content: r.ContentService}
	r.Mux.Handle("POST /api/moc",
		httpx.Chain(mocHandler,
			caller,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Any other path under /api/ answers with the envelope, not a bare 404
	r.Mux.Handle("/api/", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, "Invalid API requested")
	}))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
