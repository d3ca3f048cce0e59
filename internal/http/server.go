package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"flowcash/internal/auth"
	"flowcash/internal/backend"
	"flowcash/internal/cache"
	"flowcash/internal/config"
	"flowcash/internal/core"
	applog "flowcash/internal/log"
	"flowcash/internal/services"
	appweb "flowcash/web"
)

type Server struct {
	http.Server
	templates *template.Template
	logger    *applog.Logger

	backend      backend.Backend
	transactions *services.TransactionService
	auth         *auth.Service
	formatter    *core.Formatter

	profileCache *cache.ProfileCache
	cacheManager *cache.Manager

	rateLimiter *rateLimiter
	metrics     *securityMetrics

	unsubscribeAuth func()
	shutdownOnce    sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(cfg *config.Config, be backend.Backend, txService *services.TransactionService, authService *auth.Service, formatter *core.Formatter) *Server {
	mux := http.NewServeMux()

	logCfg := applog.DefaultConfig()
	logCfg.Component = applog.ComponentHTTP
	logger := applog.New(logCfg)

	s := &Server{
		Server: http.Server{
			Addr:    ":" + cfg.Port,
			Handler: applog.Middleware(logger)(mux),
		},
		logger:       logger,
		backend:      be,
		transactions: txService,
		auth:         authService,
		formatter:    formatter,
		profileCache: cache.NewProfileCache(cfg.ProfileCacheSize, cfg.ProfileCacheTTL),
		cacheManager: cache.NewManager(),
		rateLimiter:  newRateLimiter(60, time.Minute),
		metrics:      &securityMetrics{},
	}

	s.cacheManager.Register(s.profileCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Signed-out sessions must never serve a cached profile to the next
	// account on the same client.
	s.unsubscribeAuth = authService.Subscribe(func(state auth.State) {
		if !state.SignedIn {
			s.profileCache.Invalidate(state.UserID)
		}
	})

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", applog.FieldError, err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /{$}", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("GET /ui/summary", s.withSecurityHeaders(s.withAuth(s.handleSummaryPartial)))

	mux.HandleFunc("POST /api/auth/register", s.withSecurityHeaders(s.handleRegister))
	mux.HandleFunc("POST /api/auth/signin", s.withSecurityHeaders(s.handleSignIn))
	mux.HandleFunc("POST /api/auth/signout", s.withSecurityHeaders(s.withAuth(s.handleSignOut)))
	mux.HandleFunc("POST /api/auth/switch", s.withSecurityHeaders(s.withAuth(s.handleSwitchAccount)))

	mux.HandleFunc("GET /api/transactions", s.withSecurityHeaders(s.withAuth(s.handleListTransactions)))
	mux.HandleFunc("POST /api/transactions", s.withSecurityHeaders(s.withAuth(s.handleCreateTransaction)))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withSecurityHeaders(s.withAuth(s.handleDeleteTransaction)))

	mux.HandleFunc("GET /api/profile", s.withSecurityHeaders(s.withAuth(s.handleGetProfile)))
	mux.HandleFunc("PUT /api/profile", s.withSecurityHeaders(s.withAuth(s.handlePutProfile)))

	mux.HandleFunc("GET /dashboard/chart.png", s.withSecurityHeaders(s.withAuth(s.handleChart)))

	return s
}

// Shutdown stops the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.unsubscribeAuth != nil {
			s.unsubscribeAuth()
		}
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
