package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vobe/voicedesk/infrastructure/http/middleware"
	"github.com/vobe/voicedesk/infrastructure/service/logger"
)

// Server wraps the mux router and the underlying http.Server.
type Server struct {
	server *http.Server
	logger logger.Logger
}

type ServerConfig struct {
	Host                 string
	Port                 string
	ReadTimeout          time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
}

type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// NewServer builds the router, mounts every handler under /api/v1 and wires
// the shared middleware chain.
func NewServer(config ServerConfig, log logger.Logger, handlers ...RouteRegistrar) *Server {
	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()
	for _, h := range handlers {
		h.RegisterRoutes(api)
	}

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods(http.MethodGet)

	var h http.Handler = router
	h = loggingMiddleware(h, log)
	h = recoveryMiddleware(h, log)
	if config.CORSEnabled {
		h = middleware.CORSMiddleware(h, config.CORSAllowedOrigins, config.CORSAllowCredentials)
	}
	h = middleware.CorrelationIDMiddleware(h)

	if config.ReadTimeout == 0 {
		config.ReadTimeout = 15 * time.Second
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = 15 * time.Second
	}
	if config.IdleTimeout == 0 {
		config.IdleTimeout = 60 * time.Second
	}

	return &Server{
		server: &http.Server{
			Addr:         config.Host + ":" + config.Port,
			Handler:      h,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		logger: log,
	}
}

func (s *Server) Start() error {
	s.logger.Info(context.Background(), "starting HTTP server", map[string]interface{}{
		"addr": s.server.Addr,
	})
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}

func loggingMiddleware(next http.Handler, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info(r.Context(), "request handled", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"remote_addr": r.RemoteAddr,
			"duration":    time.Since(start).String(),
		})
	})
}

func recoveryMiddleware(next http.Handler, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error(r.Context(), "panic recovered", nil, map[string]interface{}{
					"panic": rec,
					"path":  r.URL.Path,
				})
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
