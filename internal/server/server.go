package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/benjaminneilan16/NeilanX/internal/server/handlers"
	"github.com/benjaminneilan16/NeilanX/internal/server/response"
	"github.com/benjaminneilan16/NeilanX/internal/store"
	"github.com/benjaminneilan16/NeilanX/pkg/analysis"
	"github.com/benjaminneilan16/NeilanX/pkg/logger"
	"github.com/benjaminneilan16/NeilanX/pkg/notify"
	"github.com/benjaminneilan16/NeilanX/pkg/report"
)

// Version is the reported service version.
const Version = "1.0.0"

// Server represents the HTTP server
type Server struct {
	config     *Config
	logger     *logger.Logger
	httpServer *http.Server
	router     *Router
	cleanup    *CleanupJob
}

// New creates a new HTTP server
func New(config *Config, service *analysis.Service, log *logger.Logger) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	if err := os.MkdirAll(config.ReportsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create reports directory: %w", err)
	}

	uploads := store.NewStore()
	router := NewRouter(config, uploads, service, log)

	cleanup, err := NewCleanupJob(config, uploads, log)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule cleanup job: %w", err)
	}

	server := &Server{
		config:  config,
		logger:  log,
		router:  router,
		cleanup: cleanup,
	}

	server.httpServer = &http.Server{
		Addr:         config.GetAddress(),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return server, nil
}

// Start starts the HTTP server and blocks until shutdown
func (s *Server) Start(ctx context.Context) error {
	s.cleanup.Start()

	go func() {
		s.logger.WithField("address", s.config.GetAddress()).Info("Starting server")

		var err error
		if s.config.TLSEnabled {
			err = s.httpServer.ListenAndServeTLS(s.config.TLSCertFile, s.config.TLSKeyFile)
		} else {
			err = s.httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			s.logger.WithField("error", err.Error()).Error("Server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		s.logger.Info("Shutting down server")
	case <-ctx.Done():
		s.logger.Info("Context cancelled, shutting down server")
	}

	return s.Shutdown()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	s.cleanup.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.WithField("error", err.Error()).Error("Server shutdown error")
		return err
	}

	s.logger.Info("Server shutdown complete")
	return nil
}

// Router represents the HTTP router
type Router struct {
	*http.ServeMux
	config     *Config
	logger     *logger.Logger
	middleware *MiddlewareStack
}

// NewRouter creates a new HTTP router
func NewRouter(config *Config, uploads *store.Store, service *analysis.Service, log *logger.Logger) *Router {
	router := &Router{
		ServeMux:   http.NewServeMux(),
		config:     config,
		logger:     log,
		middleware: NewMiddlewareStack(),
	}

	router.setupMiddleware()
	router.setupRoutes(uploads, service)

	return router
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := r.middleware.Apply(r.ServeMux)
	handler.ServeHTTP(w, req)
}

// setupMiddleware configures the middleware stack
func (r *Router) setupMiddleware() {
	r.middleware.Use(RecoveryMiddleware(r.logger))
	r.middleware.Use(SecurityHeadersMiddleware())
	r.middleware.Use(RequestIDMiddleware(r.config.RequestIDHeader))
	if r.config.LogRequests {
		r.middleware.Use(logger.RequestLoggingMiddleware(r.logger, &logger.HTTPLogConfig{
			SkipPaths: []string{r.config.HealthCheckPath},
		}))
	}
	r.middleware.Use(CORSMiddleware(r.config))
	r.middleware.Use(RateLimitMiddleware(r.config))
	r.middleware.Use(MaxRequestSizeMiddleware(r.config.MaxRequestSize))
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes(uploads *store.Store, service *analysis.Service) {
	r.HandleFunc(r.config.HealthCheckPath, r.healthCheckHandler)

	prefix := r.config.APIPrefix

	mailer := notify.NewMailer(r.config.SMTP)
	generator := report.NewGenerator()

	analyzeHandler := handlers.NewAnalyzeHandler(service, r.logger)
	uploadHandler := handlers.NewUploadHandler(uploads, service, generator, mailer, r.logger, r.config.ReportsDir)

	r.HandleFunc(prefix+"/reviews/analyze", analyzeHandler.Analyze)
	r.HandleFunc(prefix+"/uploads", uploadHandler.Create)
	r.HandleFunc(prefix+"/uploads/", func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, prefix+"/uploads/")
		parts := strings.Split(strings.Trim(rest, "/"), "/")

		id, err := uuid.Parse(parts[0])
		if err != nil {
			response.WriteBadRequest(w, requestIDFrom(req), "Invalid upload ID", parts[0])
			return
		}

		switch {
		case len(parts) == 1:
			uploadHandler.Get(w, req, id)
		case len(parts) == 2 && parts[1] == "report":
			uploadHandler.Report(w, req, id)
		default:
			response.WriteNotFound(w, requestIDFrom(req), "Unknown upload resource")
		}
	})

	r.HandleFunc(prefix+"/", r.apiRootHandler)
}

// healthCheckHandler handles health check requests
func (r *Router) healthCheckHandler(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := make(map[string]string)
	status := "healthy"

	// Reports directory must stay writable for uploads to complete.
	if err := checkWritable(r.config.ReportsDir); err != nil {
		checks["reports_dir"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		checks["reports_dir"] = "healthy"
	}
	checks["server"] = "healthy"

	response.WriteHealthCheck(w, status, Version, checks)
}

// apiRootHandler handles API root requests
func (r *Router) apiRootHandler(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	info := map[string]interface{}{
		"name":        "NeilanX API",
		"version":     Version,
		"description": "AI-driven review sentiment analysis for Swedish e-commerce",
		"status":      "active",
		"endpoints": map[string]string{
			"health":  r.config.HealthCheckPath,
			"analyze": r.config.APIPrefix + "/reviews/analyze",
			"uploads": r.config.APIPrefix + "/uploads",
		},
	}

	response.WriteSuccess(w, requestIDFrom(req), info)
}

func requestIDFrom(req *http.Request) string {
	return getRequestID(req.Context())
}

func checkWritable(dir string) error {
	probe, err := os.CreateTemp(dir, ".healthcheck-*")
	if err != nil {
		return err
	}
	probe.Close()
	return os.Remove(probe.Name())
}
