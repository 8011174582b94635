package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Clark-Hu/hostel-service/internal/approval"
	"github.com/Clark-Hu/hostel-service/internal/catalog"
	"github.com/Clark-Hu/hostel-service/internal/config"
	"github.com/Clark-Hu/hostel-service/internal/domain"
	"github.com/Clark-Hu/hostel-service/internal/ranking"
	"github.com/Clark-Hu/hostel-service/internal/rating"
	"github.com/Clark-Hu/hostel-service/internal/reply"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services bundles the collaborators the handlers call into.
type Services struct {
	Ratings        *rating.Service
	Ranking        *ranking.Engine
	Hostels        *catalog.Hostels
	Categories     *catalog.Categories
	Gallery        *catalog.Gallery
	Replies        *reply.Service
	HostelReview   *approval.Workflow[domain.Hostel]
	CategoryReview *approval.Workflow[domain.Category]
}

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg     config.Config
	health  HealthChecker
	svc     Services
	logger  *zap.Logger
	router  chi.Router
	httpSrv *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, health HealthChecker, svc Services, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")

	r := chi.NewRouter()
	s := &Server{
		cfg:    cfg,
		health: health,
		svc:    svc,
		logger: logger,
		router: r,
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(recordMetrics)
	r.Use(s.recoverPanic)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	s.registerRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api/hostels/{hostelId}", func(r chi.Router) {
		r.Post("/rate", s.handleSubmitRating)
		r.Get("/ratings", s.handleListRatings)
		r.Get("/ratings/summary", s.handleRatingSummary)
		r.Get("/score", s.handleSmoothedScore)
	})

	s.router.Route("/api/hostel", func(r chi.Router) {
		r.Route("/hostels", func(r chi.Router) {
			r.Post("/", s.handleCreateHostel)
			r.Get("/approved", s.handleListApprovedHostels)
			r.Get("/ranked", s.handleRankedHostels)
			r.Get("/ranked/top", s.handleTopRankedHostels)
			r.Post("/ratings/{ratingId}/reply", s.handleCreateReply)
			r.Get("/ratings/{ratingId}/reply", s.handleGetReply)
			r.Delete("/replies/{replyId}", s.handleDeleteReply)
			r.Get("/{hostelId}", s.handleGetHostel)
			r.Get("/{hostelId}/categories", s.handleListHostelCategories)
			r.Post("/{hostelId}/categories", s.handleAssignCategory)
		})
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", s.handleCreateCategory)
			r.Get("/", s.handleListApprovedCategories)
			r.Get("/{categoryId}", s.handleGetCategory)
		})
		r.Route("/images", func(r chi.Router) {
			r.Post("/upload", s.handleUploadImage)
			r.Get("/hostel/{hostelId}", s.handleListImages)
			r.Delete("/{imageId}", s.handleDeleteImage)
		})
	})

	s.router.Route("/internal/hostels", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/pending", s.handleListPendingHostels)
		r.Post("/{hostelId}/approve", s.handleApproveHostel)
		r.Post("/{hostelId}/reject", s.handleRejectHostel)
		r.Get("/categories/pending", s.handleListPendingCategories)
		r.Post("/categories/{categoryId}/approve", s.handleApproveCategory)
		r.Post("/categories/{categoryId}/reject", s.handleRejectCategory)
	})
}

// Start boots the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.httpSrv.Addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("graceful shutdown failed", zap.Error(err))
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.health == nil {
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	if err := s.health.HealthCheck(ctx); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, r, http.StatusNotFound, fmt.Sprintf("No route for %s %s", r.Method, r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.respondError(w, r, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s is not supported for %s", r.Method, r.URL.Path))
}
