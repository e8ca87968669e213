package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nutrimed-labs/nutrimed-core/internal/core/ports/driving"
	"github.com/nutrimed-labs/nutrimed-core/internal/runtime"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService         driving.AuthService
	patientService      driving.PatientService
	consultationService driving.ConsultationService
	ingestService       driving.IngestService
	settingsService     driving.SettingsService

	// Infrastructure
	services    *runtime.Services
	db          Pinger // patient store health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	patientService driving.PatientService,
	consultationService driving.ConsultationService,
	ingestService driving.IngestService,
	settingsService driving.SettingsService,
	services *runtime.Services,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:              http.NewServeMux(),
		version:             cfg.Version,
		authService:         authService,
		patientService:      patientService,
		consultationService: consultationService,
		ingestService:       ingestService,
		settingsService:     settingsService,
		services:            services,
		db:                  db,
		redisClient:         redisClient,
	}

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:     s.router,
		ReadTimeout: 30 * time.Second,
		// Streamed answers can run for minutes on CPU-only hosts
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Create middleware
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)
	s.router.HandleFunc("GET /api/v1/status", s.handleStatus)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	s.router.HandleFunc("POST /api/v1/auth/refresh", s.handleRefresh)

	// Registration is public; a patient has no token before registering
	s.router.HandleFunc("POST /api/v1/patients", s.handleRegisterPatient)

	// Auth endpoints (authenticated)
	s.router.Handle("POST /api/v1/auth/logout",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleLogout)))

	// Patient endpoints (authenticated)
	s.router.Handle("GET /api/v1/patients",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListPatients)))
	s.router.Handle("GET /api/v1/patients/{name}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetPatient)))
	s.router.Handle("DELETE /api/v1/patients/{name}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeletePatient)))

	// Consultation endpoints (authenticated)
	s.router.Handle("POST /api/v1/consultations",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleAsk)))
	s.router.Handle("POST /api/v1/consultations/stream",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleAskStream)))

	// Ingest endpoints (authenticated)
	s.router.Handle("POST /api/v1/ingest",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleIngest)))
	s.router.Handle("GET /api/v1/ingest/tasks/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleIngestStatus)))

	// Settings endpoints (authenticated)
	s.router.Handle("GET /api/v1/settings/model",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetModelSettings)))
	s.router.Handle("PUT /api/v1/settings/model",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateModelSettings)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
