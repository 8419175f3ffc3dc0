package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/markdave123-py/Metadoc/internal/api/handlers"
	appMiddleware "github.com/markdave123-py/Metadoc/internal/api/middlewares"
	"github.com/markdave123-py/Metadoc/internal/config"
	"github.com/markdave123-py/Metadoc/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer builds and wires all routes. users is nil when no database is
// configured; the API is then open and the auth endpoints are not mounted.
func NewServer(cfg *config.Config, docs *services.DocumentService, users *services.UserService, logger *zap.Logger) *Server {
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: NewRouter(cfg, docs, users, logger),
	}
	return &Server{httpServer: httpSrv, logger: logger}
}

// NewRouter returns the HTTP handler of the service.
func NewRouter(cfg *config.Config, docs *services.DocumentService, users *services.UserService, logger *zap.Logger) http.Handler {
	docHandler := handlers.NewDocumentHandler(docs, int64(cfg.MaxUploadMB)<<20, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(appMiddleware.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	documentRoutes := func(dr chi.Router) {
		dr.Post("/api/documents/upload", docHandler.UploadDocument)
		dr.Get("/api/documents", docHandler.GetDocuments)
		dr.Get("/api/documents/by-id/{id}", docHandler.GetDocument)
		dr.Get("/api/documents/{filename}/metadata", docHandler.GetMetadata)
		dr.Get("/download/{filename}", docHandler.DownloadMetadata)
	}

	if users == nil {
		documentRoutes(r)
		return r
	}

	authHandler := handlers.NewAuthHandler(users, []byte(cfg.JWTSecret), logger)
	r.Post("/api/signup", authHandler.Signup)
	r.Post("/api/login", authHandler.Login)

	r.Group(func(protected chi.Router) {
		protected.Use(appMiddleware.JWTMiddleware([]byte(cfg.JWTSecret)))
		documentRoutes(protected)
	})
	return r
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
