// Package server assembles the HTTP server from its parts: database,
// repositories, token service, storage and the route handlers.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/auth"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/config"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/database"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/repository"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/storage"
)

// Server bundles every dependency the routes need.
type Server struct {
	Config  *config.Config
	DB      *database.Service
	Tokens  *auth.TokenService
	Storage storage.Storage

	Users        repository.UserRepository
	Companies    repository.CompanyRepository
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository
}

// New connects to the database and wires up the repositories, token service
// and upload storage from cfg.
func New(cfg *config.Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("SECRET_KEY is not set")
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("database failed to initialize: %w", err)
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	return &Server{
		Config:  cfg,
		DB:      db,
		Tokens:  auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Storage: store,

		Users:        repository.NewUserRepository(db.DB),
		Companies:    repository.NewCompanyRepository(db.DB),
		Jobs:         repository.NewJobRepository(db.DB),
		Applications: repository.NewApplicationRepository(db.DB),
	}, nil
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("GCS_BUCKET is required with STORAGE_DRIVER=gcs")
		}
		return storage.NewCloudStorage(cfg.GCSBucket)
	default:
		return storage.NewDiskStorage(cfg.UploadDir, "/uploads")
	}
}

// HTTPServer wraps the routes in an http.Server listening on the configured
// port.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Config.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
