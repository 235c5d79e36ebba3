// Package database implement connection to database service and initialize ORM.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	// Register pgx as the underlying database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/config"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/model"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/utilities"
)

// Service holds the GORM DB instance and the config it was built from.
type Service struct {
	*gorm.DB
	Config *config.Config

	// cached raw DB and mutex for lazy-init
	sqlDB *sql.DB
	mu    sync.RWMutex
}

func dsn(cfg *config.Config) (string, error) {
	if cfg.UseConnStr {
		if cfg.DBConnStr == "" {
			return "", fmt.Errorf("DB_CONNECTION_STR is empty")
		}
		return cfg.DBConnStr, nil
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBPassword == "" || cfg.DBName == "" {
		return "", fmt.Errorf("database configuration is incomplete")
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName), nil
}

// New connects to Postgres with the given configuration, installs the uuid
// extension, migrates the schema and bootstraps the admin account.
func New(cfg *config.Config) (*Service, error) {
	connStr, err := dsn(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if gin.IsDebugging() {
		gdb = gdb.Debug()
	}

	svc := &Service{
		DB:     gdb,
		Config: cfg,
	}

	if err := svc.installExtension(); err != nil {
		return nil, fmt.Errorf("failed to install extension: %w", err)
	}
	if err := svc.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := svc.bootstrapAdmin(); err != nil {
		return nil, fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	return svc, nil
}

// Migrate database
func (s *Service) Migrate() error {
	return s.AutoMigrate(model.MigrateAble...)
}

func (s *Service) installExtension() error {
	return s.WithContext(context.Background()).
		Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error
}

// bootstrapAdmin creates the initial admin account when credentials are
// configured and no admin exists yet. This keeps the "at least one admin"
// invariant holding from the first request on.
func (s *Service) bootstrapAdmin() error {
	if s.Config.AdminEmail == "" || s.Config.AdminPassword == "" {
		log.Println("Admin email or password not set, skipping admin creation")
		return nil
	}

	var count int64
	if err := s.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utilities.HashPassword(s.Config.AdminPassword)
	if err != nil {
		return err
	}

	admin := model.User{
		Name:     s.Config.AdminName,
		Email:    s.Config.AdminEmail,
		Password: hashed,
		Role:     model.RoleAdmin,
	}
	if err := s.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Created bootstrap admin account %s", admin.Email)
	return nil
}

// Raw returns the underlying *sql.DB, caching it after the first successful
// retrieval. It is safe for concurrent use.
func (s *Service) Raw() (*sql.DB, error) {
	if s == nil {
		return nil, fmt.Errorf("database service is nil")
	}

	// fast path: cached value
	s.mu.RLock()
	if s.sqlDB != nil {
		raw := s.sqlDB
		s.mu.RUnlock()
		return raw, nil
	}
	s.mu.RUnlock()

	// slow path: initialize
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sqlDB != nil {
		return s.sqlDB, nil
	}
	if s.DB == nil {
		return nil, fmt.Errorf("gorm DB is nil")
	}
	raw, err := s.DB.DB()
	if err != nil {
		return nil, err
	}
	s.sqlDB = raw
	return raw, nil
}

// Health checks the health of the database connection by pinging the
// database. It returns a map with keys indicating various health statistics.
func (s *Service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	oriDB, err := s.Raw()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Printf("db down: %v", err)
		return stats
	}

	if err := oriDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Printf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := oriDB.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()
	stats["max_idle_closed"] = strconv.FormatInt(dbStats.MaxIdleClosed, 10)
	stats["max_lifetime_closed"] = strconv.FormatInt(dbStats.MaxLifetimeClosed, 10)

	if dbStats.OpenConnections > 40 {
		stats["message"] = "The database is experiencing heavy load."
	}
	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	return stats
}

// Close closes the database connection.
func (s *Service) Close() error {
	log.Printf("Disconnected from database: %s", s.Config.DBName)
	oriDB, err := s.Raw()
	if err != nil {
		return err
	}
	return oriDB.Close()
}
