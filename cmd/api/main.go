// Command api runs the job board HTTP server.
package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/config"
	"github.com/antonpetuchow-a11y/nomado24-job-board/internal/server"
)

// @title Job Board API
// @version 1.0
// @description REST backend for the job board: accounts, companies, jobs and applications.
// @BasePath /api
func main() {
	cfg := config.Load()

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server failed to initialize: %s", err)
	}
	defer func() {
		if err := srv.DB.Close(); err != nil {
			log.Printf("Failed to close database: %s", err)
		}
	}()

	httpServer := srv.HTTPServer()
	log.Printf("Listening on %s", httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %s", err)
	}
}
