package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinforge/sdtm/internal/config"
	"github.com/clinforge/sdtm/internal/db"
	"github.com/clinforge/sdtm/internal/export"
	"github.com/clinforge/sdtm/internal/ingestion"
	"github.com/clinforge/sdtm/internal/mapping"
	"github.com/clinforge/sdtm/internal/middleware"
	"github.com/clinforge/sdtm/internal/pipeline"
	"github.com/clinforge/sdtm/internal/repository"
	"github.com/clinforge/sdtm/internal/terminology"

	"github.com/rs/cors"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The archive is optional; without it runs are served straight from
	// memory and nothing is persisted.
	var repos pipeline.Repositories
	if cfg.Pipeline.ArchiveEnabled {
		conn, err := db.NewConnection(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer conn.Close()

		if err := db.RunMigrations(cfg.Database); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		repos = pipeline.Repositories{
			Datasets: repository.NewDatasetRepository(conn.Pool),
			Findings: repository.NewFindingRepository(conn.Pool),
			Logs:     repository.NewTransformationLogRepository(conn.Pool),
		}
	}

	resolver := terminology.DefaultResolver()
	discoverer := mapping.NewDiscoverer(nil)
	intake := ingestion.NewService(discoverer)
	runner := pipeline.NewService(discoverer, resolver, repos, pipeline.Options{
		StudyID:           cfg.Pipeline.StudyID,
		SubjectTokenWidth: cfg.Pipeline.SubjectTokenWidth,
		Workers:           cfg.Pipeline.Workers,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	mux := http.NewServeMux()
	mux.Handle("/mapping/preview", ingestion.NewHTTPHandler(intake))
	mux.Handle("/pipeline/run", pipeline.NewHTTPHandler(runner, intake))
	if repos.Datasets != nil {
		mux.Handle("/datasets/", export.NewHTTPHandler(repos.Datasets))
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      corsHandler.Handler(middleware.LoggingMiddleware(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%d", cfg.Server.Port)
		log.Printf("Mapping preview available at http://localhost:%d/mapping/preview", cfg.Server.Port)
		log.Printf("Pipeline endpoint available at http://localhost:%d/pipeline/run", cfg.Server.Port)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
