package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"content-backend/internal/config"
	"content-backend/internal/handler"
	"content-backend/internal/logger"
	"content-backend/internal/service"
	"content-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewLogger(nil).Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := cfg.Logger()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	// ── Database ──────────────────────────────────────────────────────────────
	db, err := sql.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	if cfg.DatabaseDriver == config.DriverSQLite {
		// sqlite serializes writers anyway
		db.SetMaxOpenConns(1)
	}

	// Fail fast rather than accepting traffic.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		return err
	}

	articleService := &service.ArticleService{
		DB:            db,
		Dialect:       service.Dialect(cfg.DatabaseDriver),
		Policy:        cfg.MediaPolicy(),
		SummaryLength: cfg.SummaryLength,
		Log:           log.With("component", "articles"),
	}
	if err := articleService.EnsureSchema(pingCtx); err != nil {
		return err
	}
	log.Info("connected to database", "driver", cfg.DatabaseDriver)

	// ── Storage ───────────────────────────────────────────────────────────────
	fileStorage, err := storage.NewLocalStorage(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		return err
	}
	log.Info("using local storage", "dir", cfg.UploadDir)

	articleHandler := &handler.ArticleHandler{
		Service: articleService,
		Storage: fileStorage,
		Log:     log.With("component", "http"),
	}

	// ── Router ────────────────────────────────────────────────────────────────
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, `{"status":"unhealthy"}`, http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	articleHandler.Register(r.PathPrefix("/api/v1").Subrouter())

	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))),
	)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.RecoveryHandler()(cors(handlers.CombinedLoggingHandler(os.Stdout, r))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // uploads
		IdleTimeout:  60 * time.Second,
	}

	// ── Graceful Shutdown ──────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("content service running", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info("shutdown signal received, draining requests")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped cleanly")
	return nil
}
