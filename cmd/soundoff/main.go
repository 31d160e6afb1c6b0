// Copyright (c) 2025-2026 Soundoff HQ
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/soundoffhq/soundoff-go/internal/cache"
	"github.com/soundoffhq/soundoff-go/internal/config"
	"github.com/soundoffhq/soundoff-go/internal/handler"
	"github.com/soundoffhq/soundoff-go/internal/logging"
	"github.com/soundoffhq/soundoff-go/internal/middleware"
	"github.com/soundoffhq/soundoff-go/internal/scheduler"
	"github.com/soundoffhq/soundoff-go/internal/service"
	"github.com/soundoffhq/soundoff-go/internal/session"
	"github.com/soundoffhq/soundoff-go/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Soundoff - car audio competition community platform\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SOUNDOFF_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SOUNDOFF_DB_PATH          SQLite database path (default: ./data/soundoff.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SOUNDOFF_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SOUNDOFF_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SOUNDOFF_REDIS_URL        Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SOUNDOFF_DO_SEED          Seed default admin, plans and menu (default: false)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("soundoff %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger so WARN and ERROR records land in the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewAuditLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	// Caches: navigation snapshot plus page response cache backed by
	// Redis when configured, in-process memory otherwise.
	cacheCfg := cache.DefaultConfig()
	cacheCfg.RedisURL = cfg.RedisURL
	cacheCfg.Prefix = cfg.CachePrefix
	if cfg.CacheTTL > 0 {
		cacheCfg.DefaultTTL = time.Duration(cfg.CacheTTL) * time.Second
	}
	if cfg.CacheMaxSize > 0 {
		cacheCfg.MaxSize = cfg.CacheMaxSize
	}
	cacheBackend, err := cache.NewCache(cacheCfg)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := cacheBackend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	slog.Info("cache initialized", "redis", cfg.UseRedisCache())

	queries := store.New(db)
	navCache := cache.NewNavCache(queries)
	pageCache := cache.NewPageCache(cacheBackend, time.Duration(cfg.CacheTTL)*time.Second)

	sessionManager := session.New(db, cfg.IsDevelopment())

	navService := service.NewNavService(db, navCache)
	contentService := service.NewContentService(db, pageCache, navCache)
	registrationService := service.NewRegistrationService(db)

	h := handler.NewHandler(db, sessionManager, navService, contentService,
		registrationService, pageCache, logger)

	loginProtection := middleware.NewLoginProtection(middleware.LoginProtectionConfig{})

	sched := scheduler.New(db, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadUser(sessionManager, db))

	r.Get("/health", h.Health)

	// Public API
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(10, 30))

		r.With(loginProtection.Middleware()).Post("/login", h.Login(loginProtection))
		r.Post("/logout", h.Logout)

		r.Get("/nav", h.Nav)
		r.Get("/pages/{slug}", h.PublicPage)
		r.Get("/events", h.PublicEvents)
		r.Get("/events/{slug}", h.GetEvent)
		r.Get("/plans", h.PublicPlans)
		r.Get("/ads/{zone}", h.ServeAd)
		r.Post("/ads/{id}/click", h.AdClick)

		// Member routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/me", h.Me)
			r.Get("/me/registrations", h.MyRegistrations)
			r.Post("/registrations", h.Register)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/menu-items", h.ListMenuItems)
			r.Post("/menu-items", h.CreateMenuItem)
			r.Get("/menu-items/tree", h.MenuTree)
			r.Get("/menu-items/{id}", h.GetMenuItem)
			r.Put("/menu-items/{id}", h.UpdateMenuItem)
			r.Delete("/menu-items/{id}", h.DeleteMenuItem)
			r.Post("/menu-items/{id}/move-up", h.MoveMenuItemUp)
			r.Post("/menu-items/{id}/move-down", h.MoveMenuItemDown)

			r.Get("/pages", h.ListPages)
			r.Post("/pages", h.CreatePage)
			r.Put("/pages/{id}", h.UpdatePage)
			r.Put("/pages/{id}/placement", h.AssignPagePlacement)
			r.Delete("/pages/{id}", h.DeletePage)

			r.Get("/events", h.ListEvents)
			r.Post("/events", h.CreateEvent)
			r.Put("/events/{id}", h.UpdateEvent)
			r.Delete("/events/{id}", h.DeleteEvent)
			r.Get("/events/{id}/stats", h.EventStats)

			r.Get("/registrations", h.ListRegistrations)
			r.Post("/registrations/{id}/confirm", h.ConfirmRegistration)
			r.Post("/registrations/{id}/cancel", h.CancelRegistration)
			r.Post("/registrations/{id}/check-in", h.CheckInRegistration)

			r.Get("/plans", h.ListPlans)
			r.Post("/plans", h.CreatePlan)
			r.Put("/plans/{id}", h.UpdatePlan)
			r.Delete("/plans/{id}", h.DeletePlan)

			r.Get("/ads", h.ListAds)
			r.Post("/ads", h.CreateAd)
			r.Put("/ads/{id}", h.UpdateAd)
			r.Delete("/ads/{id}", h.DeleteAd)

			r.Get("/users", h.ListUsers)
			r.Post("/users", h.CreateUser)
			r.Put("/users/{id}", h.UpdateUser)
			r.Put("/users/{id}/password", h.UpdateUserPassword)
			r.Delete("/users/{id}", h.DeleteUser)
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
