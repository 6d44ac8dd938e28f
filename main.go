// Package main, mblog backend'inin giriş noktası.
//
// Dependency Injection wire-up:
//  1. Config ve logger
//  2. Database (embedded migration'lar)
//  3. Repository'ler
//  4. WebSocket Hub
//  5. Service'ler ve rate limiter
//  6. Controller + handler'lar
//  7. Route'lar, CORS, HTTP server
//  8. Graceful shutdown
//
// Global değişken yok; her şey burada oluşturulup birbirine bağlanır.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/akinalp/mblog/config"
	"github.com/akinalp/mblog/database"
	"github.com/akinalp/mblog/middleware"
	"github.com/akinalp/mblog/pkg/logger"
	"github.com/akinalp/mblog/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mblog: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// ─── 1. Config + logger ───
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	root, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	log := logger.Component(root, "main")
	log.WithField("port", cfg.Server.Port).Info("mblog server starting")

	// ─── 2. Database ───
	db, err := database.New(cfg.Database.Path, database.Migrations(), logger.Component(root, "database"))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// ─── 3. Repository ───
	repos := initRepositories(db.Conn)

	// ─── 4. WebSocket Hub ───
	hub := ws.NewHub(logger.Component(root, "ws"))
	go hub.Run()

	// ─── 5. Service ───
	svcs := initServices(repos, hub, cfg, root)
	defer svcs.Close()

	// ─── 6. Controller + Handler ───
	h := initHandlers(svcs, hub, cfg, root)

	// ─── 7. Router + CORS ───
	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, repos.User)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      middleware.RequestLogger(logger.Component(root, "http"))(corsHandler.Handler(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 8. Graceful shutdown ───
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr()).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")

	// Önce WS bağlantıları, sonra yeni istekler kesilir; en son arka plandaki
	// mark-as-read işleri DB kapanmadan beklenir.
	hub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("forced shutdown")
	}
	h.AtMeController.Wait()

	log.Info("server stopped gracefully")
	return nil
}
