// Command groupchat-go is a small multi-user group-chat backend: account
// registration and login, bearer-token sessions, profile management, and a
// shared paginated message feed. This file wires configuration, the database
// pool, services and handlers into a chi router and runs the HTTP server
// with graceful shutdown.
//
// @title Groupchat API
// @version 1.0
// @description Group chat backend with token authentication and a shared message feed.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_TOKEN' to authorize
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/user/groupchat-go/apperror"
	"github.com/user/groupchat-go/auth"
	"github.com/user/groupchat-go/config"
	"github.com/user/groupchat-go/db"
	"github.com/user/groupchat-go/messages"
	"github.com/user/groupchat-go/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewDBPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Stores, services and handlers, wired by constructor injection.
	authService := auth.NewAuthService(auth.NewMemberStore(pool), *cfg.Auth)
	tokenService := auth.NewTokenService(auth.NewTokenStore(pool))
	authHandlers := auth.NewHandlers(authService, tokenService)

	userService := users.NewUserService(users.NewProfileStore(pool))
	userHandlers := users.NewUserHandlers(userService)

	messageService := messages.NewMessageService(messages.NewMessageStore(pool))
	messageHandlers := messages.NewMessageHandlers(messageService)

	requireAuth := auth.Middleware(tokenService)

	r := chi.NewRouter()

	// Global middleware; chi requires all of it registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic safety net: render any recovered panic as an apperror 500.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	// Public routes.
	r.Get("/hello", handleHello)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout", authHandlers.HandleLogout())
		})
	})

	// Protected routes: everything below requires a resolving bearer token.
	r.Route("/profile", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", userHandlers.HandleGetProfile())
		r.Put("/", userHandlers.HandleUpdateProfile())
	})

	r.Route("/messages", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", messageHandlers.HandleList())
		r.Post("/create", messageHandlers.HandleCreate())
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// handleHello godoc
// @Summary Hello endpoint
// @Description Unauthenticated liveness greeting.
// @Tags Misc
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /hello [get]
func handleHello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":   "Hello!",
		"timestamp": time.Now().UTC(),
	})
}

// writeError is a local helper for the panic recovery middleware; everything
// else goes through auth.WriteError.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"Failed to encode error response"}`, http.StatusInternalServerError)
	}
}
