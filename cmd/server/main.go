package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/texan-rex/diner-service/internal/config"
	"github.com/texan-rex/diner-service/internal/db"
	"github.com/texan-rex/diner-service/internal/db/repository"
	"github.com/texan-rex/diner-service/internal/middleware"
	"github.com/texan-rex/diner-service/internal/notify"
	"github.com/texan-rex/diner-service/internal/router"
	"github.com/texan-rex/diner-service/internal/service"
	"github.com/texan-rex/diner-service/internal/websockets"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	database, err := db.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run database migrations
	if err := database.Migrate(cfg.Database); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	repos := repository.NewRepositories(database)

	// Initialize WebSocket hub
	hub := websockets.NewHub()
	go hub.Run()

	discord := notify.NewDiscord(cfg.Discord.WebhookURL)

	services := router.Services{
		Auth: service.NewAuthService(repos.User, service.JWTConfig{
			Secret:    cfg.JWT.Secret,
			ExpiresIn: cfg.JWT.ExpiresIn,
		}),
		Employees:    service.NewEmployeeService(repos.User),
		Sales:        service.NewSaleService(repos.Sale, repos.User),
		Orders:       service.NewOrderService(repos.Order, repos.User, repos.Counter),
		ClientOrders: service.NewClientOrderService(repos.ClientOrder, repos.Counter, discord, hub),
	}

	// Provision the bootstrap admin account if none exists
	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := services.Employees.EnsureAdmin(bootCtx, cfg.Admin); err != nil {
		bootCancel()
		log.Fatalf("Failed to ensure admin account: %v", err)
	}
	bootCancel()

	// Initialize router
	r := router.New(services, hub, database, cfg.RateLimit.PublicOrders)

	// Create HTTP server
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: middleware.Logger(r),
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
