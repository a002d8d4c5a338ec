package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel_hub/internal/api"
	"hotel_hub/internal/app/service"
	"hotel_hub/internal/common/security"
	"hotel_hub/internal/domain/repository"
	"hotel_hub/internal/platform/cache"
	"hotel_hub/internal/platform/config"
	"hotel_hub/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}
	log.Println("Configuration loaded.")

	// 2. Initialize Token Manager
	tokens, err := security.NewTokenManager(cfg.JWTSecret, cfg.JWTExp)
	if err != nil {
		log.Fatalf("Could not initialize token manager: %v", err)
	}

	// 3. Initialize Database (runs migrations)
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected.")

	// 4. Initialize Redis
	rdb, err := cache.Connect(cfg)
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	roomRepo := repository.NewPgRoomRepository(db)
	serviceRepo := repository.NewPgServiceRepository(db)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, tokens, db)
	roomService := service.NewRoomService(roomRepo, rdb, cfg.CacheTTL, db)
	catalogService := service.NewCatalogService(serviceRepo, rdb, cfg.CacheTTL, db)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(cfg, tokens, authService, roomService, catalogService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
