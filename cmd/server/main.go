package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/auroramotors/rental-billing/internal/config"
	"github.com/auroramotors/rental-billing/internal/handler"
	"github.com/auroramotors/rental-billing/internal/repository"
	"github.com/auroramotors/rental-billing/internal/service"
	"github.com/auroramotors/rental-billing/internal/xero"
	"github.com/auroramotors/rental-billing/pkg/response"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	tokenRepo := repository.NewTokenRepository(db)
	scheduleRepo := repository.NewRecurringScheduleRepository(db)
	stateStore := repository.NewStateStore(redisClient)

	// Initialize Xero client and services
	xeroClient := xero.NewClient(xero.ClientConfig{
		ClientID:     cfg.Xero.ClientID,
		ClientSecret: cfg.Xero.ClientSecret,
		RedirectURI:  cfg.Xero.RedirectURI,
		Scopes:       cfg.Xero.ScopeList(),
	})

	xeroService := service.NewXeroService(tokenRepo, stateStore, xeroClient, cfg)
	invoicingService := service.NewInvoicingService(xeroService, xeroClient, cfg)
	recurringService := service.NewRecurringService(scheduleRepo, stateStore, xeroService, xeroClient, cfg)

	billingHandler := handler.NewBillingHandler(invoicingService)
	xeroHandler := handler.NewXeroHandler(xeroService)
	scheduleHandler := handler.NewScheduleHandler(recurringService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(billingHandler, xeroHandler, scheduleHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	billingHandler *handler.BillingHandler,
	xeroHandler *handler.XeroHandler,
	scheduleHandler *handler.ScheduleHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware)
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/invoices", billingHandler.CreateInvoices).Methods("POST")

	api.HandleFunc("/xero/connect", xeroHandler.Connect).Methods("GET")
	api.HandleFunc("/xero/callback", xeroHandler.Callback).Methods("GET")
	api.HandleFunc("/xero/status", xeroHandler.Status).Methods("GET")
	api.HandleFunc("/xero/disconnect", xeroHandler.Disconnect).Methods("POST")

	api.HandleFunc("/schedules", scheduleHandler.Create).Methods("POST")
	api.HandleFunc("/schedules", scheduleHandler.List).Methods("GET")
	api.HandleFunc("/schedules/{scheduleId}/cancel", scheduleHandler.Cancel).Methods("POST")

	return router
}
