package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/auroramotors/rental-billing/internal/config"
	"github.com/auroramotors/rental-billing/internal/repository"
	"github.com/auroramotors/rental-billing/internal/service"
	"github.com/auroramotors/rental-billing/internal/xero"
)

func main() {
	_ = godotenv.Load()

	log.Println("Starting billing scheduler...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	tokenRepo := repository.NewTokenRepository(db)
	scheduleRepo := repository.NewRecurringScheduleRepository(db)
	stateStore := repository.NewStateStore(redisClient)

	xeroClient := xero.NewClient(xero.ClientConfig{
		ClientID:     cfg.Xero.ClientID,
		ClientSecret: cfg.Xero.ClientSecret,
		RedirectURI:  cfg.Xero.RedirectURI,
		Scopes:       cfg.Xero.ScopeList(),
	})

	xeroService := service.NewXeroService(tokenRepo, stateStore, xeroClient, cfg)
	recurringService := service.NewRecurringService(scheduleRepo, stateStore, xeroService, xeroClient, cfg)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	// Daily job: invoice recurring installments due tomorrow.
	_, err = c.AddFunc(cfg.Scheduler.CronSpec, func() {
		log.Println("scheduler: running daily invoice issuance...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		issued, err := recurringService.IssueDueInvoices(ctx, time.Now())
		if err != nil {
			log.Printf("scheduler: daily invoice issuance failed: %v", err)
			return
		}

		log.Printf("scheduler: issued %d invoices", issued)
	})
	if err != nil {
		log.Fatalf("Error scheduling daily invoice job: %v", err)
	}

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Println("Scheduler stopped")
}
