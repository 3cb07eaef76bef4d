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

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/apperrors"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/config"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/database"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/jobs"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/quotes"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/repository"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/returns"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	priceRepo := repository.NewPriceRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Create quote client, restoring the stored API token if one exists
	quoteClient := quotes.NewClient(cfg.Quotes.BaseURL, time.Duration(cfg.Quotes.TimeoutSeconds)*time.Second)

	// Create services
	systemService := service.NewSystemService(db)
	priceService := service.NewPriceService(priceRepo, settingRepo, quoteClient, cfg.Quotes.FernetKey)
	analyticsService := service.NewAnalyticsService(returns.NewEngine(nil), priceService)

	if token, err := priceService.QuoteToken(); err == nil {
		quoteClient.SetToken(token)
	} else if !errors.Is(err, apperrors.ErrSettingNotFound) {
		log.Printf("WARNING: could not restore quote API token: %v", err)
	}

	// Start the scheduled price refresh
	if cfg.Refresh.Enabled {
		refresher := jobs.NewPriceRefresher(priceService, cfg.Refresh.Schedule)
		scheduler, err := refresher.Start()
		if err != nil {
			log.Fatalf("Failed to start price refresh job: %v", err)
		}
		defer scheduler.Stop()
	}

	// Create router
	router := api.NewRouter(systemService, analyticsService, priceService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
