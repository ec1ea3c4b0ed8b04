package main

import (
	"context"
	"log"
	"time"

	"salestrend/config"
	"salestrend/database"
	"salestrend/handlers"
	"salestrend/insights"
	"salestrend/prediction"
	"salestrend/repository"
	"salestrend/routes"
	"salestrend/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	demoSeedDays = 90
	demoSeed     = 42
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatal(err)
	}

	// Set up the application configuration
	config.AppConfig = cfg

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := database.CreateSchema(context.Background(), pool); err != nil {
		log.Fatal(err)
	}
	if cfg.AdminEmail != "" {
		if err := database.EnsureAdmin(context.Background(), pool, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Printf("⚠️ [AUTH] Could not create admin user: %v", err)
		}
	}

	repo := repository.NewSalesRepository(pool)
	predictionHandlers := &handlers.PredictionHandlers{
		Predictions:   service.NewPredictionService(repo, prediction.New(cfg.Prediction)),
		Analytics:     repo,
		DefaultPeriod: cfg.DefaultPeriodDays,
		MaxPeriod:     cfg.MaxPeriodDays,
	}
	// A nil *GeminiGenerator must not end up inside the interface.
	if gen := insights.NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiModel); gen != nil {
		predictionHandlers.Insights = gen
	} else {
		log.Println("GEMINI_API_KEY is not set, AI insights disabled")
	}

	storeHandlers := &handlers.StoreHandlers{
		DB:        pool,
		Catalogue: repository.NewStoreRepository(pool),
		SeedDays:  demoSeedDays,
		SeedSeed:  demoSeed,
		MaxPeriod: cfg.MaxPeriodDays,
	}

	app := fiber.New()

	// Add middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app, routes.Handlers{
		Auth:        &handlers.AuthHandlers{DB: pool, Secret: []byte(cfg.JWTSecret), TokenTTL: 24 * time.Hour},
		Predictions: predictionHandlers,
		Store:       storeHandlers,
		Fleet:       &handlers.FleetHandlers{Fleet: service.NewFleetService(repository.NewFleetRepository(pool))},
		DB:          pool,
	})

	// Start server
	log.Printf("serving http://%s\n", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}
