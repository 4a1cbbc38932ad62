package main // Entry point package

import (
	"context" // Context for startup-time database calls
	"log"     // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/vanklomk/zoo-school-carpool/internal/config"
	"github.com/vanklomk/zoo-school-carpool/internal/database"
	"github.com/vanklomk/zoo-school-carpool/internal/handler"
	"github.com/vanklomk/zoo-school-carpool/internal/queue"
	"github.com/vanklomk/zoo-school-carpool/internal/repository"
	"github.com/vanklomk/zoo-school-carpool/internal/reservation"
	"github.com/vanklomk/zoo-school-carpool/internal/router"
	queue_publisher "github.com/vanklomk/zoo-school-carpool/internal/service"
	"github.com/vanklomk/zoo-school-carpool/internal/store"
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win
	cfg := config.Load()

	// Pick the carpool store: MySQL when configured, otherwise the
	// in-memory store so the server can run without a database.
	var carpools store.CarpoolStore
	if cfg.DBHost != "" {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		if err := database.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("database schema: %v", err)
		}
		carpools = repository.NewCarpoolRepo(db)
	} else {
		log.Printf("no DB_HOST configured; using in-memory carpool store")
		carpools = store.NewMemoryStore()
	}

	// Redis backs the rate limiter and the read-through response cache.
	// A nil client disables both and the API still works.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	reservations := reservation.NewService(carpools)
	h := handler.NewCarpoolHandler(carpools, reservations)
	h.Publish = queue_publisher.PublishSeatClaimed

	// Background consumer appends join events to logs/joins.log.  It
	// reconnects forever on its own; a missing broker only costs logs.
	go func() {
		if err := queue.StartJoinConsumer(); err != nil {
			log.Printf("join-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterCarpools(e, h, rdb)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
