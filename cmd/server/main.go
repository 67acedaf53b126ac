package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files in local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/hotel-backoffice/internal/booking"    // Reservation engine
	"github.com/iliyamo/hotel-backoffice/internal/config"     // Internal config loader
	"github.com/iliyamo/hotel-backoffice/internal/database"   // MySQL pool
	"github.com/iliyamo/hotel-backoffice/internal/handler"    // HTTP handlers
	"github.com/iliyamo/hotel-backoffice/internal/middleware" // Rate limit + cache middleware
	"github.com/iliyamo/hotel-backoffice/internal/queue"      // RabbitMQ consumer
	"github.com/iliyamo/hotel-backoffice/internal/repository" // SQL repositories
	"github.com/iliyamo/hotel-backoffice/internal/router"     // Route registration
)

func main() {
	// Load a local .env when present.  In production configuration comes
	// from the real environment and the file is simply absent.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and rate limiter.  A nil client
	// disables both without failing startup.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	guests := repository.NewGuestRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	svc := booking.NewService(guests, rooms, reservations, nil)

	gh := handler.NewGuestHandler(guests)
	rh := handler.NewRoomHandler(rooms, svc)
	resh := handler.NewReservationHandler(svc)

	// Limiter and cache attach inside the authenticated groups, after
	// JWTAuth, so the rate bucket keys on the token subject. Room
	// mutations carry the invalidator to drop cached browse responses.
	cacheCfg := config.LoadCacheConfig()
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	bust := middleware.NewCacheInvalidator(cacheCfg, rdb)

	e := echo.New()
	router.RegisterRoutes(e) // health check
	router.RegisterReception(e, resh, gh, rh, cfg.JWTSecret, limiter)
	router.RegisterManager(e, rh, gh, cfg.JWTSecret, limiter, bust)
	router.RegisterBrowse(e, rh, cfg.JWTSecret, limiter, cache)

	// Notification consumer drains reservation events onto the local log.
	// It reconnects on its own; a hard failure only disables notifications.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
