package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/avelora/court-reservation/internal/config"
	"github.com/avelora/court-reservation/internal/database"
	"github.com/avelora/court-reservation/internal/handler"
	"github.com/avelora/court-reservation/internal/middleware"
	"github.com/avelora/court-reservation/internal/queue"
	"github.com/avelora/court-reservation/internal/repository"
	"github.com/avelora/court-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable; features degrade

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	courts := repository.NewCourtRepo(db)
	reservations := repository.NewReservationRepo(db)
	policies := repository.NewPolicyRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := &handler.PublicHandler{Courts: courts, Reservations: reservations}
	reservationH := &handler.ReservationHandler{Courts: courts, Reservations: reservations, Policies: policies}
	ownerH := &handler.OwnerHandler{Courts: courts}
	ownerResH := &handler.OwnerReservationHandler{Reservations: reservations}
	policyH := &handler.PolicyHandler{Policies: policies}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cache)
	router.RegisterCustomer(e, reservationH, cfg.JWTSecret)
	router.RegisterOwner(e, ownerH, ownerResH, policyH, cfg.JWTSecret)

	// Notification consumer runs for the life of the process and reconnects
	// on broker failures.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
