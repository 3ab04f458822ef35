package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/allocation"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/config"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/database"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/handler"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/middleware"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/queue"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/repository"
	"github.com/HareemRehan13/EventSphere-Management-System/internal/router"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and response cache disabled")
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	expos := repository.NewExpoRepo(db)
	booths := repository.NewBoothRepo(db)
	companies := repository.NewCompanyRepo(db)
	requests := repository.NewRequestRepo(db)
	directory := repository.NewDirectoryRepo(db)

	// The allocation workflow owns every booth/request state change.
	flow := allocation.New(booths, requests, log.Default())

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	organizerH := handler.NewOrganizerHandler(expos, booths)
	exhibitorH := handler.NewExhibitorHandler(companies, requests, flow)
	decisionH := handler.NewDecisionHandler(flow, requests, expos, booths, companies, directory)
	publicH := handler.NewPublicHandler(expos, booths, companies, users, directory)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cache)
	router.RegisterOrganizer(e, organizerH, decisionH, cfg.JWTSecret, limiter)
	router.RegisterExhibitor(e, exhibitorH, cfg.JWTSecret, limiter)

	// Background consumer for decision events; reconnects on its own.
	go func() {
		if err := queue.StartDecisionConsumer(); err != nil {
			log.Printf("decision consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
