package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/tablereserve/table-reserve/internal/config"
	"github.com/tablereserve/table-reserve/internal/database"
	"github.com/tablereserve/table-reserve/internal/handler"
	"github.com/tablereserve/table-reserve/internal/queue"
	"github.com/tablereserve/table-reserve/internal/repository"
	"github.com/tablereserve/table-reserve/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	menu := repository.NewMenuRepo(db)
	reservations := repository.NewReservationRepo(db)

	h := router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, users),
		Public:      handler.NewPublicHandler(restaurants, menu),
		Menu:        handler.NewMenuHandler(menu),
		Reservation: handler.NewReservationHandler(reservations),
		Admin:       handler.NewAdminHandler(cfg, restaurants, reservations),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, h, rdb)

	// Background consumer mirroring reservation decisions to a log file.
	go queue.StartDecisionConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
