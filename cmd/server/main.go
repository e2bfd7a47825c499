package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/solara/venue-reservation/internal/clock"
	"github.com/solara/venue-reservation/internal/config"
	"github.com/solara/venue-reservation/internal/database"
	"github.com/solara/venue-reservation/internal/handler"
	"github.com/solara/venue-reservation/internal/queue"
	"github.com/solara/venue-reservation/internal/repository"
	"github.com/solara/venue-reservation/internal/router"
	"github.com/solara/venue-reservation/internal/service"
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

	// Tag any reservations that predate the kind column.  Idempotent,
	// so running it on every boot is fine.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if n, err := repository.BackfillReservationKinds(ctx, db); err != nil {
		log.Fatalf("backfill reservation kinds: %v", err)
	} else if n > 0 {
		log.Printf("backfilled kind on %d reservations", n)
	}

	rdb := config.NewRedisClient() // nil when Redis is absent

	users := repository.NewUserRepo(db)
	events := repository.NewEventRepo(db)
	ledger := repository.NewReservationRepo(db)
	tx := repository.NewTxRunner(db)

	admissions := service.NewReservationService(tx, users, events, ledger, clock.System())
	queries := service.NewReservationQueries(ledger)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Deps{
		Cfg:          cfg,
		Auth:         handler.NewAuthHandler(cfg, users),
		Events:       handler.NewEventHandler(events),
		Reservations: handler.NewReservationHandler(admissions, queries),
		Redis:        rdb,
	})

	go queue.StartConfirmationConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
