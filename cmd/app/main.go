package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightres/api"
	"github.com/Domenick1991/flightres/config"
	"github.com/Domenick1991/flightres/internal/bootstrap"
	"github.com/Domenick1991/flightres/internal/cache"
	"github.com/Domenick1991/flightres/internal/kafka"
	"github.com/Domenick1991/flightres/internal/repository"
	"github.com/Domenick1991/flightres/internal/service/auth"
	"github.com/Domenick1991/flightres/internal/service/booking"
	"github.com/Domenick1991/flightres/internal/service/flights"
	"github.com/Domenick1991/flightres/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	searchCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.SearchCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	catalogRepo := repository.NewFlightCatalogRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)

	authService := auth.NewAuthService(customerRepo)
	flightService := flights.NewFlightService(catalogRepo, searchCache)
	bookingService := booking.NewBookingService(
		reservationRepo,
		producer,
		cfg.Kafka.ReservationsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	sessions := session.NewStore()
	router := api.NewRouter(sessions, authService, flightService, bookingService)

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
