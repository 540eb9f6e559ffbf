package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/inkstudio/booking-api/internal/config"
	"github.com/inkstudio/booking-api/internal/handler"
	artistHandler "github.com/inkstudio/booking-api/internal/handler/artist"
	bookingHandler "github.com/inkstudio/booking-api/internal/handler/booking"
	customerHandler "github.com/inkstudio/booking-api/internal/handler/customer"
	healthHandler "github.com/inkstudio/booking-api/internal/handler/health"
	paymentHandler "github.com/inkstudio/booking-api/internal/handler/payment"
	"github.com/inkstudio/booking-api/internal/middleware"
	"github.com/inkstudio/booking-api/internal/repository/postgres"
	"github.com/inkstudio/booking-api/internal/router"
	artistService "github.com/inkstudio/booking-api/internal/service/artist"
	bookingService "github.com/inkstudio/booking-api/internal/service/booking"
	customerService "github.com/inkstudio/booking-api/internal/service/customer"
	eventService "github.com/inkstudio/booking-api/internal/service/event"
	paymentService "github.com/inkstudio/booking-api/internal/service/payment"
	scheduleService "github.com/inkstudio/booking-api/internal/service/schedule"
	"github.com/inkstudio/booking-api/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.NewMetrics("booking_api", "engine")

	// Repositories
	artistRepo := postgres.NewArtistRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	hoursRepo := postgres.NewWorkingHoursRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	eventSvc := eventService.NewService(outboxRepo)
	artistSvc := artistService.NewService(artistRepo, time.Duration(cfg.Booking.ArtistCacheMinutes)*time.Minute)
	customerSvc := customerService.NewService(customerRepo)
	scheduleSvc := scheduleService.NewService(hoursRepo, bookingRepo, artistSvc, eventSvc)
	bookingSvc := bookingService.NewService(bookingRepo, paymentRepo, hoursRepo, artistSvc, customerSvc, eventSvc, m)
	paymentSvc := paymentService.NewService(paymentRepo, bookingSvc, eventSvc, m)

	handler.RegisterValidations()

	// Handlers
	r := router.NewRouter(
		artistHandler.NewHandler(artistSvc, scheduleSvc),
		customerHandler.NewHandler(customerSvc),
		bookingHandler.NewHandler(bookingSvc),
		paymentHandler.NewHandler(paymentSvc),
		healthHandler.NewHandler(db),
		handler.NewHandler(),
		router.Config{
			RateLimit:     rate.Limit(cfg.Server.RateLimit),
			RateBurst:     cfg.Server.RateBurst,
			Timeout:       time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORSConfig:    middleware.DefaultCORSConfig(),
			WriteRoles:    cfg.Server.WriteRoles,
			MetricsPrefix: "booking_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
