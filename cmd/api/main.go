package main

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/xavierca1/fieldsales/internal/infra/database"
	"github.com/xavierca1/fieldsales/internal/infra/http/handlers"
	"github.com/xavierca1/fieldsales/internal/infra/http/middleware"
	"github.com/xavierca1/fieldsales/internal/infra/location"
	"github.com/xavierca1/fieldsales/internal/infra/mail"
	"github.com/xavierca1/fieldsales/internal/infra/queue"
	"github.com/xavierca1/fieldsales/internal/infra/worker"
	"github.com/xavierca1/fieldsales/internal/usecase"
)

func main() {
	godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	ctx := context.Background()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.WithError(err).Fatal("failed to apply schema")
	}
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := database.SeedDemoData(ctx, db); err != nil {
			log.WithError(err).Fatal("failed to seed demo data")
		}
	}

	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to RabbitMQ")
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	siteRepo := database.NewSiteRepository(db)
	userRepo := database.NewUserRepository(db)
	leadRepo := database.NewLeadRepository(db)
	visitRepo := database.NewVisitRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	snapshots := database.NewSnapshotLoader(db)

	// Collaborators
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	locationClient := location.NewGatewayClient(
		os.Getenv("LOCATION_GATEWAY_URL"), os.Getenv("LOCATION_GATEWAY_KEY"),
	)
	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)

	// Workers
	notifier := queue.NewNotificationWorker(rabbitMQ.Ch, mailSender, os.Getenv("MAIL_MANAGER_TO"), log)
	go notifier.Start(queue.QueueName)

	reminder := worker.NewFollowUpReminderWorker(db, producer, log)
	go reminder.Start(ctx)

	// UseCases
	gate := &usecase.StoreGate{}
	ledger := usecase.NewBookingLedger(bookingRepo)
	checkInUC := usecase.NewCheckInUseCase(siteRepo, leadRepo, visitRepo, locationClient, producer, gate, log)
	checkOutUC := usecase.NewCheckOutUseCase(visitRepo, gate)
	leadStatusUC := usecase.NewLeadStatusUseCase(leadRepo, ledger, producer, gate, log)
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, siteRepo, userRepo, gate)

	// Handlers
	visitHandler := handlers.NewVisitHandler(checkInUC, checkOutUC, visitRepo)
	leadHandler := handlers.NewLeadHandler(createLeadUC, leadStatusUC, leadRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(snapshots)
	siteHandler := handlers.NewSiteHandler(siteRepo)
	userHandler := handlers.NewUserHandler(userRepo, siteRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(userRepo))

		r.Post("/visits/checkin", visitHandler.HandleCheckIn)
		r.Post("/visits/{visitID}/checkout", visitHandler.HandleCheckOut)
		r.Get("/visits", visitHandler.HandleList)

		r.Get("/leads", leadHandler.HandleList)
		r.Post("/leads", leadHandler.HandleCreate)
		r.Put("/leads/{leadID}", leadHandler.HandleUpdate)
		r.Post("/leads/{leadID}/status", leadHandler.HandleTransition)
		r.Post("/leads/{leadID}/booking", leadHandler.HandleConfirmBooking)

		r.Get("/analytics", analyticsHandler.Handle)

		r.Get("/sites", siteHandler.HandleList)
		r.Post("/sites", siteHandler.HandleCreate)
		r.Put("/sites/{siteID}", siteHandler.HandleUpdate)

		r.Get("/users", userHandler.HandleList)
		r.Post("/users", userHandler.HandleCreate)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("field sales tracker listening")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
