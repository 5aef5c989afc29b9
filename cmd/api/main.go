package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/pipeline-crm/internal/infra/auth"
	"github.com/xavierca1/pipeline-crm/internal/infra/database"
	"github.com/xavierca1/pipeline-crm/internal/infra/http/handlers"
	"github.com/xavierca1/pipeline-crm/internal/infra/http/middleware"
	"github.com/xavierca1/pipeline-crm/internal/infra/mail"
	"github.com/xavierca1/pipeline-crm/internal/infra/queue"
	"github.com/xavierca1/pipeline-crm/internal/infra/storage"
	"github.com/xavierca1/pipeline-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("❌ database: %v", err)
	}
	defer db.Close()

	// Schema first, traffic second. Missing tables are fatal, the additive
	// column migrations inside only log.
	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("❌ schema: %v", err)
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if err := database.PromoteAdmin(ctx, db, adminEmail); err != nil {
		log.Fatalf("❌ admin promotion: %v", err)
	}

	// 1. Repositories
	userRepo := database.NewUserRepository(db)
	prospectRepo := database.NewProspectRepository(db)
	interlocutorRepo := database.NewInterlocutorRepository(db)
	nextActionRepo := database.NewNextActionRepository(db)
	historyRepo := database.NewStatusHistoryRepository(db)
	activityRepo := database.NewActivityRepository(db)
	sessionRepo := database.NewSessionRepository(db)

	// 2. Gateways and adapters
	tokens := auth.NewTokenManager(secret)
	bucket := storage.NewClient(
		os.Getenv("STORAGE_URL"),
		os.Getenv("STORAGE_KEY"),
		envOr("STORAGE_BUCKET", "attachments"),
	)

	var mailSender *mail.EmailSender
	if os.Getenv("MAIL_HOST") != "" {
		mailSender = mail.NewEmailSender(
			os.Getenv("MAIL_HOST"),
			envIntOr("MAIL_PORT", 587),
			os.Getenv("MAIL_USER"),
			os.Getenv("MAIL_PASS"),
			envOr("MAIL_FROM", "no-reply@pipeline.local"),
			os.Getenv("NOTIFY_EMAIL"),
		)
	}

	// The broker is optional: without it transitions are still recorded,
	// only the notifications go quiet.
	var producer *queue.Producer
	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		rabbitMQ, err := queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"),
			os.Getenv("RABBITMQ_PASS"),
			host,
			envOr("RABBITMQ_PORT", "5672"),
		)
		if err != nil {
			log.Fatalf("❌ rabbitmq: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		if mailSender != nil {
			worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
			go worker.Start(queue.QueueName)
		}
	} else {
		log.Println("⚠️ RABBITMQ_HOST not set, status-change notifications disabled")
	}

	// 3. UseCases
	var events usecase.EventPublisher
	if producer != nil {
		events = producer
	}
	var mailService usecase.MailService
	if mailSender != nil {
		mailService = mailSender
	}

	authUC := usecase.NewAuthUseCase(userRepo, sessionRepo, tokens, adminEmail)
	updateProspectUC := usecase.NewUpdateProspectUseCase(prospectRepo, events)
	attachmentUC := usecase.NewAttachmentUseCase(prospectRepo, bucket)
	userAdminUC := usecase.NewUserAdminUseCase(userRepo, mailService)

	// 4. Handlers
	authHandler := handlers.NewAuthHandler(authUC)
	prospectHandler := handlers.NewProspectHandler(prospectRepo, updateProspectUC)
	interlocutorHandler := handlers.NewInterlocutorHandler(interlocutorRepo)
	nextActionHandler := handlers.NewNextActionHandler(nextActionRepo)
	historyHandler := handlers.NewStatusHistoryHandler(historyRepo)
	activityHandler := handlers.NewActivityHandler(activityRepo)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentUC)
	userHandler := handlers.NewUserHandler(userAdminUC, sessionRepo)
	healthHandler := handlers.NewHealthHandler(db)

	authn := middleware.NewAuthenticator(tokens, userRepo)

	// 5. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)

			r.Route("/prospects", func(r chi.Router) {
				r.Get("/", prospectHandler.List)
				r.Post("/", prospectHandler.Create)
				r.Put("/{id}", prospectHandler.Update)
				r.Delete("/{id}", prospectHandler.Delete)

				r.Get("/{id}/status_history", historyHandler.List)

				r.Get("/{id}/next_actions", nextActionHandler.List)
				r.Post("/{id}/next_actions", nextActionHandler.Create)

				r.Get("/{id}/interlocuteurs", interlocutorHandler.List)
				r.Post("/{id}/interlocuteurs", interlocutorHandler.Create)

				r.Get("/{id}/activities", activityHandler.List)
				r.Post("/{id}/activities", activityHandler.Create)

				r.Post("/{id}/upload-pdf", attachmentHandler.Upload)
				r.Delete("/{id}/pdf", attachmentHandler.Delete)
				r.Get("/{id}/download-pdf", attachmentHandler.Download)
			})

			r.Put("/next_actions/{id}", nextActionHandler.Update)
			r.Delete("/next_actions/{id}", nextActionHandler.Delete)

			r.Put("/interlocuteurs/{id}", interlocutorHandler.Update)
			r.Delete("/interlocuteurs/{id}", interlocutorHandler.Delete)

			r.Group(func(r chi.Router) {
				r.Use(authn.RequireAdmin)

				r.Get("/users", userHandler.List)
				r.Post("/users", userHandler.Create)
				r.Delete("/users/{id}", userHandler.Delete)
				r.Put("/users/{id}/password", userHandler.SetPassword)
				r.Post("/users/{id}/temp-password", userHandler.TempPassword)
				r.Get("/admin/active-users", userHandler.ActiveUsers)
			})
		})
	})

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 pipeline-crm listening on %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
