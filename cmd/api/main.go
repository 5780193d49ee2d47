package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/contafacil-billing/internal/config"
	"github.com/xavierca1/contafacil-billing/internal/infra/database"
	"github.com/xavierca1/contafacil-billing/internal/infra/http/handlers"
	"github.com/xavierca1/contafacil-billing/internal/infra/http/middleware"
	"github.com/xavierca1/contafacil-billing/internal/infra/integration/mercadopago"
	"github.com/xavierca1/contafacil-billing/internal/infra/integration/whatsapp"
	"github.com/xavierca1/contafacil-billing/internal/infra/mail"
	"github.com/xavierca1/contafacil-billing/internal/infra/queue"
	"github.com/xavierca1/contafacil-billing/internal/infra/worker"
	"github.com/xavierca1/contafacil-billing/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuração inválida: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no Postgres: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPUser, cfg.AMQPPass, cfg.AMQPHost, cfg.AMQPPort)
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no RabbitMQ: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	companyRepo := database.NewCompanyRepository(db)
	chargeRepo := database.NewChargeRepository(db)
	subRepo := database.NewSubscriptionRepository(db)
	paymentRepo := database.NewMonthlyPaymentRepository(db)
	methodRepo := database.NewPaymentMethodRepository(db)
	userRepo := database.NewUserRepository(db)

	// 2. Gateways e Adapters
	gateway := mercadopago.NewClient(cfg.MercadoPagoAccessToken, cfg.MercadoPagoBaseURL, cfg.AppURL)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	whatsSender := mail.NewWhatsAppSender(whatsapp.NewClient(cfg.WhatsappAccessToken, cfg.WhatsappPhoneID))

	// 3. UseCases
	createChargeUC := usecase.NewCreateChargeUseCase(chargeRepo, companyRepo, gateway, mailSender, whatsSender)
	checkStatusUC := usecase.NewCheckChargeStatusUseCase(chargeRepo, gateway)
	cancelChargeUC := usecase.NewCancelChargeUseCase(chargeRepo, gateway)
	createSubUC := usecase.NewCreateSubscriptionUseCase(subRepo, companyRepo, methodRepo, gateway)
	cancelSubUC := usecase.NewCancelSubscriptionUseCase(subRepo, gateway)
	markPaidUC := usecase.NewMarkPaymentPaidUseCase(paymentRepo)
	generateUC := usecase.NewGenerateMonthlyPaymentsUseCase(subRepo, paymentRepo)
	remindUC := usecase.NewSendPaymentRemindersUseCase(
		paymentRepo, subRepo, companyRepo, methodRepo,
		createChargeUC, mailSender, cfg.ReminderDaysBefore,
	)
	webhookUC := usecase.NewProcessWebhookUseCase(gateway, chargeRepo, subRepo, companyRepo, producer)
	cleanupUC := usecase.NewCleanupExpiredChargesUseCase(chargeRepo, cfg.ChargeGraceWindow)

	// 4. Workers
	notificationWorker := queue.NewWorker(rabbitMQ.Ch, mailSender, userRepo)
	go notificationWorker.Start(ctx, queue.QueueName)

	billingWorker := worker.NewBillingWorker(generateUC, remindUC, paymentRepo, cfg.BillingInterval)
	go billingWorker.Start(ctx)

	expirationWorker := worker.NewChargeExpirationWorker(cleanupUC, cfg.ReaperInterval)
	go expirationWorker.Start(ctx)

	// 5. Handlers
	chargeHandler := handlers.NewChargeHandler(createChargeUC, checkStatusUC, cancelChargeUC)
	subHandler := handlers.NewSubscriptionHandler(createSubUC, cancelSubUC)
	paymentHandler := handlers.NewMonthlyPaymentHandler(markPaidUC)
	webhookHandler := handlers.NewWebhookHandler(webhookUC)
	jobsHandler := handlers.NewJobsHandler(generateUC, remindUC, cleanupUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, gateway.Configured())

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/charges", chargeHandler.Create)
		r.Get("/charges/{id}/status", chargeHandler.Status)
		r.Post("/charges/{id}/cancel", chargeHandler.Cancel)

		r.Post("/subscriptions", subHandler.Create)
		r.Post("/subscriptions/{id}/cancel", subHandler.Cancel)

		r.Post("/monthly-payments/{id}/pay", paymentHandler.Pay)

		r.Post("/webhooks/payment", webhookHandler.Handle)

		r.Post("/jobs/generate-payments", jobsHandler.GeneratePayments)
		r.Post("/jobs/send-reminders", jobsHandler.SendReminders)
		r.Post("/jobs/cleanup-charges", jobsHandler.CleanupCharges)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		log.Println("⚠️ Encerrando servidor...")
		server.Shutdown(context.Background())
	}()

	log.Printf("🔥 ContaFácil Billing rodando na porta %s", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
