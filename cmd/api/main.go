package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kycapi/docs"
	"kycapi/internal/config"
	"kycapi/internal/database"
	"kycapi/internal/database/migration"
	"kycapi/internal/esign"
	"kycapi/internal/events"
	handlers "kycapi/internal/http/handler"
	"kycapi/internal/http/middleware"
	"kycapi/internal/llm"
	"kycapi/internal/logging"
	"kycapi/internal/mail"
	"kycapi/internal/metrics"
	"kycapi/internal/model"
	"kycapi/internal/notification"
	"kycapi/internal/otel"
	"kycapi/internal/repository/postgres"
	"kycapi/internal/service"
	"kycapi/internal/storage"
)

// @title KYC Onboarding API
// @version 1.0
// @description Investor KYC onboarding, NDA e-signature and knowledge base chat.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	logger := logging.New(os.Stdout, cfg.LogLevel, time.UTC)
	logging.SetDefault(logger)
	ctx := logging.With(context.Background(), logger)

	fatal := func(msg string, err error) {
		logger.Error(msg, "error", err.Error())
		os.Exit(1)
	}

	shutdownTracing, err := otel.Init(ctx, otel.SettingsFromEnv())
	if err != nil {
		fatal("failed to initialize tracing", err)
	}
	defer shutdownTracing(context.Background())

	// PostgreSQL pool instrumented with otelsql
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		fatal("failed to connect to database", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
			fatal("failed to migrate database", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	domainMetrics, err := metrics.New(reg)
	if err != nil {
		fatal("failed to register metrics", err)
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal("failed to register http metrics", err)
	}

	// S3-compatible object storage for KYC documents
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		fatal("failed to initialize object storage", err)
	}
	docStore := storage.NewDocumentStore(objStore,
		storage.WithRetryPolicy(storage.RetryPolicy{MaxRetries: cfg.UploadMaxRetries, Delay: cfg.UploadRetryDelay}),
		storage.WithMetrics(domainMetrics),
	)

	sender, err := mail.NewSMTPSender(cfg.SMTP)
	if err != nil {
		fatal("failed to configure mail", err)
	}
	notifier := notification.NewNotifier(sender, cfg.AdminEmail, cfg.PublicBaseURL, docStore.URL, domainMetrics)

	publisher := events.New(cfg.Kafka)
	defer publisher.Close()

	// The e-signature integration is optional; its routes answer 503 without it.
	var envelopes service.EnvelopeClient
	if cli, err := esign.New(cfg.DocuSign); err != nil {
		logger.Warn("docusign disabled", "error", err.Error())
	} else {
		envelopes = cli
	}

	var (
		embedder  llm.Embedder  = llm.Unconfigured{}
		completer llm.Completer = llm.Unconfigured{}
	)
	if cli, err := llm.NewOpenAI(ctx, cfg.OpenAI); err != nil {
		logger.Warn("knowledge base llm disabled", "error", err.Error())
	} else {
		embedder, completer = cli, cli
	}

	appRepo := postgres.NewApplicationPostgres(db)
	knowledgeRepo := postgres.NewKnowledgePostgres(db)

	svcs := handlers.Services{
		KYC:    service.NewKYCService(appRepo, docStore, notifier, publisher, domainMetrics),
		Status: service.NewStatusService(appRepo, publisher, domainMetrics),
		NDA:    service.NewNDAService(notifier),
		Signature: service.NewSignatureService(envelopes, service.Templates{
			Individual:    cfg.DocuSign.IndividualTemplateID,
			Institutional: cfg.DocuSign.InstitutionalTemplateID,
		}),
		Knowledge: service.NewKnowledgeService(knowledgeRepo, embedder, completer, domainMetrics),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    bodyLimit(cfg.MaxUploadBytes),
	})

	app.Use(otelfiber.Middleware())
	// RequestID must run before Logger so every log line carries request_id
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(middleware.Recover())
	app.Use(httpMetrics.Handler())

	handlers.RegisterRoutes(app, db, svcs, handlers.Options{
		DashboardURL: cfg.DashboardURL,
		MaxFileBytes: cfg.MaxUploadBytes,
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			logger.Error("shutdown failed", "error", err.Error())
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("listening", "addr", addr)
	if err := app.Listen(addr); err != nil {
		fatal("failed to start server", err)
	}
}

// bodyLimit fits a submission carrying every accepted document at full size.
func bodyLimit(maxFileBytes int64) int {
	files := 0
	for _, t := range model.DocumentTypes() {
		files += t.MaxCount()
	}
	const formOverhead = 1 << 20
	return int(maxFileBytes)*files + formOverhead
}
