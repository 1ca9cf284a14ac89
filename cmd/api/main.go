package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"interviewapi/internal/ai/gemini"
	"interviewapi/internal/config"
	"interviewapi/internal/conversation"
	"interviewapi/internal/database"
	"interviewapi/internal/database/migration"
	"interviewapi/internal/evaluation"
	handlers "interviewapi/internal/http/handler"
	"interviewapi/internal/http/middleware"
	"interviewapi/internal/otel"
	"interviewapi/internal/repository/postgres"
	sessionredis "interviewapi/internal/session/redis"
	"interviewapi/internal/service"
	"interviewapi/internal/storage"
	"interviewapi/internal/strategy"
)

func main() {
	ctx := context.Background()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation(os.Getenv("TZ"))
	if err != nil {
		loc = time.UTC
	}

	// Initialize OpenTelemetry tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Ensure the question bank and report schema exist
	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize the TTL session store backing live interviews
	sessions, err := sessionredis.New(cfg.Redis)
	if err != nil {
		log.Fatalf("failed to connect to session store: %v", err)
	}

	// Initialize reusable S3-compatible object storage client for transcripts
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Initialize the LLM backend
	llm, err := gemini.New(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("failed to initialize llm client: %v", err)
	}

	// Initialize repositories, engines, and the interview service
	questionRepo := postgres.NewQuestionPostgres(db)
	reportRepo := postgres.NewReportPostgres(db)

	interviewSvc := service.NewInterviewService(
		sessions,
		strategy.NewEngine(questionRepo, cfg.Interview),
		evaluation.NewEngine(llm),
		conversation.NewManager(cfg.Interview.TokenBudget),
		llm,
		reportRepo,
		objStore,
		cfg.Interview.SessionTTL,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Prometheus registry with process/go collectors and per-request counters
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMw, err := middleware.NewPrometheusMiddleware(registry)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(promMw.Handler())
	app.Use(otelfiber.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, db, interviewSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
