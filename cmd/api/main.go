package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"talentsift/cv-matcher/internal/config"
	"talentsift/cv-matcher/internal/handlers"
	"talentsift/cv-matcher/internal/repositories"
	"talentsift/cv-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	cvFileRepo := repositories.NewCVFileRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	historyRepo := repositories.NewMatchHistoryRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractorService := services.NewTextExtractorService()
	parserService := services.NewCVParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(
		context.Background(),
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant profile index
	profileIndex, err := services.NewProfileIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := profileIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize matcher
	matcherService := services.NewMatcherService(
		jobRepo,
		historyRepo,
		geminiService,
		cfg.Matching.Provider,
		cfg.Matching.RetryMaxAttempts,
	)
	log.Println("✅ Matcher service initialized")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(
		cvFileRepo,
		candidateRepo,
		storageService,
		extractorService,
		parserService,
		matcherService,
		geminiService,
		profileIndex,
		cfg.Storage.MaxFileSize,
	)
	candidateHandler := handlers.NewCandidateHandler(
		candidateRepo,
		cvFileRepo,
		historyRepo,
		geminiService,
		profileIndex,
	)
	jobHandler := handlers.NewJobHandler(jobRepo)
	reportHandler := handlers.NewReportHandler(candidateRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CV Matcher API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 12,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// CV upload and scoring
	api.Post("/cv/upload", uploadHandler.HandleUpload)
	api.Post("/cv/upload-batch", uploadHandler.HandleUploadBatch)

	// Candidates
	api.Get("/candidates", candidateHandler.HandleList)
	api.Get("/candidates/:id", candidateHandler.HandleGet)
	api.Get("/candidates/:id/history", candidateHandler.HandleHistory)
	api.Get("/candidates/:id/similar", candidateHandler.HandleSimilar)
	api.Delete("/candidates/:id", candidateHandler.HandleDelete)

	// Jobs
	api.Get("/jobs", jobHandler.HandleList)
	api.Get("/jobs/:id", jobHandler.HandleGet)
	api.Post("/jobs", jobHandler.HandleCreate)
	api.Put("/jobs/:id", jobHandler.HandleUpdate)
	api.Delete("/jobs/:id", jobHandler.HandleDelete)

	// Reports
	api.Get("/reports/summary", reportHandler.HandleSummary)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CV Matcher API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/cv/upload",
				"POST /api/v1/cv/upload-batch",
				"GET /api/v1/candidates",
				"GET /api/v1/candidates/:id",
				"GET /api/v1/candidates/:id/history",
				"GET /api/v1/candidates/:id/similar",
				"DELETE /api/v1/candidates/:id",
				"GET /api/v1/jobs",
				"POST /api/v1/jobs",
				"PUT /api/v1/jobs/:id",
				"DELETE /api/v1/jobs/:id",
				"GET /api/v1/reports/summary",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
