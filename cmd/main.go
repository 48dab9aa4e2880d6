package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"labdesk/internal/analytics"
	"labdesk/internal/caching"
	"labdesk/internal/handlers"
	"labdesk/internal/jobs"
	"labdesk/internal/jobs/background"
	"labdesk/internal/middleware"
	"labdesk/internal/repositories"
	"labdesk/internal/services"
	"labdesk/pkg/database"
)

const version = "1.0.0"

func main() {
	ctx := context.Background()

	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379" // Default Redis address
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000" // Default MinIO endpoint
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	// Initialize MinIO service
	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(ctx, "labdesk-reports"); err != nil {
		log.Printf("Failed to ensure report bucket: %v", err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	patientRepo := repositories.NewPatientRepo(pool)
	testRepo := repositories.NewTestRepo(pool)
	expenseRepo := repositories.NewExpenseRepo(pool)
	invoiceRepo := repositories.NewInvoiceRepo(pool)
	sampleRepo := repositories.NewSampleRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	authSvc := services.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	patientSvc := services.NewPatientService(patientRepo)
	testSvc := services.NewTestService(testRepo, cacheSvc)
	expenseSvc := services.NewExpenseService(expenseRepo)
	billingSvc := services.NewBillingService(invoiceRepo, patientRepo, testRepo)
	sampleSvc := services.NewSampleService(sampleRepo, patientRepo)
	analyticsSvc := analytics.NewService(invoiceRepo, sampleRepo, cacheSvc)
	reportSvc := services.NewReportService(minioSvc)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	patientHandlers := handlers.NewPatientHandlers(patientSvc)
	testHandlers := handlers.NewTestHandlers(testSvc)
	expenseHandlers := handlers.NewExpenseHandlers(expenseSvc)
	billingHandlers := handlers.NewBillingHandlers(billingSvc, reportSvc)
	sampleHandlers := handlers.NewSampleHandlers(sampleSvc)
	analyticsHandlers := handlers.NewAnalyticsHandlers(analyticsSvc, reportSvc)
	healthHandlers := handlers.NewHealthHandlers(version)

	// Background jobs
	refreshSvc := jobs.NewAnalyticsRefreshService(analyticsSvc)
	scheduler := background.NewJobScheduler(refreshSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	// Public routes
	e.GET("/health", healthHandlers.Health)
	e.POST("/auth/register", authHandlers.Register)
	e.POST("/auth/login", authHandlers.Login)

	// Authenticated API routes
	api := e.Group("/api/v1", middleware.JWTMiddleware(jwtSecret))

	api.POST("/patients", patientHandlers.CreatePatient)
	api.GET("/patients", patientHandlers.ListPatients)
	api.GET("/patients/:id", patientHandlers.GetPatient)
	api.DELETE("/patients/:id", patientHandlers.DeletePatient)

	api.POST("/tests", testHandlers.CreateTest)
	api.GET("/tests", testHandlers.ListTests)
	api.GET("/tests/:id", testHandlers.GetTest)
	api.PUT("/tests/:id", testHandlers.UpdateTest)
	api.DELETE("/tests/:id", testHandlers.DeleteTest)

	api.POST("/expenses", expenseHandlers.CreateExpense)
	api.GET("/expenses", expenseHandlers.ListExpenses)
	api.GET("/expenses/dashboard", expenseHandlers.ExpenseDashboard)
	api.DELETE("/expenses/:id", expenseHandlers.DeleteExpense)

	api.POST("/invoices", billingHandlers.CreateInvoice)
	api.GET("/invoices", billingHandlers.ListInvoices)
	api.GET("/invoices/:id", billingHandlers.GetInvoice)
	api.GET("/invoices/:id/pdf", billingHandlers.DownloadInvoicePDF)
	api.DELETE("/invoices/:id", billingHandlers.DeleteInvoice)

	api.POST("/samples", sampleHandlers.CollectSample)
	api.GET("/samples", sampleHandlers.ListSamples)
	api.GET("/samples/:id", sampleHandlers.GetSample)
	api.PATCH("/samples/:id/status", sampleHandlers.UpdateSampleStatus)
	api.DELETE("/samples/:id", sampleHandlers.DeleteSample)

	api.GET("/analytics/summary", analyticsHandlers.GetSummary)
	api.GET("/analytics/report.xlsx", analyticsHandlers.DownloadRevenueReport)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	if err := scheduler.Stop(); err != nil {
		log.Printf("Failed to stop job scheduler: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
}
