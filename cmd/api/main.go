package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sazehapp/sazeh-api/docs" // Swagger docs
	"github.com/sazehapp/sazeh-api/internal/config"
	"github.com/sazehapp/sazeh-api/internal/database"
	"github.com/sazehapp/sazeh-api/internal/handlers"
	"github.com/sazehapp/sazeh-api/internal/jobs"
	"github.com/sazehapp/sazeh-api/internal/middleware"
	"github.com/sazehapp/sazeh-api/internal/repository"
	"github.com/sazehapp/sazeh-api/internal/services"
	"github.com/sazehapp/sazeh-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Sazeh API
// @version 1.0
// @description REST API for construction project financial management

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8081
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, cfg, db, logger.Log)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/auth/users", h.Auth.CreateUser)

				admin.POST("/projects", h.Project.Create)
				admin.PUT("/projects/:project_id", h.Project.Update)
				admin.DELETE("/projects/:project_id", h.Project.Delete)
				admin.POST("/projects/:project_id/activate", h.Project.Activate)

				admin.POST("/projects/:project_id/periods", h.Period.Create)
				admin.DELETE("/periods/:id", h.Period.Delete)

				admin.POST("/projects/:project_id/units", h.Unit.Create)
				admin.PUT("/units/:id", h.Unit.Update)
				admin.DELETE("/units/:id", h.Unit.Delete)

				admin.POST("/projects/:project_id/investors", h.Investor.Create)
				admin.PUT("/investors/:id", h.Investor.Update)
				admin.DELETE("/investors/:id", h.Investor.Delete)

				admin.POST("/projects/:project_id/transactions", h.Transaction.Create)
				admin.PUT("/transactions/:id", h.Transaction.Update)
				admin.DELETE("/transactions/:id", h.Transaction.Delete)

				admin.POST("/projects/:project_id/interest-rates", h.InterestRate.Create)
				admin.DELETE("/interest-rates/:id", h.InterestRate.Delete)

				admin.POST("/projects/:project_id/expenses", h.Expense.Create)
				admin.PUT("/expenses/:id", h.Expense.Update)
				admin.DELETE("/expenses/:id", h.Expense.Delete)
				admin.POST("/projects/:project_id/expenses/recalculate-contractor", h.Expense.RecalculateContractor)

				admin.POST("/projects/:project_id/sales", h.Sale.Create)
				admin.PUT("/sales/:id", h.Sale.Update)
				admin.DELETE("/sales/:id", h.Sale.Delete)

				admin.POST("/projects/:project_id/petty-cash", h.PettyCash.Create)
				admin.PUT("/petty-cash/:id", h.PettyCash.Update)
				admin.DELETE("/petty-cash/:id", h.PettyCash.Delete)

				admin.POST("/projects/:project_id/audit/verify", h.Audit.Verify)
			}

			// Read access for every authenticated user
			protected.GET("/projects", h.Project.Index)
			protected.GET("/projects/active", h.Project.Active)
			protected.GET("/projects/:project_id", h.Project.Show)
			protected.GET("/projects/:project_id/statistics", h.Project.Statistics)
			protected.GET("/projects/:project_id/cost-metrics", h.Project.CostMetrics)
			protected.GET("/projects/:project_id/profit-percentages", h.Project.ProfitPercentages)

			protected.GET("/projects/:project_id/periods", h.Period.Index)
			protected.GET("/periods/:id", h.Period.Show)

			protected.GET("/projects/:project_id/units", h.Unit.Index)
			protected.GET("/units/:id", h.Unit.Show)

			protected.GET("/projects/:project_id/investors", h.Investor.Index)
			protected.GET("/projects/:project_id/investors/summaries", h.Investor.AllSummaries)
			protected.GET("/projects/:project_id/investors/:id", h.Investor.Show)
			protected.GET("/projects/:project_id/investors/:id/summary", h.Investor.Summary)
			protected.GET("/projects/:project_id/investors/:id/ownership", h.Investor.Ownership)
			protected.GET("/projects/:project_id/investors/:id/statement", h.Report.InvestorStatement)

			protected.GET("/projects/:project_id/transactions", h.Transaction.Index)
			protected.GET("/transactions/:id", h.Transaction.Show)

			protected.GET("/projects/:project_id/interest-rates", h.InterestRate.Index)
			protected.GET("/projects/:project_id/interest-rates/active", h.InterestRate.Active)

			protected.GET("/projects/:project_id/expenses", h.Expense.Index)
			protected.GET("/expenses/:id", h.Expense.Show)

			protected.GET("/projects/:project_id/sales", h.Sale.Index)
			protected.GET("/sales/:id", h.Sale.Show)

			protected.GET("/projects/:project_id/petty-cash", h.PettyCash.Index)
			protected.GET("/projects/:project_id/petty-cash/balance", h.PettyCash.Balance)
			protected.GET("/projects/:project_id/petty-cash/balances", h.PettyCash.AllBalances)
			protected.GET("/projects/:project_id/petty-cash/trend", h.PettyCash.Trend)

			protected.GET("/projects/:project_id/export/xlsx", h.Report.ExportXLSX)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Verify aggregates against raw SQL nightly
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Verifying aggregates...")
		projects, err := svcs.Project.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range projects {
			mismatches, err := svcs.Audit.Verify(ctx, p.ID, 0)
			if err != nil {
				logger.Error("Aggregate verification failed", "project_id", p.ID, "error", err)
				continue
			}
			if len(mismatches) > 0 {
				logger.Error("Aggregate mismatches detected", "project_id", p.ID, "count", len(mismatches))
			}
		}
		return nil
	})

	// Rebuild contractor fee rows nightly to heal any drift
	worker.ScheduleEvery(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Recalculating contractor expenses...")
		projects, err := svcs.Project.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range projects {
			if err := svcs.Expense.RecalculateAllContractorExpenses(ctx, p.ID); err != nil {
				logger.Error("Contractor recalculation failed", "project_id", p.ID, "error", err)
			}
		}
		return nil
	})

	logger.Info("Scheduled recurring jobs")
}
