package main

import (
	"context"
	"time"

	"business-permits-backend/config"
	"business-permits-backend/middleware"
	"business-permits-backend/tasks"
	"business-permits-backend/token"
	"business-permits-backend/utils"
	"business-permits-backend/websocket"

	// Repositories
	admin_repositories "business-permits-backend/admin/repositories"
	applications_repositories "business-permits-backend/applications/repositories"
	export_repositories "business-permits-backend/export/repositories"
	treasury_repositories "business-permits-backend/treasury/repositories"

	// Services
	applications_services "business-permits-backend/applications/services"
	export_services "business-permits-backend/export/services"
	treasury_services "business-permits-backend/treasury/services"

	// Routes
	admin_routes "business-permits-backend/admin/routes"
	application_routes "business-permits-backend/applications/routes"
	export_routes "business-permits-backend/export/routes"
	treasury_routes "business-permits-backend/treasury/routes"

	// Bleve
	bleveRepositories "business-permits-backend/bleve/repositories"
	bleveRoutes "business-permits-backend/bleve/routes"
	bleveServices "business-permits-backend/bleve/services"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	if err := godotenv.Load(".env"); err != nil {
		config.Logger.Warn("No .env file found, relying on the environment", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
	})

	middleware.InitCors(app)

	db := config.ConfigureDatabase()
	port := config.GetEnvOr("PORT", "8080")
	ctx := context.Background()

	redisClient := config.InitRedisServer(ctx)

	tokenMaker, err := token.NewPasetoMaker(config.GetEnv("TOKEN_SYMMETRIC_KEY"))
	if err != nil {
		config.Logger.Fatal("Cannot create token maker", zap.Error(err))
	}

	appCtx := &middleware.AppContext{
		PasetoMaker: tokenMaker,
		Ctx:         ctx,
		RedisClient: redisClient,
	}

	// Initialize the mailer
	utils.InitializeMailer()

	// ------ WebSocket hub for review-thread events ------
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Serve generated documents
	app.Static("/public", "./public")

	// Repositories
	indexPath := config.GetEnvOr("BLEVE_INDEX_PATH", "./bleve_data")
	bleveIndexingService := bleveServices.NewIndexingService(config.Logger, indexPath)
	_, bleveInterfaceRepo := bleveRepositories.NewBleveRepository(bleveIndexingService)

	userRepo := admin_repositories.NewUserRepository(db)
	applicationRepo := applications_repositories.NewApplicationRepository(db)
	messageRepo := applications_repositories.NewRequirementMessageRepository(db)
	treasuryRepo := treasury_repositories.NewTreasuryRepository(db)
	documentRepo := export_repositories.NewDocumentRepository(db)

	// Export pipeline
	applicationService := applications_services.NewApplicationService(applicationRepo, messageRepo)
	assessmentService := treasury_services.NewAssessmentService(treasuryRepo)
	previewCache := export_services.NewPreviewCache(redisClient, 15*time.Minute)
	exportService := export_services.NewExportService(
		applicationService,
		assessmentService,
		export_services.NewDocxRenderer(),
		export_services.NewConverterClient(),
		previewCache,
	)

	// Background jobs
	redisAddr := config.GetEnvOr("REDIS_ADDRESS", "localhost:6379")
	enqueuer := tasks.NewEnqueuer(redisAddr)
	defer enqueuer.Close()

	if redisClient != nil {
		worker := tasks.NewWorker(redisAddr, exportService)
		if err := worker.Start(); err != nil {
			config.Logger.Error("Task worker failed to start", zap.Error(err))
		} else {
			defer worker.Shutdown()
		}
	}

	cleanupScheduler := utils.StartCleanupScheduler(documentRepo)
	defer cleanupScheduler.Stop()

	// Routes
	admin_routes.AdminInitRoutes(app, appCtx, userRepo, db)
	application_routes.ApplicationInitRoutes(app, appCtx, applicationRepo, messageRepo, bleveInterfaceRepo, wsHub, db)
	treasury_routes.TreasuryInitRoutes(app, appCtx, treasuryRepo, enqueuer, db)
	export_routes.ExportInitRoutes(app, appCtx, exportService, documentRepo, db)
	bleveRoutes.BleveInitRoutes(app, appCtx, bleveInterfaceRepo)

	// ------ WebSocket route for review threads ------
	websocket.InitWebsocketRoutes(app, wsHub)
	config.Logger.Info("WebSocket endpoint registered at /ws")

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
