package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"roadwatch/pothole-portal/pothole-portal-backend/internal/alerts"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/config"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/detections"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/detector"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/geomap"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/notifications"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/repairs"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/reports"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/session"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/stats"
	"roadwatch/pothole-portal/pothole-portal-backend/internal/tutorial"
	"roadwatch/pothole-portal/pothole-portal-backend/pkg/storage"
)

func main() {
	// .env is optional in deployed environments
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		cfg, _ = config.LoadConfig("")
	}

	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	// Connect to database (GORM for writes, sqlx for the dashboard queries)
	dbURL := cfg.Database.GetDatabaseURL()
	gormDB, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to access database pool", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	defer sqlDB.Close()

	statsDB, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer statsDB.Close()

	// AWS clients for notifications and result mirroring
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		logger.Fatal("Failed to load AWS configuration", zap.Error(err))
	}
	snsClient := sns.NewFromConfig(awsCfg)
	sesClient := sesv2.NewFromConfig(awsCfg)

	// Result asset storage
	localStore, err := storage.NewLocalStore(cfg.Storage.ResultsDir)
	if err != nil {
		logger.Fatal("Failed to initialize result storage", zap.Error(err))
	}
	var store storage.Store = localStore
	if cfg.Storage.S3Bucket != "" {
		s3Client := s3.NewFromConfig(awsCfg)
		store = storage.NewS3Mirror(localStore, s3Client, cfg.Storage.S3Bucket, cfg.Storage.S3KeyPrefix, logger)
		logger.Info("S3 result mirroring enabled", zap.String("bucket", cfg.Storage.S3Bucket))
	}
	if err := storage.EnsureSampleData(cfg.Storage.SampleDir); err != nil {
		logger.Warn("Failed to prepare sample data directory", zap.Error(err))
	}

	// Detection module
	detectionsRepo, err := detections.NewGormRepository(gormDB)
	if err != nil {
		logger.Fatal("Failed to migrate detection tables", zap.Error(err))
	}
	sim := detector.NewSimulated(cfg.Detection.ConfidenceThreshold, cfg.Detection.ModelName, logger)
	detectionsService := detections.NewService(detectionsRepo, sim, store, logger)
	detectionsHandler := detections.NewHandler(detectionsService, logger)

	// Dashboard statistics
	statsRepo := stats.NewPostgresRepository(statsDB)
	statsService := stats.NewService(statsRepo, logger)
	statsHandler := stats.NewHandler(statsService, logger)

	// Map data
	geomapService := geomap.NewService(detectionsService, logger)
	geomapHandler := geomap.NewHandler(geomapService, logger)

	// Reports
	reportsService := reports.NewService(statsService, detectionsService, logger)
	reportsHandler := reports.NewHandler(reportsService, logger)

	// Repair request workflow
	repairsRepo, err := repairs.NewGormRepository(gormDB)
	if err != nil {
		logger.Fatal("Failed to migrate repair tables", zap.Error(err))
	}
	repairsService := repairs.NewService(repairsRepo, logger)
	repairsHandler := repairs.NewHandler(repairsService, logger)

	// Alerting
	wsManager := notifications.NewManager(logger)
	smsChannel := notifications.NewSMSChannel(snsClient, cfg.AWS.SMSSenderID, logger)
	emailChannel := notifications.NewEmailChannel(sesClient, cfg.AWS.EmailFrom, logger)
	alertsRepo, err := alerts.NewGormRepository(gormDB)
	if err != nil {
		logger.Fatal("Failed to migrate alert tables", zap.Error(err))
	}
	lookback := time.Duration(cfg.Alerts.LookbackMins) * time.Minute
	alertEngine := alerts.NewEngine(alertsRepo, detectionsService, smsChannel, emailChannel, wsManager, lookback, logger)
	alertsHandler := alerts.NewHandler(alertsRepo, alertEngine, wsManager, logger)

	var scheduler *alerts.Scheduler
	if cfg.Alerts.Enabled {
		scheduler, err = alerts.NewScheduler(cfg.Alerts.CronSpec, alertEngine, logger)
		if err != nil {
			logger.Fatal("Failed to create alert scheduler", zap.Error(err))
		}
		scheduler.Start()
		logger.Info("Alert scheduler started", zap.String("spec", cfg.Alerts.CronSpec))
	}

	// Tutorial
	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL, logger)
	tutorialHandler := tutorial.NewHandler(tutorial.NewMachine(), tutorial.NewSessionStore(), logger)

	// Setup Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes
	api := router.Group("/api/v1")
	api.Use(sessions.Middleware())
	{
		detectionsHandler.RegisterRoutes(api)
		statsHandler.RegisterRoutes(api)
		geomapHandler.RegisterRoutes(api)
		reportsHandler.RegisterRoutes(api)
		repairsHandler.RegisterRoutes(api)
		alertsHandler.RegisterRoutes(api)
		tutorialHandler.RegisterRoutes(api)
	}

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:    cfg.Server.GetServerAddr(),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen: %s\n", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.Int("port", cfg.Server.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", zap.Error(err))
	}

	logger.Info("Server exiting")
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		logger, _ = zap.NewDevelopment()
	}
	return logger
}
