package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go-admin-panel/bootstrap"
	"go-admin-panel/common"
	"go-admin-panel/config"
	"go-admin-panel/database"
	"go-admin-panel/middleware"
	activityAPI "go-admin-panel/modules/activity/delivery/api"
	activityRepo "go-admin-panel/modules/activity/repository"
	activityUC "go-admin-panel/modules/activity/usecase"
	menuAPI "go-admin-panel/modules/menu/delivery/api"
	menuRepo "go-admin-panel/modules/menu/repository"
	menuUC "go-admin-panel/modules/menu/usecase"
	"go-admin-panel/modules/notification"
	permissionAPI "go-admin-panel/modules/permission/delivery/api"
	permissionRepo "go-admin-panel/modules/permission/repository"
	permissionUC "go-admin-panel/modules/permission/usecase"
	roleAPI "go-admin-panel/modules/role/delivery/api"
	roleRepo "go-admin-panel/modules/role/repository"
	roleUC "go-admin-panel/modules/role/usecase"
	userAPI "go-admin-panel/modules/user/delivery/api"
	userRepo "go-admin-panel/modules/user/repository"
	userUC "go-admin-panel/modules/user/usecase"
	"go-admin-panel/pkg/cache"
	"go-admin-panel/pkg/email"
	"go-admin-panel/pkg/log"
	"go-admin-panel/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Parse command line flags
	envPath := flag.String("env-file", "", "ENV config file path")
	yamlPath := flag.String("config", "./config/config.yml", "ENV config file path")
	flag.Parse()

	configPaths := []string{*yamlPath}
	if *envPath == "" {
		fmt.Printf("App is starting with config path is '%s' and no load env file\n", *yamlPath)
	} else {
		fmt.Printf("App is starting with config path is '%s' and env path is '%s'...\n", *yamlPath, *envPath)
		configPaths = append(configPaths, *envPath)
	}

	cfg, err := config.Load(configPaths...)
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	if err = config.Validate(cfg); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	// Initialize logger
	var logger log.Logger
	if cfg.App().IsProduction() {
		logConfig := log.ProductionConfig(cfg.App().Name(), cfg.App().Version())
		logConfig.Level = cfg.Logger().LogLevel()
		logConfig.FileMaxSizeInMB = cfg.Logger().MaxFileSizeMB()
		logConfig.FileMaxAgeInDays = cfg.Logger().MaxFileAgeDays()
		logConfig.FileMaxBackups = cfg.Logger().MaxBackupFiles()
		logConfig.CompressRotated = cfg.Logger().IsCompressEnabled()
		if dir := cfg.Logger().LogFilePath(); dir != "" {
			logConfig.OutputPath = filepath.Join(dir, fmt.Sprintf("%s.%s", cfg.Logger().LogFileName(), cfg.Logger().FileExtension()))
		}

		logger, err = log.NewZapLogger(logConfig)
		if err != nil {
			panic(fmt.Errorf("failed to create logger: %w", err))
		}
	} else {
		logger = log.MustNewDevelopmentLogger()
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Printf("Failed to sync logger: %v\n", err)
		}
	}()

	// Set logger for common package using adapter and as default logger
	loggerAdapter := common.NewLoggerAdapter(logger)
	common.SetLogger(loggerAdapter)
	log.SetDefaultLogger(logger)

	logger.Info("Application starting",
		log.String("name", cfg.App().Name()),
		log.String("version", cfg.App().Version()),
		log.String("environment", cfg.App().Environment()),
		log.String("config_path", *yamlPath),
	)

	db, err := database.Connect(cfg.Database(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", log.Error(err))
	}

	if err = database.MigrateDB(db); err != nil {
		logger.Fatal("Failed to migrate database", log.Error(err))
	}

	logger.Info("Database connected and migrated successfully")

	// Initialize cache for rate limiting and the permission matrix
	cacheConfig := &cache.Config{
		Host:       cfg.Redis().Host(),
		Port:       cfg.Redis().Port(),
		Password:   cfg.Redis().Password(),
		DB:         cfg.Redis().DB(),
		DefaultTTL: cfg.Cache().DefaultTTL(),
	}

	cacheFactory := cache.NewCacheFactory(loggerAdapter)
	cacheClient, err := cacheFactory.CreateCache(cache.Provider(cfg.Cache().Provider()), cacheConfig)
	if err != nil {
		logger.Fatal("Failed to create cache client", log.Error(err))
	}
	defer cacheClient.Close()

	logger.Info("Cache connected successfully", log.String("provider", cfg.Cache().Provider()))

	// Initialize email client for lifecycle notifications
	emailFactory := email.NewEmailFactory(loggerAdapter)
	emailClient, err := emailFactory.CreateClient(email.Provider(cfg.Mailer().Provider()), &email.Config{
		Provider:         cfg.Mailer().Provider(),
		DefaultFrom:      cfg.Mailer().FromEmail(),
		SESRegion:        cfg.Mailer().SESRegion(),
		SESAccessKey:     cfg.Mailer().SESAccessKey(),
		SESSecretKey:     cfg.Mailer().SESSecretKey(),
		SendGridAPIKey:   cfg.Mailer().SendGridAPIKey(),
		SendGridFromName: cfg.Mailer().FromName(),
	})
	if err != nil {
		logger.Fatal("Failed to create email client", log.Error(err))
	}
	defer emailClient.Close()

	notifier, err := notification.NewEmailNotifier(emailClient, logger, notification.Config{
		AppName:   cfg.App().Name(),
		PanelURL:  cfg.App().PanelURL(),
		FromEmail: cfg.Mailer().FromEmail(),
	})
	if err != nil {
		logger.Fatal("Failed to initialize notifier", log.Error(err))
	}

	// Timezone for activity log date-range filtering
	location, err := time.LoadLocation(cfg.Locale().Timezone())
	if err != nil {
		logger.Fatal("Failed to load timezone", log.Error(err))
	}

	supportedLocales := cfg.Locale().SupportedLocales()

	// Initialize repositories
	userRepository := userRepo.NewUserRepository(db)
	menuRepository := menuRepo.NewMenuRepository(db, supportedLocales)
	permissionRepository := permissionRepo.NewPermissionRepository(db)
	roleRepository := roleRepo.NewRoleRepository(db, supportedLocales)
	activityRepository := activityRepo.NewActivityRepository(db)

	txManager := database.NewTxManager(db)
	recorder := activityUC.NewActivityRecorder(activityRepository)
	bcryptHasher := common.NewBcryptHasher()

	// Initialize usecases
	userUsecase := userUC.NewUserUsecase(userRepository, recorder, txManager, bcryptHasher, notifier)
	menuUsecase := menuUC.NewMenuUsecase(menuRepository, recorder, txManager, supportedLocales)
	permissionUsecase := permissionUC.NewPermissionUsecase(permissionRepository, recorder, txManager, cacheClient, logger)
	roleUsecase := roleUC.NewRoleUsecase(roleRepository, permissionRepository, recorder, txManager)
	activityUsecase := activityUC.NewActivityUsecase(activityRepository, location)

	// Seed baseline data
	seeder := bootstrap.NewSeeder(roleRepository, permissionRepository, userRepository, bcryptHasher, logger)
	if err := seeder.Seed(context.Background(), bootstrap.AdminAccount{
		Name:     cfg.App().AdminDefaultName(),
		Email:    cfg.App().AdminDefaultEmail(),
		Password: cfg.App().AdminDefaultPassword(),
	}); err != nil {
		logger.Error("Failed to seed baseline data", log.Error(err))
		// Don't fail the application, just log the error
	}

	jwtProvider := common.NewJWTProvider(cfg.App())

	// Initialize dependencies for middlewares
	deps := middleware.Dependencies{
		Cache:       cacheClient,
		Logger:      logger,
		JwtProvider: jwtProvider,
		UserRepo:    userRepository,
	}

	// Create middlewares instance
	middlewares := middleware.NewMiddlewares(deps)

	// Initialize handlers
	userHandler := userAPI.NewUserHandler(userUsecase, middlewares)
	menuHandler := menuAPI.NewMenuHandler(menuUsecase, middlewares)
	permissionHandler := permissionAPI.NewPermissionHandler(permissionUsecase, middlewares)
	roleHandler := roleAPI.NewRoleHandler(roleUsecase, middlewares)
	activityHandler := activityAPI.NewActivityHandler(activityUsecase, middlewares)

	// Register custom validations with Gin's binding validator
	validator.SetSupportedLocales(supportedLocales)
	validator.RegisterValidatorWithGin()

	// Disable Gin's default logger and recovery
	gin.DisableConsoleColor()
	gin.SetMode(gin.ReleaseMode)

	// Create Gin server without default middleware
	r := gin.New()

	// Add custom middleware in order
	corsConfig := middleware.DefaultCORSConfig()
	if origins := cfg.Server().AllowedOrigins(); len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	}
	r.Use(middlewares.CORSWithLogger(corsConfig))
	r.Use(middlewares.RequestIDMiddleware())

	// Add general rate limiting middleware
	r.Use(middlewares.RateLimitWithLogger(middleware.RateLimitConfig{
		WindowSize:  time.Minute,
		MaxRequests: 100,
		KeyPrefix:   "global:",
		SkipPaths:   []string{"/health"},
		// OnLimitReached is omitted - will use default handler
	}))

	r.Use(middlewares.LoggingMiddleware(middleware.LoggerConfig{
		SkipPaths:          []string{"/health"},
		EnableRequestBody:  !cfg.App().IsProduction(),
		EnableResponseBody: false,
		MaxBodySize:        1024,
	}))
	r.Use(gin.Recovery())

	// Register routes
	apiGroup := r.Group("/api/v1")
	userHandler.RegisterRoutes(apiGroup)
	menuHandler.RegisterRoutes(apiGroup)
	permissionHandler.RegisterRoutes(apiGroup)
	roleHandler.RegisterRoutes(apiGroup)
	activityHandler.RegisterRoutes(apiGroup)

	// Add health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "timestamp": time.Now().Unix()})
	})

	// Graceful shutdown setup
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server().Port()),
		Handler:        r,
		ReadTimeout:    cfg.Server().ReadTimeout(),
		WriteTimeout:   cfg.Server().WriteTimeout(),
		IdleTimeout:    cfg.Server().IdleTimeout(),
		MaxHeaderBytes: cfg.Server().MaxHeaderBytes(),
	}

	// Run server in goroutine
	go func() {
		logger.Info("Starting HTTP server",
			log.Int("port", cfg.Server().Port()),
			log.String("host", cfg.Server().Host()),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", log.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", log.Error(err))
	} else {
		logger.Info("Server exited gracefully")
	}
}
