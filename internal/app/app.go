package app

import (
	"errors"
	"fmt"

	"github.com/Yashdhankecha/Thryfto-sub001/database"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/auth"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/cache"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/config"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/email"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/handlers"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/logger"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/middleware"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/models"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/repositories"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/routes"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/services"
	"github.com/Yashdhankecha/Thryfto-sub001/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	// TranslateError turns driver-level unique violations into
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstOwner(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first owner account", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	redisClient := cache.NewRedisClient(cfg.Redis)

	serviceContainer := initializeServices(cfg, gormDB, redisClient)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg, redisClient)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client) *services.ServiceContainer {
	emailProvider := newEmailProvider(cfg)
	verifier := auth.NewGoogleVerifier(cfg.Google.ClientID)
	views := cache.NewViewTracker(redisClient)

	userRepo := repositories.NewUserRepository(gormDB)
	itemRepo := repositories.NewItemRepository(gormDB)
	transactionRepo := repositories.NewTransactionRepository(gormDB)
	coinRepo := repositories.NewCoinRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	couponRepo := repositories.NewCouponRepository(gormDB)
	analyticsRepo := repositories.NewAnalyticsRepository(gormDB)

	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(gormDB, userRepo, emailProvider, verifier),
		UserService:         services.NewUserService(userRepo),
		ItemService:         services.NewItemService(gormDB, itemRepo, notificationRepo, views, cfg.Coins),
		TransactionService:  services.NewTransactionService(gormDB, transactionRepo, itemRepo, userRepo, notificationRepo, emailProvider),
		CoinService:         services.NewCoinService(coinRepo),
		NotificationService: services.NewNotificationService(notificationRepo),
		CouponService:       services.NewCouponService(gormDB, couponRepo),
		AnalyticsService:    services.NewAnalyticsService(analyticsRepo),
		EmailProvider:       emailProvider,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, container.UserService),
		ItemHandler:         handlers.NewItemHandler(baseHandler, container.ItemService),
		TransactionHandler:  handlers.NewTransactionHandler(baseHandler, container.TransactionService),
		CoinHandler:         handlers.NewCoinHandler(baseHandler, container.CoinService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
		CouponHandler:       handlers.NewCouponHandler(baseHandler, container.CouponService),
		AnalyticsHandler:    handlers.NewAnalyticsHandler(baseHandler, container.AnalyticsService),
	}
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.Mode == "smtp" {
		provider, err := email.NewSMTPProvider(cfg.Email, email.NewTemplateManager())
		if err != nil {
			logger.Fatal("Failed to initialize SMTP provider", "error", err)
		}
		logger.Info("Email provider initialized", "mode", "smtp", "host", cfg.Email.SMTPHost)
		return provider
	}
	logger.Warn("Email running in log mode, no mail will be sent")
	return email.NewLogProvider()
}

func initializeGinRouter(cfg *config.Config, redisClient *redis.Client) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit, redisClient))
	return router
}

// seedFirstOwner guarantees there is an owner account to bootstrap the
// platform with. Does nothing when the credentials are not configured
// or the account already exists.
func seedFirstOwner(db *gorm.DB, cfg *config.Config) error {
	ownerEmail := cfg.FirstOwnerEmail
	ownerPassword := cfg.FirstOwnerPassword

	if ownerEmail == "" || ownerPassword == "" {
		logger.Warn("FIRST_OWNER_EMAIL or FIRST_OWNER_PASSWORD is not set, skipping owner seeding")
		return nil
	}

	var owner models.User
	result := db.Where("email = ?", ownerEmail).First(&owner)
	if result.Error == nil {
		logger.Info("Owner account already exists, skipping creation", "email", ownerEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for owner account: %w", result.Error)
	}

	hash, err := auth.HashPassword(ownerPassword)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	newOwner := &models.User{
		Name:         "Platform Owner",
		Email:        ownerEmail,
		PasswordHash: hash,
		Role:         models.UserRoleOwner,
		IsVerified:   true,
		IsActive:     true,
	}
	if err := db.Create(newOwner).Error; err != nil {
		return fmt.Errorf("failed to create owner account: %w", err)
	}

	logger.Info("Created first owner account", "email", ownerEmail)
	return nil
}
