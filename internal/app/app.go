package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"churchconnect/internal/config"
	"churchconnect/internal/handlers"
	"churchconnect/internal/middleware"
	"churchconnect/internal/pdf"
	"churchconnect/internal/repositories"
	"churchconnect/internal/routes"
	"churchconnect/internal/services"
	"churchconnect/internal/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "churchconnect/docs"
)

func Run() {
	cfg := config.LoadConfig()
	middleware.SetJWTKey([]byte(cfg.JWT.Secret))

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("db open failed: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("db close failed: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	codeRepo := repositories.NewVerificationCodeRepository(db)
	churchRepo := repositories.NewChurchRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	availabilityRepo := repositories.NewAvailabilityRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	postRepo := repositories.NewPostRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// === Services ===
	authService := services.NewAuthService([]byte(cfg.JWT.Secret))
	emailService := services.NewEmailService(cfg.Email)
	userService := services.NewUserService(userRepo, authService)

	emailCodes := services.NewEmailVerificationService(codeRepo, emailService)
	resetCodes := services.NewPasswordResetCodeService(codeRepo, emailService)
	loginCodes := services.NewLoginCodeService(codeRepo, emailService)

	churchService := services.NewChurchService(churchRepo, serviceRepo, availabilityRepo)

	telegramService := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)
	bookingService := services.NewBookingService(bookingRepo, serviceRepo, availabilityRepo, notificationRepo, telegramService)

	feedService := services.NewFeedService(postRepo, followRepo, churchRepo, userRepo, notificationRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	adminService := services.NewAdminService(userRepo, churchRepo, bookingRepo, postRepo)

	psgcClient := utils.NewPSGCClient(cfg.PSGC.BaseURL, time.Duration(cfg.PSGC.CacheMinutes)*time.Minute)
	pdfGen := pdf.NewDocumentGenerator(cfg.Files.RootDir)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, loginCodes)
	userHandler := handlers.NewUserHandler(userService, authService, emailCodes)
	verifyHandler := handlers.NewVerifyHandler(emailCodes, userService)
	passwordHandler := handlers.NewPasswordHandler(resetCodes, userService)
	addressHandler := handlers.NewAddressHandler(psgcClient)
	churchHandler := handlers.NewChurchHandler(churchService)
	bookingHandler := handlers.NewBookingHandler(bookingService, churchService, userService, pdfGen)
	feedHandler := handlers.NewFeedHandler(feedService, churchService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(adminService, userService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		userHandler,
		verifyHandler,
		passwordHandler,
		addressHandler,
		churchHandler,
		bookingHandler,
		feedHandler,
		notificationHandler,
		adminHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
