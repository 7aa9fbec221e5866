package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/dersapp/dersapp-backend/internal/config"
	"github.com/dersapp/dersapp-backend/internal/controller"
	"github.com/dersapp/dersapp-backend/internal/handler"
	"github.com/dersapp/dersapp-backend/internal/middleware"
	"github.com/dersapp/dersapp-backend/internal/repository"
	"github.com/dersapp/dersapp-backend/internal/service"
	"github.com/dersapp/dersapp-backend/pkg/database"
	"github.com/dersapp/dersapp-backend/pkg/email"
	"github.com/dersapp/dersapp-backend/pkg/logger"
	"github.com/dersapp/dersapp-backend/pkg/payment"
	"github.com/dersapp/dersapp-backend/pkg/utils"
)

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.LoadConfig()

	zapLogger, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db := database.NewDatabase(cfg.DatabaseURL)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	packageRepo := repository.NewLessonPackageRepository(db)
	purchaseRepo := repository.NewStudentPackageRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Gateway and email
	iyzicoService := payment.NewIyzicoService(
		cfg.Iyzico.APIKey,
		cfg.Iyzico.SecretKey,
		cfg.Iyzico.BaseURL,
	)
	emailService := email.NewEmailService(zapLogger)

	// Services
	authService := service.NewAuthService(userRepo, studentRepo, emailService, zapLogger)
	userService := service.NewUserService(userRepo, studentRepo)
	packageService := service.NewPackageService(packageRepo)
	paymentService := service.NewPaymentService(
		iyzicoService,
		packageRepo,
		userRepo,
		studentRepo,
		purchaseRepo,
		paymentRepo,
		emailService,
		cfg.FrontendURL+"/payment/callback",
		zapLogger,
	)

	reconciler := service.NewReconciler(
		paymentService,
		cfg.Reconcile.Interval,
		cfg.Reconcile.PendingTTL,
		zapLogger,
	)

	validator := utils.NewValidator()

	// Controllers
	authController := controller.NewAuthController(authService)
	userController := controller.NewUserController(userService)
	packageController := controller.NewPackageController(packageService)
	paymentController := controller.NewPaymentController(paymentService)

	// Handlers
	authHandler := handler.NewAuthHandler(authController, validator)
	userHandler := handler.NewUserHandler(userController)
	packageHandler := handler.NewPackageHandler(packageController)
	paymentHandler := handler.NewPaymentHandler(paymentController, validator)

	// Router
	app := fiber.New()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(fiberLogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	api.Get("/packages", packageHandler.GetActivePackages)
	api.Get("/packages/:id", packageHandler.GetPackageByID)

	// Gateway callback (public, the gateway posts the token here)
	api.Post("/payments/callback", paymentHandler.HandleCallback)

	// Mock endpoints bypass the gateway; never registered in production.
	if cfg.Env != "production" {
		api.Post("/payments/mock/success", paymentHandler.MockSuccess)
		api.Post("/payments/mock/fail", paymentHandler.MockFail)
	}

	// Protected routes
	api.Use(middleware.AuthMiddleware())
	{
		user := api.Group("/user")
		user.Get("/profile", userHandler.GetMyProfile)

		payments := api.Group("/payments")
		payments.Post("/initialize", paymentHandler.InitializeCheckout)
		payments.Get("/history", paymentHandler.GetPurchaseHistory)
	}

	if err := reconciler.Start(); err != nil {
		log.Fatalf("Failed to start payment reconciler: %v", err)
	}
	defer reconciler.Stop()

	log.Fatal(app.Listen(":" + cfg.Port))
}
