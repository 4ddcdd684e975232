package api

import (
	"log"

	"github.com/LifeDrop/donor_service/config"
	"github.com/LifeDrop/donor_service/infra/queue"
	"github.com/LifeDrop/donor_service/internal/api/rest/handlers"
	"github.com/LifeDrop/donor_service/internal/domain"
	"github.com/LifeDrop/donor_service/internal/helper"
	"github.com/LifeDrop/donor_service/internal/repository"
	"github.com/LifeDrop/donor_service/internal/services"
	"github.com/LifeDrop/donor_service/internal/session"
	"github.com/LifeDrop/donor_service/pkg/cloudinary"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION (guarded by advisory lock) ----------
	const migrateLockID int64 = 20260815

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.LoginActivity{},
		&domain.BloodRequest{},
		&domain.Notification{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	sessionStore := session.NewStore(redisClient, cfg.SessionIdleTimeout, cfg.SessionMaxAge)

	mailProducer := queue.NewProducer(cfg.KafkaBroker, cfg.MailTopic, cfg.KafkaUsername, cfg.KafkaPassword)
	requestProducer := queue.NewProducer(cfg.KafkaBroker, cfg.RequestTopic, cfg.KafkaUsername, cfg.KafkaPassword)

	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	uploader := cloudinary.NewCloudinaryUploader(cld)

	authHelper := helper.SetupAuth(cfg.AuthSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewLoginActivityRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	requestRepo := repository.NewBloodRequestRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(
		userRepo,
		activityRepo,
		mailProducer,
		uploader,
		authHelper,
		cfg.VerifyBaseURL,
		cfg.ResetBaseURL,
	)
	notificationSvc := services.NewNotificationService(notificationRepo)
	requestSvc := services.NewRequestService(requestRepo, requestProducer)

	// ---------- Handlers ----------
	authHandler := handlers.NewAuthHandler(userSvc, sessionStore, cfg.SessionMaxAge)
	profileHandler := handlers.NewProfileHandler(userSvc)
	notificationHandler := handlers.NewNotificationHandler(notificationSvc)
	requestHandler := handlers.NewRequestHandler(requestSvc, userSvc)
	dashboardHandler := handlers.NewDashboardHandler(userSvc, notificationSvc, requestSvc, userRepo, activityRepo)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	handlers.SetupRoutes(app, sessionStore, authHandler, profileHandler, notificationHandler, requestHandler, dashboardHandler)

	// ---------- Listen ----------
	log.Println("listening on", cfg.ServerPort)
	log.Fatal(app.Listen(cfg.ServerPort))
}
