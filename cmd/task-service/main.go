package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/earnly/earnly-task-service/internal/config"
	delivery "github.com/earnly/earnly-task-service/internal/delivery/http"
	"github.com/earnly/earnly-task-service/internal/delivery/http/handlers"
	"github.com/earnly/earnly-task-service/internal/infrastructure/email"
	"github.com/earnly/earnly-task-service/internal/infrastructure/kafka"
	"github.com/earnly/earnly-task-service/internal/infrastructure/logger"
	"github.com/earnly/earnly-task-service/internal/infrastructure/metrics"
	"github.com/earnly/earnly-task-service/internal/infrastructure/migrate"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres/repository"
	"github.com/earnly/earnly-task-service/internal/usecase"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.TaskDB.MigrationPath != "" {
		if err := migrate.RunMigrations(db, cfg.TaskDB.MigrationPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Kafka is optional in local setups
	var publisher *kafka.DefaultKafkaPublisher
	if cfg.KafkaService.Enabled {
		brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
		publisher = kafka.NewDefaultKafkaPublisher(brokers)
	}

	taskMetrics := metrics.NewTaskMetrics()
	eventLogger := logger.NewPGSubmissionEventLogger(db)
	mailer := email.NewClient(cfg.EmailService.BaseURL, cfg.EmailService.APIKey, cfg.EmailService.FrontendURL)

	// Init repositories
	userRepo := repository.NewDefaultUserRepository(db)
	productRepo := repository.NewDefaultProductRepository(db)
	submissionRepo := repository.NewDefaultTaskSubmissionRepository(db)
	overrideRepo := repository.NewDefaultUserTaskOverrideRepository(db)
	bonusRepo := repository.NewDefaultReferralBonusRepository(db)
	depositRepo := repository.NewDefaultDepositRepository(db)
	withdrawalRepo := repository.NewDefaultWithdrawalRepository(db)
	adminRepo := repository.NewDefaultAdminRepository(db)
	resetRepo := repository.NewDefaultPasswordResetRepository(db)
	txManager := postgres.NewTxManager(db)

	// Init usecases
	taskUsecase := usecase.NewDefaultTaskUsecase(
		userRepo,
		productRepo,
		submissionRepo,
		overrideRepo,
		bonusRepo,
		txManager,
		publisher,
		eventLogger,
		taskMetrics,
	)
	authUsecase, err := usecase.NewDefaultAuthUsecase(userRepo, resetRepo, txManager, mailer)
	if err != nil {
		log.Fatalf("failed to init auth usecase: %v", err)
	}
	userUsecase := usecase.NewDefaultUserUsecase(userRepo, depositRepo, withdrawalRepo, publisher, taskMetrics)
	productUsecase := usecase.NewDefaultProductUsecase(productRepo, submissionRepo, overrideRepo)
	adminUsecase := usecase.NewDefaultAdminUsecase(
		adminRepo,
		userRepo,
		depositRepo,
		withdrawalRepo,
		submissionRepo,
		overrideRepo,
		taskUsecase,
		txManager,
		publisher,
		taskMetrics,
	)

	jwtTTL := time.Duration(cfg.JWT.TTLHours) * time.Hour

	router := delivery.NewRouter(delivery.RouterDeps{
		AuthHandler:    handlers.NewAuthHandler(authUsecase, cfg.JWT.Secret, jwtTTL),
		TaskHandler:    handlers.NewTaskHandler(taskUsecase),
		UserHandler:    handlers.NewUserHandler(userUsecase),
		ProductHandler: handlers.NewProductHandler(productUsecase),
		AdminHandler:   handlers.NewAdminHandler(adminUsecase, cfg.JWT.Secret, jwtTTL),
		UploadHandler:  handlers.NewUploadHandler(cfg.Upload),
		JWTSecret:      cfg.JWT.Secret,
		UploadDir:      cfg.Upload.Dir,
	})

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slog.Info("task service listening", "addr", addr, "env", cfg.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
