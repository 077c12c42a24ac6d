package postgres

import (
	"log"

	"github.com/earnly/earnly-task-service/internal/config"
	"github.com/earnly/earnly-task-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.TaskConfig) *gorm.DB {
	dsn := cfg.TaskDB.Dsn
	// TranslateError maps driver unique-violations to gorm.ErrDuplicatedKey,
	// which the submission repository relies on for concurrent duplicates.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.UserModel{},
		&models.AdminModel{},
		&models.ProductModel{},
		&models.UserTaskOverrideModel{},
		&models.TaskSubmissionModel{},
		&models.ReferralBonusModel{},
		&models.DepositModel{},
		&models.WithdrawalModel{},
		&models.PasswordResetModel{},
		&models.AdminActionModel{},
	)

	return db
}
