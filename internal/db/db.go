package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/PolishedStudio01/salon-scheduler/internal/config"
	"github.com/PolishedStudio01/salon-scheduler/internal/models"
	"github.com/PolishedStudio01/salon-scheduler/internal/timezone"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.MasterService{},
		&models.Design{},
		&models.ServiceDesignOption{},
		&models.TimeSlot{},
		&models.Order{},
		&models.DesignSnapshot{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	db.Exec(`
        UPDATE users
        SET timezone = ?
        WHERE role = 'master' AND (timezone IS NULL OR timezone = '')
    `, timezone.DefaultTimezone)

	return db
}
