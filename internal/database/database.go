package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/studyhub/backend/internal/config"
	"github.com/studyhub/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for all models plus the indexes GORM tags
// cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Post{},
		&models.Comment{},
		&models.PostVote{},
		&models.Note{},
		&models.NoteComment{},
		&models.NoteVote{},
		&models.UserReport{},
		&models.NoteReport{},
		&models.RoleRequest{},
		&models.Conversation{},
		&models.Message{},
		&models.SystemLog{},
	); err != nil {
		return err
	}

	// One pending role request per user, enforced at the storage level
	// so a query-then-insert race cannot create two pending rows.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_role_requests_pending
		 ON role_requests (user_id) WHERE status = 'pending'`,
	).Error
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
