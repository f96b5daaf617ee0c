package v1

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/KBesada24/CSC430-SWE/shared/utils"
	"github.com/KBesada24/CSC430-SWE/v1/models"
)

// DatabaseConfig holds GORM database connection configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	Username        string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// NewDatabaseConfig creates the database configuration from the environment
func NewDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:            utils.GetEnvOrDefault("DB_HOST", "localhost"),
		Port:            utils.GetEnvOrDefault("DB_PORT", "5432"),
		Username:        utils.GetEnvOrDefault("DB_USERNAME", "postgres"),
		Password:        utils.GetEnvOrDefault("DB_PASSWORD", "password"),
		Database:        utils.GetEnvOrDefault("DB_NAME", "clubhub"),
		SSLMode:         utils.GetEnvOrDefault("DB_SSLMODE", "require"),
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// ConnectGormDB establishes a GORM connection to PostgreSQL.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey; the membership and invite engines rely on that
// to turn duplicate inserts into conflicts.
func ConnectGormDB(config *DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.Username, config.Password, config.Database, config.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Connected to PostgreSQL database",
		"host", config.Host,
		"port", config.Port,
		"database", config.Database)

	if os.Getenv("RUN_MIGRATION") == "true" {
		slog.Info("Running GORM auto-migration")
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to run auto-migration: %w", err)
		}
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Student{},
		&models.Club{},
		&models.Membership{},
		&models.InviteToken{},
		&models.Event{},
		&models.Rsvp{},
		&models.Notification{},
		&models.Review{},
		&models.Message{},
	)
}
