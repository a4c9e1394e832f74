package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"prepvio_backend/internal/logger"
	"prepvio_backend/internal/models"
)

// Connect opens the postgres pool and runs migrations.
func Connect(dsn string, env string) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if env == "development" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("database connected")
	return db, nil
}

// Migrate applies the schema. uuid_generate_v4 needs the uuid-ossp
// extension.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to enable uuid-ossp: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Plan{},
		&models.Payment{},
		&models.Subscription{},
		&models.Department{},
		&models.Employee{},
		&models.Category{},
		&models.Course{},
		&models.Ticket{},
		&models.Conversation{},
		&models.Message{},
		&models.InterviewSession{},
		&models.TranscriptEntry{},
		&models.SolvedProblem{},
		&models.Highlight{},
		&models.Notification{},
		&models.CalendarEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
