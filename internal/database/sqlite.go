package database

import (
	"fmt"

	sqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// OpenSQLite establishes the on-device SQLite connection and performs schema
// migrations. The pool is pinned to a single connection: the cache has one
// writer and SQLite serializes anyway.
func OpenSQLite(path string, logger *zap.Logger) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&entity.UserProfile{},
		&entity.Preferences{},
		&entity.Notification{},
		&entity.Food{},
		&entity.Workout{},
		&entity.Exercise{},
		&entity.Recipe{},
		&entity.Program{},
		&entity.ProgramWorkout{},
		&entity.AchievementDefinition{},
		&entity.Meal{},
		&entity.CompletedWorkout{},
		&entity.CustomWorkout{},
		&entity.ProgramEnrollment{},
		&entity.ExerciseRecord{},
		&entity.AchievementUnlock{},
		&entity.DailyStats{},
		&entity.WaterLog{},
		&entity.SleepLog{},
		&entity.BodyMeasurement{},
		&entity.ChatMessage{},
		&migrationRecord{},
	); err != nil {
		return nil, err
	}

	if err := applyMigrations(db, logger); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("database initialized", zap.String("path", path))
	}

	return db, nil
}
