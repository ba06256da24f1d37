package database

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/healthfitlab/fitsync/internal/entity"
)

const (
	migrationBackfillInitialWeight = "2026-05-12_backfill_profile_initial_weight"
	migrationAssignChatOwners      = "2026-05-12_assign_chat_message_owners"
)

type migrationRecord struct {
	Name             string `gorm:"column:name;primaryKey;size:190;not null"`
	AppliedAtSeconds int64  `gorm:"column:applied_at_s;not null"`
}

func (migrationRecord) TableName() string {
	return "db_migrations"
}

type migrationDefinition struct {
	name  string
	apply func(*gorm.DB) error
}

func applyMigrations(db *gorm.DB, logger *zap.Logger) error {
	migrations := []migrationDefinition{
		{name: migrationBackfillInitialWeight, apply: backfillInitialWeight},
		{name: migrationAssignChatOwners, apply: assignChatMessageOwners},
	}

	for _, migration := range migrations {
		var record migrationRecord
		err := db.Where("name = ?", migration.name).Take(&record).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := migration.apply(db); err != nil {
			return err
		}
		appliedAt := time.Now().UTC().Unix()
		if err := db.Create(&migrationRecord{Name: migration.name, AppliedAtSeconds: appliedAt}).Error; err != nil {
			return err
		}
		if logger != nil {
			logger.Info("database migration applied", zap.String("migration", migration.name))
		}
	}
	return nil
}

// Profiles created before initial weight was tracked carry a zero value;
// seed it from the current weight so progress math has a baseline.
func backfillInitialWeight(db *gorm.DB) error {
	return db.Model(&entity.UserProfile{}).
		Where("initial_weight IS NULL OR initial_weight = 0").
		Update("initial_weight", gorm.Expr("weight")).Error
}

// Chat rows written before messages were scoped to a user have an empty
// user_id. When the device holds exactly one profile, those rows belong
// to it; with zero or several profiles ownership is ambiguous and the
// rows are left alone.
func assignChatMessageOwners(db *gorm.DB) error {
	var profiles []entity.UserProfile
	if err := db.Limit(2).Find(&profiles).Error; err != nil {
		return err
	}
	if len(profiles) != 1 {
		return nil
	}
	return db.Model(&entity.ChatMessage{}).
		Where("user_id IS NULL OR user_id = ''").
		Update("user_id", profiles[0].UID).Error
}
