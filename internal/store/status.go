package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// CacheStatus summarizes what the device currently holds: cached row counts
// per catalog collection and per-kind counts of rows awaiting push.
type CacheStatus struct {
	Catalog map[string]int64
	Pending map[string]int64
}

// Status reports cache and pending-push counts for the user. Catalog counts
// cover the whole cache since catalog data is not user-scoped.
func (s *Store) Status(ctx context.Context, userID string) (CacheStatus, error) {
	const op = "store.status"
	if userID == "" {
		return CacheStatus{}, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}

	status := CacheStatus{Catalog: map[string]int64{}, Pending: map[string]int64{}}

	catalogModels := map[string]any{
		"foods":                   &entity.Food{},
		"workouts":                &entity.Workout{},
		"exercises":               &entity.Exercise{},
		"recipes":                 &entity.Recipe{},
		"programs":                &entity.Program{},
		"program_workouts":        &entity.ProgramWorkout{},
		"achievement_definitions": &entity.AchievementDefinition{},
	}
	for name, model := range catalogModels {
		var count int64
		if err := s.db.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
			return CacheStatus{}, s.fail(op, "count_failed", err, zap.String("collection", name))
		}
		status.Catalog[name] = count
	}

	pendingModels := map[string]any{
		"meals":               &entity.Meal{},
		"completed_workouts":  &entity.CompletedWorkout{},
		"custom_workouts":     &entity.CustomWorkout{},
		"program_enrollments": &entity.ProgramEnrollment{},
		"exercise_records":    &entity.ExerciseRecord{},
		"daily_stats":         &entity.DailyStats{},
		"water_logs":          &entity.WaterLog{},
		"sleep_logs":          &entity.SleepLog{},
		"body_measurements":   &entity.BodyMeasurement{},
		"chat_messages":       &entity.ChatMessage{},
	}
	for name, model := range pendingModels {
		var count int64
		err := s.db.WithContext(ctx).
			Model(model).
			Where("user_id = ? AND synced = ?", userID, entity.SyncPending).
			Count(&count).Error
		if err != nil {
			return CacheStatus{}, s.fail(op, "count_failed", err, zap.String("collection", name))
		}
		status.Pending[name] = count
	}

	var pendingProfile int64
	err := s.db.WithContext(ctx).
		Model(&entity.UserProfile{}).
		Where("uid = ? AND synced = ?", userID, entity.SyncPending).
		Count(&pendingProfile).Error
	if err != nil {
		return CacheStatus{}, s.fail(op, "count_failed", err, zap.String("collection", "users"))
	}
	status.Pending["profile"] = pendingProfile

	var pendingPrefs int64
	err = s.db.WithContext(ctx).
		Model(&entity.Preferences{}).
		Where("user_id = ? AND synced = ?", userID, entity.SyncPending).
		Count(&pendingPrefs).Error
	if err != nil {
		return CacheStatus{}, s.fail(op, "count_failed", err, zap.String("collection", "user_preferences"))
	}
	status.Pending["preferences"] = pendingPrefs

	return status, nil
}
