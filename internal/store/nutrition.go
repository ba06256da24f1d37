package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// SaveMeal performs the optimistic local write for a logged meal. A missing
// id is assigned from the id provider and a missing time defaults to now;
// the row always lands pending, even when it replaces a confirmed copy.
func (s *Store) SaveMeal(ctx context.Context, meal entity.Meal) (entity.Meal, error) {
	const op = "store.save_meal"
	if _, err := entity.NewUserID(meal.UserID); err != nil {
		return entity.Meal{}, s.fail(op, "invalid_user_id", err)
	}
	if meal.ID == "" {
		id, err := s.nextID(op)
		if err != nil {
			return entity.Meal{}, err
		}
		meal.ID = id
	}
	if meal.Time == "" {
		meal.Time = s.timestamp()
	}
	meal.Synced = entity.SyncPending
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&meal).Error; err != nil {
		return entity.Meal{}, s.fail(op, "write_failed", err, zap.String("meal_id", meal.ID))
	}
	return meal, nil
}

// MealsForDay returns the user's meals within the device-local calendar day
// containing the given instant, most recent first. Pending rows are
// included: the caller sees its own writes immediately.
func (s *Store) MealsForDay(ctx context.Context, userID string, day time.Time) ([]entity.Meal, error) {
	const op = "store.meals_for_day"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	start, end := dayWindow(day)
	var meals []entity.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND time >= ? AND time < ?", userID, start, end).
		Order("time DESC").
		Find(&meals).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return meals, nil
}

// UnsyncedMeals returns the user's meals still awaiting a push.
func (s *Store) UnsyncedMeals(ctx context.Context, userID string) ([]entity.Meal, error) {
	const op = "store.unsynced_meals"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var meals []entity.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND synced = ?", userID, entity.SyncPending).
		Find(&meals).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return meals, nil
}

// MarkMealsSynced records server acknowledgement for the given meal ids.
func (s *Store) MarkMealsSynced(ctx context.Context, ids []string) error {
	return s.markRowsSynced(ctx, "store.mark_meals_synced", &entity.Meal{}, ids)
}
