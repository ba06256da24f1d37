package store

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// SavePreferences replaces the user's settings row. Every edit resets the
// flag to pending, even when the previous copy was already confirmed.
func (s *Store) SavePreferences(ctx context.Context, prefs entity.Preferences) (entity.Preferences, error) {
	const op = "store.save_preferences"
	if _, err := entity.NewUserID(prefs.UserID); err != nil {
		return entity.Preferences{}, s.fail(op, "invalid_user_id", err)
	}
	prefs.Synced = entity.SyncPending
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&prefs).Error; err != nil {
		return entity.Preferences{}, s.fail(op, "write_failed", err, zap.String("user_id", prefs.UserID))
	}
	return prefs, nil
}

// Preferences returns the cached settings row, or found=false when the user
// has never saved preferences on this device.
func (s *Store) Preferences(ctx context.Context, userID string) (entity.Preferences, bool, error) {
	const op = "store.preferences"
	if userID == "" {
		return entity.Preferences{}, false, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var prefs entity.Preferences
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Take(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Preferences{}, false, nil
	}
	if err != nil {
		return entity.Preferences{}, false, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return prefs, true, nil
}

// UnsyncedPreferences returns the settings row if it has edits awaiting push.
func (s *Store) UnsyncedPreferences(ctx context.Context, userID string) (entity.Preferences, bool, error) {
	const op = "store.unsynced_preferences"
	if userID == "" {
		return entity.Preferences{}, false, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var prefs entity.Preferences
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND synced = ?", userID, entity.SyncPending).
		Take(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Preferences{}, false, nil
	}
	if err != nil {
		return entity.Preferences{}, false, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return prefs, true, nil
}

// MarkPreferencesSynced records that the server acknowledged the settings push.
func (s *Store) MarkPreferencesSynced(ctx context.Context, userID string) error {
	const op = "store.mark_preferences_synced"
	if userID == "" {
		return s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	err := s.db.WithContext(ctx).
		Model(&entity.Preferences{}).
		Where("user_id = ?", userID).
		Update("synced", entity.SyncConfirmed).Error
	if err != nil {
		return s.fail(op, "update_failed", err, zap.String("user_id", userID))
	}
	return nil
}
