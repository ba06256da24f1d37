package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// ApplyAchievementUnlocks stores unlocks fetched from the server. Unlocks
// are granted server-side, so they always arrive confirmed. An unlock
// without an id gets the stable userId-achievementId composite.
func (s *Store) ApplyAchievementUnlocks(ctx context.Context, unlocks []entity.AchievementUnlock) error {
	const op = "store.apply_achievement_unlocks"
	if len(unlocks) == 0 {
		return nil
	}
	for i := range unlocks {
		if unlocks[i].ID == "" {
			unlocks[i].ID = unlocks[i].UserID + "-" + unlocks[i].AchievementID
		}
		unlocks[i].Synced = entity.SyncConfirmed
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&unlocks).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(unlocks)))
	}
	return nil
}

// AchievementUnlocks returns the user's earned achievements.
func (s *Store) AchievementUnlocks(ctx context.Context, userID string) ([]entity.AchievementUnlock, error) {
	const op = "store.achievement_unlocks"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var unlocks []entity.AchievementUnlock
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&unlocks).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return unlocks, nil
}

// ApplyNotifications stores notifications fetched from the server.
func (s *Store) ApplyNotifications(ctx context.Context, notifications []entity.Notification) error {
	const op = "store.apply_notifications"
	if len(notifications) == 0 {
		return nil
	}
	for i := range notifications {
		notifications[i].Synced = entity.SyncConfirmed
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&notifications).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(notifications)))
	}
	return nil
}

// Notifications returns the user's notifications, newest first.
func (s *Store) Notifications(ctx context.Context, userID string) ([]entity.Notification, error) {
	const op = "store.notifications"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var notifications []entity.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return notifications, nil
}

// MarkNotificationRead flips the local read marker. Read state is a device
// concern and never pushed.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	const op = "store.mark_notification_read"
	if id == "" {
		return s.fail(op, "missing_id", entity.ErrInvalidRecordID)
	}
	err := s.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
	if err != nil {
		return s.fail(op, "update_failed", err, zap.String("id", id))
	}
	return nil
}
