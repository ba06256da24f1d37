package store

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// SaveProfile performs an optimistic local write of the profile; the row is
// marked pending until the next successful profile push.
func (s *Store) SaveProfile(ctx context.Context, profile entity.UserProfile) (entity.UserProfile, error) {
	const op = "store.save_profile"
	if _, err := entity.NewUserID(profile.UID); err != nil {
		return entity.UserProfile{}, s.fail(op, "invalid_user_id", err)
	}
	profile.Synced = entity.SyncPending
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&profile).Error; err != nil {
		return entity.UserProfile{}, s.fail(op, "write_failed", err, zap.String("user_id", profile.UID))
	}
	return profile, nil
}

// ApplyProfile stores a profile fetched from the server; it arrives already
// confirmed and fully replaces any local copy, pending or not.
func (s *Store) ApplyProfile(ctx context.Context, profile entity.UserProfile) error {
	const op = "store.apply_profile"
	if _, err := entity.NewUserID(profile.UID); err != nil {
		return s.fail(op, "invalid_user_id", err)
	}
	profile.Synced = entity.SyncConfirmed
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&profile).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.String("user_id", profile.UID))
	}
	return nil
}

// Profile returns the cached profile, or found=false when none exists yet
// (new-install cold start).
func (s *Store) Profile(ctx context.Context, userID string) (entity.UserProfile, bool, error) {
	const op = "store.profile"
	if userID == "" {
		return entity.UserProfile{}, false, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var profile entity.UserProfile
	err := s.db.WithContext(ctx).Where("uid = ?", userID).Take(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.UserProfile{}, false, nil
	}
	if err != nil {
		return entity.UserProfile{}, false, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return profile, true, nil
}

// SetOnboarded flips the onboarding marker and leaves the rest of the
// profile untouched. The profile becomes pending so the flag propagates.
func (s *Store) SetOnboarded(ctx context.Context, userID string, onboarded bool) error {
	const op = "store.set_onboarded"
	if userID == "" {
		return s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	err := s.db.WithContext(ctx).
		Model(&entity.UserProfile{}).
		Where("uid = ?", userID).
		Updates(map[string]any{"has_onboarded": onboarded, "synced": entity.SyncPending}).Error
	if err != nil {
		return s.fail(op, "update_failed", err, zap.String("user_id", userID))
	}
	return nil
}

// UnsyncedProfile returns the profile if it has local edits awaiting push.
func (s *Store) UnsyncedProfile(ctx context.Context, userID string) (entity.UserProfile, bool, error) {
	const op = "store.unsynced_profile"
	if userID == "" {
		return entity.UserProfile{}, false, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var profile entity.UserProfile
	err := s.db.WithContext(ctx).
		Where("uid = ? AND synced = ?", userID, entity.SyncPending).
		Take(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.UserProfile{}, false, nil
	}
	if err != nil {
		return entity.UserProfile{}, false, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return profile, true, nil
}

// MarkProfileSynced records that the server acknowledged the profile push.
func (s *Store) MarkProfileSynced(ctx context.Context, userID string) error {
	const op = "store.mark_profile_synced"
	if userID == "" {
		return s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	err := s.db.WithContext(ctx).
		Model(&entity.UserProfile{}).
		Where("uid = ?", userID).
		Update("synced", entity.SyncConfirmed).Error
	if err != nil {
		return s.fail(op, "update_failed", err, zap.String("user_id", userID))
	}
	return nil
}
