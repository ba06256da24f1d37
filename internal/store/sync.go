package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// markRowsSynced flips the sync flag to confirmed for the given ids within
// one table. Unknown ids are silently skipped; an empty id list is a no-op.
func (s *Store) markRowsSynced(ctx context.Context, operation string, model any, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Model(model).
		Where("id IN ?", ids).
		Update("synced", entity.SyncConfirmed).Error
	if err != nil {
		return s.fail(operation, "update_failed", err, zap.Int("count", len(ids)))
	}
	return nil
}
