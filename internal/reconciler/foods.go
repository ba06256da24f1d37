package reconciler

import (
	"context"

	"go.uber.org/zap"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// CreateCustomFood submits a user-defined food to the server and seeds the
// created row into the local catalog so it shows up in search right away.
// Unlike the tracked collections there is no offline queue for foods: the
// entry exists only once the server has accepted it and assigned an id.
func (r *Reconciler) CreateCustomFood(ctx context.Context, food entity.Food) (entity.Food, error) {
	created, err := r.client.CreateCustomFood(ctx, food)
	if err != nil {
		r.logger.Warn("custom food creation failed", zap.Error(err))
		return entity.Food{}, err
	}
	if err := r.store.ReplaceFoods(ctx, []entity.Food{created}); err != nil {
		return entity.Food{}, err
	}
	return created, nil
}
