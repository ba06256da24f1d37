// Package reconciler converges the local cache with the remote fitness API:
// full-collection pulls replace cached catalog and history data, and pushes
// drain rows the cache still marks pending. Remote failures never surface
// past the reconciler; they are logged, recorded in the cycle report, and
// retried on whatever trigger runs next.
package reconciler

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/healthfitlab/fitsync/internal/entity"
	"github.com/healthfitlab/fitsync/internal/remote"
	"github.com/healthfitlab/fitsync/internal/store"
)

var (
	errMissingStore  = errors.New("reconciler: store is required")
	errMissingClient = errors.New("reconciler: remote client is required")
)

// Config wires the reconciler's collaborators.
type Config struct {
	Store  *store.Store
	Client *remote.Client
	UserID string
	Logger *zap.Logger
}

// Reconciler drives pull and push cycles for one user.
type Reconciler struct {
	store  *store.Store
	client *remote.Client
	userID string
	logger *zap.Logger
}

// New validates the configuration and constructs a Reconciler.
func New(cfg Config) (*Reconciler, error) {
	if cfg.Store == nil {
		return nil, errMissingStore
	}
	if cfg.Client == nil {
		return nil, errMissingClient
	}
	if _, err := entity.NewUserID(cfg.UserID); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		store:  cfg.Store,
		client: cfg.Client,
		userID: cfg.UserID,
		logger: logger,
	}, nil
}

// CollectionResult records one collection's outcome within a cycle.
type CollectionResult struct {
	Collection string
	Records    int
	Err        error
}

// Report aggregates per-collection outcomes. Collections fail independently;
// one failure never aborts the rest of the cycle.
type Report struct {
	Collections []CollectionResult
}

// Failed returns the results whose collection errored.
func (r Report) Failed() []CollectionResult {
	var failed []CollectionResult
	for _, result := range r.Collections {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}
	return failed
}

// Merge appends another report's results.
func (r *Report) Merge(other Report) {
	r.Collections = append(r.Collections, other.Collections...)
}

// run executes one collection step and records its outcome in the report.
func (r *Reconciler) run(ctx context.Context, report *Report, collection string, step func(context.Context) (int, error)) {
	records, err := step(ctx)
	r.record(report, collection, records, err)
}

func (r *Reconciler) record(report *Report, collection string, records int, err error) {
	if err != nil {
		r.logger.Warn("collection sync failed",
			zap.String("collection", collection),
			zap.Error(err))
	} else {
		r.logger.Debug("collection synced",
			zap.String("collection", collection),
			zap.Int("records", records))
	}
	report.Collections = append(report.Collections, CollectionResult{
		Collection: collection,
		Records:    records,
		Err:        err,
	})
}

// Sync runs one full cycle: catalog pull, user-data pull, then the pushes.
func (r *Reconciler) Sync(ctx context.Context) Report {
	report := r.PullCatalog(ctx)
	report.Merge(r.PullUserData(ctx))
	report.Merge(r.PushUnsynced(ctx))
	report.Merge(r.PushChat(ctx))
	return report
}
