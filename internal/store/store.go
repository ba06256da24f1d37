// Package store is the typed facade over the on-device cache. It is the only
// component that touches the local database: UI-facing callers read and
// optimistically write through it, and the reconciler drains pending rows
// and applies pulled collections through it. No method here ever performs
// network I/O.
package store

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errMissingDatabase = errors.New("database handle is required")
	noOpLogger         = zap.NewNop()
)

// ServiceError carries a dotted operation code alongside the cause.
type ServiceError struct {
	code string
	err  error
}

func (e *ServiceError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *ServiceError) Unwrap() error {
	return e.err
}

// Code returns the dotted operation code.
func (e *ServiceError) Code() string {
	return e.code
}

func newServiceError(operation, reason string, cause error) error {
	return &ServiceError{code: fmt.Sprintf("%s.%s", operation, reason), err: cause}
}

// StoreConfig wires the cache facade's dependencies.
type StoreConfig struct {
	Database   *gorm.DB
	Clock      func() time.Time
	IDProvider IDProvider
	Logger     *zap.Logger
}

// Store owns all reads and writes against the local cache.
type Store struct {
	db     *gorm.DB
	clock  func() time.Time
	ids    IDProvider
	logger *zap.Logger
}

// NewStore validates the configuration and constructs a Store. Clock,
// IDProvider and Logger default to time.Now, UUIDv7 ids and a no-op logger.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Database == nil {
		return nil, newServiceError("store.new", "missing_database", errMissingDatabase)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	ids := cfg.IDProvider
	if ids == nil {
		ids = NewUUIDProvider()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	return &Store{db: cfg.Database, clock: clock, ids: ids, logger: logger}, nil
}

// fail logs the failure with operation context and returns the wrapped error.
func (s *Store) fail(operation, reason string, err error, fields ...zap.Field) error {
	attrs := []zap.Field{
		zap.String("operation", operation),
		zap.String("reason", reason),
	}
	if err != nil {
		attrs = append(attrs, zap.Error(err))
	}
	attrs = append(attrs, fields...)
	s.logger.Error("store operation failed", attrs...)
	return newServiceError(operation, reason, err)
}

// nextID issues a client-generated id for optimistic writes that arrive
// without one.
func (s *Store) nextID(operation string) (string, error) {
	id, err := s.ids.NewID()
	if err != nil {
		return "", s.fail(operation, "id_generation_failed", err)
	}
	return id, nil
}

// replaceClause is the insert-or-replace upsert used for every keyed write:
// a later row with the same primary key fully supersedes the earlier one.
var replaceClause = clause.OnConflict{UpdateAll: true}

// timestamp returns the current instant as a UTC RFC 3339 string, the
// canonical form for all persisted timestamps.
func (s *Store) timestamp() string {
	return s.clock().UTC().Format(time.RFC3339)
}

// localDate returns the device-local calendar date used to key daily
// aggregates. The day boundary is local wall-clock midnight.
func (s *Store) localDate() string {
	return s.clock().Format("2006-01-02")
}

// dayWindow returns the UTC RFC 3339 bounds [start, end) of the device-local
// calendar day containing the given instant.
func dayWindow(day time.Time) (string, string) {
	year, month, dayOfMonth := day.Date()
	start := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	return start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)
}
