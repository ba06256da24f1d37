package store

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// DailyTotals is the aggregate payload written to today's daily_stats row.
type DailyTotals struct {
	Calories int
	Minutes  int
	Workouts int
	Water    int
	Sleep    float64
}

// SaveDailyStats replaces today's aggregate row for the user. The row is
// keyed by the device-local calendar date taken from the store's clock, so
// a save after local midnight starts a new row.
func (s *Store) SaveDailyStats(ctx context.Context, userID string, totals DailyTotals) (entity.DailyStats, error) {
	const op = "store.save_daily_stats"
	if _, err := entity.NewUserID(userID); err != nil {
		return entity.DailyStats{}, s.fail(op, "invalid_user_id", err)
	}
	stats := entity.DailyStats{
		UserID:   userID,
		Date:     s.localDate(),
		Calories: totals.Calories,
		Minutes:  totals.Minutes,
		Workouts: totals.Workouts,
		Water:    totals.Water,
		Sleep:    totals.Sleep,
		Synced:   entity.SyncPending,
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&stats).Error; err != nil {
		return entity.DailyStats{}, s.fail(op, "write_failed", err,
			zap.String("user_id", userID), zap.String("date", stats.Date))
	}
	return stats, nil
}

// DailyStats returns the aggregate row for the given date, or found=false
// when the user has no activity recorded for that day.
func (s *Store) DailyStats(ctx context.Context, userID, date string) (entity.DailyStats, bool, error) {
	const op = "store.daily_stats"
	if userID == "" {
		return entity.DailyStats{}, false, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	if date == "" {
		date = s.localDate()
	}
	var stats entity.DailyStats
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Take(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.DailyStats{}, false, nil
	}
	if err != nil {
		return entity.DailyStats{}, false, s.fail(op, "query_failed", err,
			zap.String("user_id", userID), zap.String("date", date))
	}
	return stats, true, nil
}

// SaveWaterLog performs the optimistic local write for a water entry.
func (s *Store) SaveWaterLog(ctx context.Context, log entity.WaterLog) (entity.WaterLog, error) {
	const op = "store.save_water_log"
	if _, err := entity.NewUserID(log.UserID); err != nil {
		return entity.WaterLog{}, s.fail(op, "invalid_user_id", err)
	}
	if log.ID == "" {
		id, err := s.nextID(op)
		if err != nil {
			return entity.WaterLog{}, err
		}
		log.ID = id
	}
	if log.Timestamp == "" {
		log.Timestamp = s.timestamp()
	}
	log.Synced = entity.SyncPending
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&log).Error; err != nil {
		return entity.WaterLog{}, s.fail(op, "write_failed", err, zap.String("log_id", log.ID))
	}
	return log, nil
}

// ApplyWaterLogs stores water history fetched from the server.
func (s *Store) ApplyWaterLogs(ctx context.Context, logs []entity.WaterLog) error {
	const op = "store.apply_water_logs"
	if len(logs) == 0 {
		return nil
	}
	for i := range logs {
		logs[i].Synced = entity.SyncConfirmed
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&logs).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(logs)))
	}
	return nil
}

// WaterLogsForDay returns the user's water entries within the device-local
// calendar day containing the given instant, most recent first.
func (s *Store) WaterLogsForDay(ctx context.Context, userID string, day time.Time) ([]entity.WaterLog, error) {
	const op = "store.water_logs_for_day"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	start, end := dayWindow(day)
	var logs []entity.WaterLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, start, end).
		Order("timestamp DESC").
		Find(&logs).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return logs, nil
}

// UnsyncedWaterLogs returns water entries still awaiting a push.
func (s *Store) UnsyncedWaterLogs(ctx context.Context, userID string) ([]entity.WaterLog, error) {
	const op = "store.unsynced_water_logs"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var logs []entity.WaterLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND synced = ?", userID, entity.SyncPending).
		Find(&logs).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return logs, nil
}

// MarkWaterLogsSynced records server acknowledgement for the given ids.
func (s *Store) MarkWaterLogsSynced(ctx context.Context, ids []string) error {
	return s.markRowsSynced(ctx, "store.mark_water_logs_synced", &entity.WaterLog{}, ids)
}

// SaveSleepLog performs the optimistic local write for a sleep entry.
func (s *Store) SaveSleepLog(ctx context.Context, log entity.SleepLog) (entity.SleepLog, error) {
	const op = "store.save_sleep_log"
	if _, err := entity.NewUserID(log.UserID); err != nil {
		return entity.SleepLog{}, s.fail(op, "invalid_user_id", err)
	}
	if log.ID == "" {
		id, err := s.nextID(op)
		if err != nil {
			return entity.SleepLog{}, err
		}
		log.ID = id
	}
	log.Synced = entity.SyncPending
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&log).Error; err != nil {
		return entity.SleepLog{}, s.fail(op, "write_failed", err, zap.String("log_id", log.ID))
	}
	return log, nil
}

// ApplySleepLogs stores sleep history fetched from the server.
func (s *Store) ApplySleepLogs(ctx context.Context, logs []entity.SleepLog) error {
	const op = "store.apply_sleep_logs"
	if len(logs) == 0 {
		return nil
	}
	for i := range logs {
		logs[i].Synced = entity.SyncConfirmed
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&logs).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(logs)))
	}
	return nil
}

const defaultSleepLogLimit = 30

// SleepLogs returns the user's most recent sleep entries.
func (s *Store) SleepLogs(ctx context.Context, userID string, limit int) ([]entity.SleepLog, error) {
	const op = "store.sleep_logs"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	if limit <= 0 {
		limit = defaultSleepLogLimit
	}
	var logs []entity.SleepLog
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sleep_time DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return logs, nil
}

// UnsyncedSleepLogs returns sleep entries still awaiting a push.
func (s *Store) UnsyncedSleepLogs(ctx context.Context, userID string) ([]entity.SleepLog, error) {
	const op = "store.unsynced_sleep_logs"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var logs []entity.SleepLog
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND synced = ?", userID, entity.SyncPending).
		Find(&logs).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return logs, nil
}

// MarkSleepLogsSynced records server acknowledgement for the given ids.
func (s *Store) MarkSleepLogsSynced(ctx context.Context, ids []string) error {
	return s.markRowsSynced(ctx, "store.mark_sleep_logs_synced", &entity.SleepLog{}, ids)
}

// SaveBodyMeasurement performs the optimistic local write for a body
// composition snapshot.
func (s *Store) SaveBodyMeasurement(ctx context.Context, measurement entity.BodyMeasurement) (entity.BodyMeasurement, error) {
	const op = "store.save_body_measurement"
	if _, err := entity.NewUserID(measurement.UserID); err != nil {
		return entity.BodyMeasurement{}, s.fail(op, "invalid_user_id", err)
	}
	if measurement.ID == "" {
		id, err := s.nextID(op)
		if err != nil {
			return entity.BodyMeasurement{}, err
		}
		measurement.ID = id
	}
	if measurement.Date == "" {
		measurement.Date = s.timestamp()
	}
	measurement.Synced = entity.SyncPending
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&measurement).Error; err != nil {
		return entity.BodyMeasurement{}, s.fail(op, "write_failed", err, zap.String("measurement_id", measurement.ID))
	}
	return measurement, nil
}

// ApplyBodyMeasurements stores measurement history fetched from the server.
func (s *Store) ApplyBodyMeasurements(ctx context.Context, measurements []entity.BodyMeasurement) error {
	const op = "store.apply_body_measurements"
	if len(measurements) == 0 {
		return nil
	}
	for i := range measurements {
		measurements[i].Synced = entity.SyncConfirmed
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&measurements).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(measurements)))
	}
	return nil
}

// BodyMeasurements returns the user's measurement history, most recent first.
func (s *Store) BodyMeasurements(ctx context.Context, userID string) ([]entity.BodyMeasurement, error) {
	const op = "store.body_measurements"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var measurements []entity.BodyMeasurement
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&measurements).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return measurements, nil
}

// UnsyncedBodyMeasurements returns snapshots still awaiting a push.
func (s *Store) UnsyncedBodyMeasurements(ctx context.Context, userID string) ([]entity.BodyMeasurement, error) {
	const op = "store.unsynced_body_measurements"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var measurements []entity.BodyMeasurement
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND synced = ?", userID, entity.SyncPending).
		Find(&measurements).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return measurements, nil
}

// MarkBodyMeasurementsSynced records server acknowledgement for the given ids.
func (s *Store) MarkBodyMeasurementsSynced(ctx context.Context, ids []string) error {
	return s.markRowsSynced(ctx, "store.mark_body_measurements_synced", &entity.BodyMeasurement{}, ids)
}
