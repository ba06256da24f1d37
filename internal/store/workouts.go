package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// SaveCompletedWorkout performs the optimistic local write for a finished
// session.
func (s *Store) SaveCompletedWorkout(ctx context.Context, workout entity.CompletedWorkout) (entity.CompletedWorkout, error) {
	const op = "store.save_completed_workout"
	if _, err := entity.NewUserID(workout.UserID); err != nil {
		return entity.CompletedWorkout{}, s.fail(op, "invalid_user_id", err)
	}
	if workout.ID == "" {
		id, err := s.nextID(op)
		if err != nil {
			return entity.CompletedWorkout{}, err
		}
		workout.ID = id
	}
	if workout.Date == "" {
		workout.Date = s.timestamp()
	}
	workout.Synced = entity.SyncPending
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&workout).Error; err != nil {
		return entity.CompletedWorkout{}, s.fail(op, "write_failed", err, zap.String("workout_id", workout.ID))
	}
	return workout, nil
}

// ApplyCompletedWorkouts stores workout history fetched from the server;
// the rows arrive already confirmed.
func (s *Store) ApplyCompletedWorkouts(ctx context.Context, workouts []entity.CompletedWorkout) error {
	const op = "store.apply_completed_workouts"
	if len(workouts) == 0 {
		return nil
	}
	for i := range workouts {
		workouts[i].Synced = entity.SyncConfirmed
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&workouts).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(workouts)))
	}
	return nil
}

// CompletedWorkouts returns the user's workout history, most recent first.
func (s *Store) CompletedWorkouts(ctx context.Context, userID string) ([]entity.CompletedWorkout, error) {
	const op = "store.completed_workouts"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var workouts []entity.CompletedWorkout
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&workouts).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return workouts, nil
}

// UnsyncedCompletedWorkouts returns sessions still awaiting a push.
func (s *Store) UnsyncedCompletedWorkouts(ctx context.Context, userID string) ([]entity.CompletedWorkout, error) {
	const op = "store.unsynced_completed_workouts"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var workouts []entity.CompletedWorkout
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND synced = ?", userID, entity.SyncPending).
		Find(&workouts).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return workouts, nil
}

// MarkCompletedWorkoutsSynced records server acknowledgement for the given ids.
func (s *Store) MarkCompletedWorkoutsSynced(ctx context.Context, ids []string) error {
	return s.markRowsSynced(ctx, "store.mark_completed_workouts_synced", &entity.CompletedWorkout{}, ids)
}

// SaveCustomWorkout performs the optimistic local write for a user-built
// workout.
func (s *Store) SaveCustomWorkout(ctx context.Context, workout entity.CustomWorkout) (entity.CustomWorkout, error) {
	const op = "store.save_custom_workout"
	if _, err := entity.NewUserID(workout.UserID); err != nil {
		return entity.CustomWorkout{}, s.fail(op, "invalid_user_id", err)
	}
	if workout.ID == "" {
		id, err := s.nextID(op)
		if err != nil {
			return entity.CustomWorkout{}, err
		}
		workout.ID = id
	}
	workout.Synced = entity.SyncPending
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&workout).Error; err != nil {
		return entity.CustomWorkout{}, s.fail(op, "write_failed", err, zap.String("workout_id", workout.ID))
	}
	return workout, nil
}

// CustomWorkouts returns the user's own workouts.
func (s *Store) CustomWorkouts(ctx context.Context, userID string) ([]entity.CustomWorkout, error) {
	const op = "store.custom_workouts"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var workouts []entity.CustomWorkout
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&workouts).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return workouts, nil
}

// SaveExerciseRecord performs the optimistic local write for a personal best.
func (s *Store) SaveExerciseRecord(ctx context.Context, record entity.ExerciseRecord) (entity.ExerciseRecord, error) {
	const op = "store.save_exercise_record"
	if _, err := entity.NewUserID(record.UserID); err != nil {
		return entity.ExerciseRecord{}, s.fail(op, "invalid_user_id", err)
	}
	if record.ID == "" {
		id, err := s.nextID(op)
		if err != nil {
			return entity.ExerciseRecord{}, err
		}
		record.ID = id
	}
	if record.Date == "" {
		record.Date = s.timestamp()
	}
	record.Synced = entity.SyncPending
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&record).Error; err != nil {
		return entity.ExerciseRecord{}, s.fail(op, "write_failed", err, zap.String("record_id", record.ID))
	}
	return record, nil
}

// ExerciseRecords returns the user's personal bests, most recent first.
// A non-empty exerciseName narrows to one exercise.
func (s *Store) ExerciseRecords(ctx context.Context, userID, exerciseName string) ([]entity.ExerciseRecord, error) {
	const op = "store.exercise_records"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if exerciseName != "" {
		query = query.Where("exercise_name = ?", exerciseName)
	}
	var records []entity.ExerciseRecord
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return records, nil
}

// SaveProgramEnrollment performs the optimistic local write for a program
// enrollment or progress update.
func (s *Store) SaveProgramEnrollment(ctx context.Context, enrollment entity.ProgramEnrollment) (entity.ProgramEnrollment, error) {
	const op = "store.save_program_enrollment"
	if _, err := entity.NewUserID(enrollment.UserID); err != nil {
		return entity.ProgramEnrollment{}, s.fail(op, "invalid_user_id", err)
	}
	if enrollment.ID == "" {
		id, err := s.nextID(op)
		if err != nil {
			return entity.ProgramEnrollment{}, err
		}
		enrollment.ID = id
	}
	enrollment.Synced = entity.SyncPending
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&enrollment).Error; err != nil {
		return entity.ProgramEnrollment{}, s.fail(op, "write_failed", err, zap.String("enrollment_id", enrollment.ID))
	}
	return enrollment, nil
}

// ProgramEnrollments returns the user's program enrollments.
func (s *Store) ProgramEnrollments(ctx context.Context, userID string) ([]entity.ProgramEnrollment, error) {
	const op = "store.program_enrollments"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var enrollments []entity.ProgramEnrollment
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&enrollments).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return enrollments, nil
}

// UnsyncedProgramEnrollments returns enrollments still awaiting a push.
func (s *Store) UnsyncedProgramEnrollments(ctx context.Context, userID string) ([]entity.ProgramEnrollment, error) {
	const op = "store.unsynced_program_enrollments"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var enrollments []entity.ProgramEnrollment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND synced = ?", userID, entity.SyncPending).
		Find(&enrollments).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return enrollments, nil
}

// MarkProgramEnrollmentsSynced records server acknowledgement for the given ids.
func (s *Store) MarkProgramEnrollmentsSynced(ctx context.Context, ids []string) error {
	return s.markRowsSynced(ctx, "store.mark_program_enrollments_synced", &entity.ProgramEnrollment{}, ids)
}
