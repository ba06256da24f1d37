package reconciler

import (
	"context"

	"go.uber.org/zap"
)

// PushUnsynced drains every pending row kind except chat, which has its own
// bulk endpoint. Each kind reads its full pending set as a snapshot, sends
// record by record, and marks only the acknowledged ids; rows written while
// the push runs stay pending and ride the next trigger. A failed record is
// left pending and resent in full next cycle, which is safe because the
// server deduplicates by client-generated id.
func (r *Reconciler) PushUnsynced(ctx context.Context) Report {
	var report Report

	r.run(ctx, &report, "profile_push", r.pushProfile)
	r.run(ctx, &report, "preferences_push", r.pushPreferences)
	r.run(ctx, &report, "meals_push", r.pushMeals)
	r.run(ctx, &report, "completed_workouts_push", r.pushCompletedWorkouts)
	r.run(ctx, &report, "water_logs_push", r.pushWaterLogs)
	r.run(ctx, &report, "sleep_logs_push", r.pushSleepLogs)
	r.run(ctx, &report, "measurements_push", r.pushMeasurements)
	r.run(ctx, &report, "program_enrollments_push", r.pushProgramEnrollments)

	return report
}

func (r *Reconciler) pushProfile(ctx context.Context) (int, error) {
	profile, found, err := r.store.UnsyncedProfile(ctx, r.userID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	if err := r.client.SyncProfile(ctx, profile); err != nil {
		return 0, err
	}
	if err := r.store.MarkProfileSynced(ctx, r.userID); err != nil {
		return 0, err
	}
	return 1, nil
}

func (r *Reconciler) pushPreferences(ctx context.Context) (int, error) {
	prefs, found, err := r.store.UnsyncedPreferences(ctx, r.userID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, nil
	}
	if err := r.client.UpdatePreferences(ctx, prefs); err != nil {
		return 0, err
	}
	if err := r.store.MarkPreferencesSynced(ctx, r.userID); err != nil {
		return 0, err
	}
	return 1, nil
}

func (r *Reconciler) pushMeals(ctx context.Context) (int, error) {
	meals, err := r.store.UnsyncedMeals(ctx, r.userID)
	if err != nil {
		return 0, err
	}
	var sent []string
	var firstErr error
	for _, meal := range meals {
		if err := r.client.CreateMeal(ctx, meal); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		sent = append(sent, meal.ID)
	}
	if err := r.store.MarkMealsSynced(ctx, sent); err != nil {
		return len(sent), err
	}
	return len(sent), firstErr
}

func (r *Reconciler) pushCompletedWorkouts(ctx context.Context) (int, error) {
	workouts, err := r.store.UnsyncedCompletedWorkouts(ctx, r.userID)
	if err != nil {
		return 0, err
	}
	var sent []string
	var firstErr error
	for _, workout := range workouts {
		if err := r.client.CompleteWorkout(ctx, workout); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		sent = append(sent, workout.ID)
	}
	if err := r.store.MarkCompletedWorkoutsSynced(ctx, sent); err != nil {
		return len(sent), err
	}
	return len(sent), firstErr
}

func (r *Reconciler) pushWaterLogs(ctx context.Context) (int, error) {
	logs, err := r.store.UnsyncedWaterLogs(ctx, r.userID)
	if err != nil {
		return 0, err
	}
	var sent []string
	var firstErr error
	for _, log := range logs {
		if err := r.client.CreateWaterLog(ctx, log); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		sent = append(sent, log.ID)
	}
	if err := r.store.MarkWaterLogsSynced(ctx, sent); err != nil {
		return len(sent), err
	}
	return len(sent), firstErr
}

func (r *Reconciler) pushSleepLogs(ctx context.Context) (int, error) {
	logs, err := r.store.UnsyncedSleepLogs(ctx, r.userID)
	if err != nil {
		return 0, err
	}
	var sent []string
	var firstErr error
	for _, log := range logs {
		if err := r.client.CreateSleepLog(ctx, log); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		sent = append(sent, log.ID)
	}
	if err := r.store.MarkSleepLogsSynced(ctx, sent); err != nil {
		return len(sent), err
	}
	return len(sent), firstErr
}

func (r *Reconciler) pushMeasurements(ctx context.Context) (int, error) {
	measurements, err := r.store.UnsyncedBodyMeasurements(ctx, r.userID)
	if err != nil {
		return 0, err
	}
	var sent []string
	var firstErr error
	for _, measurement := range measurements {
		if err := r.client.CreateMeasurement(ctx, measurement); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		sent = append(sent, measurement.ID)
	}
	if err := r.store.MarkBodyMeasurementsSynced(ctx, sent); err != nil {
		return len(sent), err
	}
	return len(sent), firstErr
}

func (r *Reconciler) pushProgramEnrollments(ctx context.Context) (int, error) {
	enrollments, err := r.store.UnsyncedProgramEnrollments(ctx, r.userID)
	if err != nil {
		return 0, err
	}
	var sent []string
	var firstErr error
	for _, enrollment := range enrollments {
		if err := r.client.EnrollProgram(ctx, enrollment); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		sent = append(sent, enrollment.ID)
	}
	if err := r.store.MarkProgramEnrollmentsSynced(ctx, sent); err != nil {
		return len(sent), err
	}
	return len(sent), firstErr
}

// PushChat sends every pending chat message through the bulk endpoint.
// The server replies with an accepted count only; when it is positive,
// every sent id is marked confirmed. A partial acceptance therefore marks
// rows the server may not hold; the count is logged so a mismatch is
// visible, but the server contract offers nothing finer to act on.
func (r *Reconciler) PushChat(ctx context.Context) Report {
	var report Report

	messages, err := r.store.UnsyncedChatMessages(ctx, r.userID)
	if err != nil {
		r.record(&report, "chat_push", 0, err)
		return report
	}
	if len(messages) == 0 {
		r.record(&report, "chat_push", 0, nil)
		return report
	}

	accepted, err := r.client.SyncChatMessages(ctx, messages)
	if err != nil {
		r.record(&report, "chat_push", 0, err)
		return report
	}
	if accepted <= 0 {
		r.logger.Warn("chat sync accepted no messages", zap.Int("sent", len(messages)))
		r.record(&report, "chat_push", 0, nil)
		return report
	}
	if accepted != len(messages) {
		r.logger.Warn("chat sync count mismatch",
			zap.Int("sent", len(messages)),
			zap.Int("accepted", accepted))
	}

	ids := make([]string, 0, len(messages))
	for _, message := range messages {
		ids = append(ids, message.ID)
	}
	if err := r.store.MarkChatMessagesSynced(ctx, ids); err != nil {
		r.record(&report, "chat_push", 0, err)
		return report
	}
	r.record(&report, "chat_push", len(ids), nil)
	return report
}
