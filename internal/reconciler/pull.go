package reconciler

import (
	"context"
	"encoding/json"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// PullCatalog fetches every server-owned collection and replaces the cached
// copy by primary key. Every pull is a full replacement; there is no
// incremental fetch. Each collection fails independently.
func (r *Reconciler) PullCatalog(ctx context.Context) Report {
	var report Report

	r.run(ctx, &report, "workouts", r.pullWorkouts)
	r.run(ctx, &report, "foods", r.pullFoods)
	r.run(ctx, &report, "recipes", r.pullRecipes)
	r.run(ctx, &report, "programs", r.pullPrograms)
	r.run(ctx, &report, "achievement_definitions", r.pullAchievementDefinitions)

	return report
}

func (r *Reconciler) pullWorkouts(ctx context.Context) (int, error) {
	payloads, err := r.client.Workouts(ctx)
	if err != nil {
		return 0, err
	}

	workouts := make([]entity.Workout, 0, len(payloads))
	var exercises []entity.Exercise
	for _, payload := range payloads {
		workout := payload.Workout
		if blob, err := json.Marshal(payload); err == nil {
			workout.PayloadJSON = string(blob)
		}
		workouts = append(workouts, workout)
		exercises = append(exercises, payload.Exercises...)
	}

	if err := r.store.ReplaceWorkouts(ctx, workouts); err != nil {
		return 0, err
	}
	if err := r.store.ReplaceExercises(ctx, exercises); err != nil {
		return 0, err
	}
	return len(workouts), nil
}

func (r *Reconciler) pullFoods(ctx context.Context) (int, error) {
	foods, err := r.client.Foods(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.store.ReplaceFoods(ctx, foods); err != nil {
		return 0, err
	}
	return len(foods), nil
}

func (r *Reconciler) pullRecipes(ctx context.Context) (int, error) {
	payloads, err := r.client.Recipes(ctx)
	if err != nil {
		return 0, err
	}

	recipes := make([]entity.Recipe, 0, len(payloads))
	for _, payload := range payloads {
		recipe := payload.Recipe
		if blob, err := json.Marshal(payload.Ingredients); err == nil {
			recipe.IngredientsJSON = string(blob)
		}
		if blob, err := json.Marshal(payload.Instructions); err == nil {
			recipe.InstructionsJSON = string(blob)
		}
		recipes = append(recipes, recipe)
	}

	if err := r.store.ReplaceRecipes(ctx, recipes); err != nil {
		return 0, err
	}
	return len(recipes), nil
}

func (r *Reconciler) pullPrograms(ctx context.Context) (int, error) {
	payloads, err := r.client.Programs(ctx)
	if err != nil {
		return 0, err
	}

	programs := make([]entity.Program, 0, len(payloads))
	var links []entity.ProgramWorkout
	for _, payload := range payloads {
		programs = append(programs, payload.Program)
		links = append(links, payload.Workouts...)
	}

	if err := r.store.ReplacePrograms(ctx, programs); err != nil {
		return 0, err
	}
	if err := r.store.ReplaceProgramWorkouts(ctx, links); err != nil {
		return 0, err
	}
	return len(programs), nil
}

func (r *Reconciler) pullAchievementDefinitions(ctx context.Context) (int, error) {
	definitions, err := r.client.AchievementDefinitions(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.store.ReplaceAchievementDefinitions(ctx, definitions); err != nil {
		return 0, err
	}
	return len(definitions), nil
}

// PullUserData fetches the authoritative copies of the user's own records.
// Pulled rows arrive confirmed and fully replace local copies by key.
func (r *Reconciler) PullUserData(ctx context.Context) Report {
	var report Report

	r.run(ctx, &report, "profile", r.pullProfile)
	r.run(ctx, &report, "achievements", r.pullAchievements)
	r.run(ctx, &report, "workout_history", r.pullWorkoutHistory)
	r.run(ctx, &report, "measurements", r.pullMeasurements)
	r.run(ctx, &report, "water_logs", r.pullWaterLogs)
	r.run(ctx, &report, "sleep_logs", r.pullSleepLogs)
	r.run(ctx, &report, "notifications", r.pullNotifications)

	return report
}

func (r *Reconciler) pullProfile(ctx context.Context) (int, error) {
	payload, err := r.client.Profile(ctx)
	if err != nil {
		return 0, err
	}
	if err := r.store.ApplyProfile(ctx, payload.UserProfile); err != nil {
		return 0, err
	}
	return 1, nil
}

func (r *Reconciler) pullAchievements(ctx context.Context) (int, error) {
	unlocks, err := r.client.AchievementUnlocks(ctx)
	if err != nil {
		return 0, err
	}
	for i := range unlocks {
		if unlocks[i].UserID == "" {
			unlocks[i].UserID = r.userID
		}
	}
	if err := r.store.ApplyAchievementUnlocks(ctx, unlocks); err != nil {
		return 0, err
	}
	return len(unlocks), nil
}

func (r *Reconciler) pullWorkoutHistory(ctx context.Context) (int, error) {
	history, err := r.client.WorkoutHistory(ctx)
	if err != nil {
		return 0, err
	}
	for i := range history {
		if history[i].UserID == "" {
			history[i].UserID = r.userID
		}
	}
	if err := r.store.ApplyCompletedWorkouts(ctx, history); err != nil {
		return 0, err
	}
	return len(history), nil
}

func (r *Reconciler) pullMeasurements(ctx context.Context) (int, error) {
	measurements, err := r.client.Measurements(ctx)
	if err != nil {
		return 0, err
	}
	for i := range measurements {
		if measurements[i].UserID == "" {
			measurements[i].UserID = r.userID
		}
	}
	if err := r.store.ApplyBodyMeasurements(ctx, measurements); err != nil {
		return 0, err
	}
	return len(measurements), nil
}

func (r *Reconciler) pullWaterLogs(ctx context.Context) (int, error) {
	logs, err := r.client.WaterLogs(ctx)
	if err != nil {
		return 0, err
	}
	for i := range logs {
		if logs[i].UserID == "" {
			logs[i].UserID = r.userID
		}
	}
	if err := r.store.ApplyWaterLogs(ctx, logs); err != nil {
		return 0, err
	}
	return len(logs), nil
}

func (r *Reconciler) pullSleepLogs(ctx context.Context) (int, error) {
	logs, err := r.client.SleepLogs(ctx)
	if err != nil {
		return 0, err
	}
	for i := range logs {
		if logs[i].UserID == "" {
			logs[i].UserID = r.userID
		}
	}
	if err := r.store.ApplySleepLogs(ctx, logs); err != nil {
		return 0, err
	}
	return len(logs), nil
}

func (r *Reconciler) pullNotifications(ctx context.Context) (int, error) {
	notifications, err := r.client.Notifications(ctx)
	if err != nil {
		return 0, err
	}
	for i := range notifications {
		if notifications[i].UserID == "" {
			notifications[i].UserID = r.userID
		}
	}
	if err := r.store.ApplyNotifications(ctx, notifications); err != nil {
		return 0, err
	}
	return len(notifications), nil
}
