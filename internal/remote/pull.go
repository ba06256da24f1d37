package remote

import (
	"context"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// WorkoutPayload is a library workout as served by the API, with its
// exercises inlined.
type WorkoutPayload struct {
	entity.Workout
	Exercises []entity.Exercise `json:"exercises"`
}

// RecipePayload is a library recipe as served by the API; ingredients and
// instructions arrive as JSON arrays rather than the stored text blobs.
type RecipePayload struct {
	entity.Recipe
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// ProgramPayload is a training program with its schedule links inlined.
type ProgramPayload struct {
	entity.Program
	Workouts []entity.ProgramWorkout `json:"workouts"`
}

// ProfilePayload is the authoritative profile with unlocked achievements
// inlined.
type ProfilePayload struct {
	entity.UserProfile
	Achievements []entity.AchievementUnlock `json:"achievements"`
}

// Workouts fetches the full workout library.
func (c *Client) Workouts(ctx context.Context) ([]WorkoutPayload, error) {
	var workouts []WorkoutPayload
	if err := c.get(ctx, "/workouts", &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Foods fetches the full food library.
func (c *Client) Foods(ctx context.Context) ([]entity.Food, error) {
	var foods []entity.Food
	if err := c.get(ctx, "/foods", &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// Recipes fetches the full recipe library.
func (c *Client) Recipes(ctx context.Context) ([]RecipePayload, error) {
	var recipes []RecipePayload
	if err := c.get(ctx, "/recipes", &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// Programs fetches the full program library with schedule links.
func (c *Client) Programs(ctx context.Context) ([]ProgramPayload, error) {
	var programs []ProgramPayload
	if err := c.get(ctx, "/programs", &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// AchievementDefinitions fetches the achievement catalog.
func (c *Client) AchievementDefinitions(ctx context.Context) ([]entity.AchievementDefinition, error) {
	var definitions []entity.AchievementDefinition
	if err := c.get(ctx, "/achievements/definitions", &definitions); err != nil {
		return nil, err
	}
	return definitions, nil
}

// Profile fetches the authoritative profile for the authenticated user.
func (c *Client) Profile(ctx context.Context) (ProfilePayload, error) {
	var profile ProfilePayload
	if err := c.get(ctx, "/user/profile", &profile); err != nil {
		return ProfilePayload{}, err
	}
	return profile, nil
}

// AchievementUnlocks fetches the user's earned achievements.
func (c *Client) AchievementUnlocks(ctx context.Context) ([]entity.AchievementUnlock, error) {
	var unlocks []entity.AchievementUnlock
	if err := c.get(ctx, "/achievements", &unlocks); err != nil {
		return nil, err
	}
	return unlocks, nil
}

// WorkoutHistory fetches the user's completed workout sessions.
func (c *Client) WorkoutHistory(ctx context.Context) ([]entity.CompletedWorkout, error) {
	var history []entity.CompletedWorkout
	if err := c.get(ctx, "/workouts/history", &history); err != nil {
		return nil, err
	}
	return history, nil
}

// Measurements fetches the user's body measurement history.
func (c *Client) Measurements(ctx context.Context) ([]entity.BodyMeasurement, error) {
	var measurements []entity.BodyMeasurement
	if err := c.get(ctx, "/measurements", &measurements); err != nil {
		return nil, err
	}
	return measurements, nil
}

// WaterLogs fetches the user's water intake history.
func (c *Client) WaterLogs(ctx context.Context) ([]entity.WaterLog, error) {
	var logs []entity.WaterLog
	if err := c.get(ctx, "/water/logs", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// SleepLogs fetches the user's sleep history.
func (c *Client) SleepLogs(ctx context.Context) ([]entity.SleepLog, error) {
	var logs []entity.SleepLog
	if err := c.get(ctx, "/sleep/logs", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// Notifications fetches the user's notifications.
func (c *Client) Notifications(ctx context.Context) ([]entity.Notification, error) {
	var notifications []entity.Notification
	if err := c.get(ctx, "/notifications", &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
