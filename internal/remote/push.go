package remote

import (
	"context"
	"net/http"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// Push endpoints accept one record per call and are idempotent by the
// client-generated id: resending a record the server already holds is safe.

// CreateMeal pushes one logged meal.
func (c *Client) CreateMeal(ctx context.Context, meal entity.Meal) error {
	return c.send(ctx, http.MethodPost, "/meals", meal, nil)
}

// CompleteWorkout pushes one finished workout session.
func (c *Client) CompleteWorkout(ctx context.Context, workout entity.CompletedWorkout) error {
	return c.send(ctx, http.MethodPost, "/workouts/complete", workout, nil)
}

// CreateWaterLog pushes one water entry.
func (c *Client) CreateWaterLog(ctx context.Context, log entity.WaterLog) error {
	return c.send(ctx, http.MethodPost, "/water", log, nil)
}

// CreateSleepLog pushes one sleep entry.
func (c *Client) CreateSleepLog(ctx context.Context, log entity.SleepLog) error {
	return c.send(ctx, http.MethodPost, "/sleep", log, nil)
}

// CreateMeasurement pushes one body measurement snapshot.
func (c *Client) CreateMeasurement(ctx context.Context, measurement entity.BodyMeasurement) error {
	return c.send(ctx, http.MethodPost, "/measurements", measurement, nil)
}

// UpdatePreferences pushes the user's settings.
func (c *Client) UpdatePreferences(ctx context.Context, prefs entity.Preferences) error {
	return c.send(ctx, http.MethodPut, "/user/preferences", prefs, nil)
}

// SyncProfile pushes locally edited profile fields.
func (c *Client) SyncProfile(ctx context.Context, profile entity.UserProfile) error {
	return c.send(ctx, http.MethodPost, "/user/sync", profile, nil)
}

// EnrollProgram pushes one program enrollment or progress update.
func (c *Client) EnrollProgram(ctx context.Context, enrollment entity.ProgramEnrollment) error {
	return c.send(ctx, http.MethodPost, "/programs/enroll", enrollment, nil)
}

// CreateCustomFood submits a user-defined food. The server assigns the id
// and returns the created row for immediate local seeding.
func (c *Client) CreateCustomFood(ctx context.Context, food entity.Food) (entity.Food, error) {
	var created entity.Food
	if err := c.send(ctx, http.MethodPost, "/foods/custom", food, &created); err != nil {
		return entity.Food{}, err
	}
	return created, nil
}

type chatSyncRequest struct {
	Messages []entity.ChatMessage `json:"messages"`
}

type chatSyncResponse struct {
	Count int `json:"count"`
}

// SyncChatMessages pushes pending chat messages in one batch and returns
// the number of records the server reports accepted. The response carries
// only a count, not per-item acks.
func (c *Client) SyncChatMessages(ctx context.Context, messages []entity.ChatMessage) (int, error) {
	var response chatSyncResponse
	err := c.send(ctx, http.MethodPost, "/chat/sync", chatSyncRequest{Messages: messages}, &response)
	if err != nil {
		return 0, err
	}
	return response.Count, nil
}
