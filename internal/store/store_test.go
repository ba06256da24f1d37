package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/healthfitlab/fitsync/internal/database"
	"github.com/healthfitlab/fitsync/internal/entity"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newTestStore(t *testing.T) (*Store, *testClock) {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "cache.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	clock := &testClock{now: time.Date(2026, 5, 12, 10, 30, 0, 0, time.UTC)}
	cacheStore, err := NewStore(StoreConfig{Database: db, Clock: clock.Now, Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	return cacheStore, clock
}

func TestNewStoreRequiresDatabase(t *testing.T) {
	if _, err := NewStore(StoreConfig{}); err == nil {
		t.Fatalf("expected error for missing database")
	}
}

func TestReplaceFoodsIsIdempotent(t *testing.T) {
	cacheStore, _ := newTestStore(t)
	ctx := context.Background()

	batch := []entity.Food{
		{ID: "food-1", Name: "Oats", Calories: 389, Protein: 16.9},
		{ID: "food-2", Name: "Banana", Calories: 89, Carbs: 22.8},
	}

	if err := cacheStore.ReplaceFoods(ctx, batch); err != nil {
		t.Fatalf("first replace failed: %v", err)
	}
	if err := cacheStore.ReplaceFoods(ctx, batch); err != nil {
		t.Fatalf("second replace failed: %v", err)
	}

	foods, err := cacheStore.Foods(ctx, 0)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(foods) != 2 {
		t.Fatalf("expected 2 foods after double replace, got %d", len(foods))
	}
}

func TestReplaceFoodsSupersedesByPrimaryKey(t *testing.T) {
	cacheStore, _ := newTestStore(t)
	ctx := context.Background()

	if err := cacheStore.ReplaceFoods(ctx, []entity.Food{{ID: "food-1", Name: "Oats", Calories: 389}}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := cacheStore.ReplaceFoods(ctx, []entity.Food{{ID: "food-1", Name: "Rolled Oats", Calories: 380}}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	foods, err := cacheStore.Foods(ctx, 0)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(foods) != 1 {
		t.Fatalf("expected a single row, got %d", len(foods))
	}
	if foods[0].Name != "Rolled Oats" || foods[0].Calories != 380 {
		t.Fatalf("expected later write to win, got %+v", foods[0])
	}
}

func TestSearchFoods(t *testing.T) {
	cacheStore, _ := newTestStore(t)
	ctx := context.Background()

	seed := []entity.Food{
		{ID: "food-1", Name: "Chicken Breast"},
		{ID: "food-2", Name: "Chickpeas"},
		{ID: "food-3", Name: "Salmon"},
	}
	if err := cacheStore.ReplaceFoods(ctx, seed); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	matches, err := cacheStore.SearchFoods(ctx, "Chick")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}

	empty, err := cacheStore.SearchFoods(ctx, "")
	if err != nil {
		t.Fatalf("empty search failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty query to return no rows, got %d", len(empty))
	}
}

func TestSaveMealReadYourWrites(t *testing.T) {
	cacheStore, clock := newTestStore(t)
	ctx := context.Background()

	meal, err := cacheStore.SaveMeal(ctx, entity.Meal{UserID: "user-1", Name: "Lunch", Calories: 640})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if meal.ID == "" {
		t.Fatalf("expected an assigned id")
	}
	if meal.Synced != entity.SyncPending {
		t.Fatalf("expected pending flag, got %d", meal.Synced)
	}

	meals, err := cacheStore.MealsForDay(ctx, "user-1", clock.Now())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(meals) != 1 || meals[0].ID != meal.ID {
		t.Fatalf("expected the fresh meal to be visible, got %+v", meals)
	}
}

func TestSaveMealRejectsMissingUser(t *testing.T) {
	cacheStore, _ := newTestStore(t)

	if _, err := cacheStore.SaveMeal(context.Background(), entity.Meal{Name: "Lunch"}); err == nil {
		t.Fatalf("expected error for missing user id")
	}
}

func TestMarkMealsSyncedIsMonotonicAndIgnoresUnknownIDs(t *testing.T) {
	cacheStore, _ := newTestStore(t)
	ctx := context.Background()

	meal, err := cacheStore.SaveMeal(ctx, entity.Meal{UserID: "user-1", Name: "Lunch"})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := cacheStore.MarkMealsSynced(ctx, []string{meal.ID, "missing-id"}); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	pending, err := cacheStore.UnsyncedMeals(ctx, "user-1")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending meals after mark, got %d", len(pending))
	}

	// Re-marking already confirmed rows changes nothing.
	if err := cacheStore.MarkMealsSynced(ctx, []string{meal.ID}); err != nil {
		t.Fatalf("second mark failed: %v", err)
	}
	if err := cacheStore.MarkMealsSynced(ctx, nil); err != nil {
		t.Fatalf("empty mark should be a no-op, got %v", err)
	}
}

func TestReSavingConfirmedMealResetsFlag(t *testing.T) {
	cacheStore, _ := newTestStore(t)
	ctx := context.Background()

	meal, err := cacheStore.SaveMeal(ctx, entity.Meal{UserID: "user-1", Name: "Lunch", Calories: 640})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := cacheStore.MarkMealsSynced(ctx, []string{meal.ID}); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	meal.Calories = 710
	if _, err := cacheStore.SaveMeal(ctx, meal); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	pending, err := cacheStore.UnsyncedMeals(ctx, "user-1")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Calories != 710 {
		t.Fatalf("expected edited meal to be pending again, got %+v", pending)
	}
}

func TestSavePreferencesResetsFlagOnEveryEdit(t *testing.T) {
	cacheStore, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := cacheStore.SavePreferences(ctx, entity.Preferences{UserID: "user-1", Theme: "dark"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := cacheStore.MarkPreferencesSynced(ctx, "user-1"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	if _, err := cacheStore.SavePreferences(ctx, entity.Preferences{UserID: "user-1", Theme: "light"}); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	prefs, found, err := cacheStore.UnsyncedPreferences(ctx, "user-1")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !found {
		t.Fatalf("expected edited preferences to be pending")
	}
	if prefs.Theme != "light" {
		t.Fatalf("expected latest edit to win, got %q", prefs.Theme)
	}
}

func TestDailyStatsSingleRowPerLocalDate(t *testing.T) {
	cacheStore, clock := newTestStore(t)
	ctx := context.Background()

	if _, err := cacheStore.SaveDailyStats(ctx, "user-1", DailyTotals{Calories: 400, Water: 2}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if _, err := cacheStore.SaveDailyStats(ctx, "user-1", DailyTotals{Calories: 900, Water: 5}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	stats, found, err := cacheStore.DailyStats(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !found {
		t.Fatalf("expected a row for today")
	}
	if stats.Calories != 900 || stats.Water != 5 {
		t.Fatalf("expected replace semantics, got %+v", stats)
	}

	// Crossing device-local midnight starts a fresh row.
	clock.now = clock.now.Add(24 * time.Hour)
	if _, err := cacheStore.SaveDailyStats(ctx, "user-1", DailyTotals{Calories: 120}); err != nil {
		t.Fatalf("next-day save failed: %v", err)
	}

	previous, found, err := cacheStore.DailyStats(ctx, "user-1", "2026-05-12")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !found || previous.Calories != 900 {
		t.Fatalf("expected previous day untouched, got %+v found=%v", previous, found)
	}
	today, found, err := cacheStore.DailyStats(ctx, "user-1", "2026-05-13")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !found || today.Calories != 120 {
		t.Fatalf("expected fresh row for the new date, got %+v found=%v", today, found)
	}
}

func TestWaterLogsForDayWindow(t *testing.T) {
	cacheStore, clock := newTestStore(t)
	ctx := context.Background()

	inside, err := cacheStore.SaveWaterLog(ctx, entity.WaterLog{UserID: "user-1", Amount: 250})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	clock.now = clock.now.Add(24 * time.Hour)
	if _, err := cacheStore.SaveWaterLog(ctx, entity.WaterLog{UserID: "user-1", Amount: 500}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	logs, err := cacheStore.WaterLogsForDay(ctx, "user-1", time.Date(2026, 5, 12, 18, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != inside.ID {
		t.Fatalf("expected only the first day's log, got %+v", logs)
	}
}

func TestUnsyncedReadsAreScopedToUser(t *testing.T) {
	cacheStore, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := cacheStore.SaveMeal(ctx, entity.Meal{UserID: "user-1", Name: "Lunch"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := cacheStore.SaveMeal(ctx, entity.Meal{UserID: "user-2", Name: "Dinner"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	pending, err := cacheStore.UnsyncedMeals(ctx, "user-1")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(pending) != 1 || pending[0].UserID != "user-1" {
		t.Fatalf("expected only user-1 rows, got %+v", pending)
	}
}

func TestApplyProfileStoresConfirmedCopy(t *testing.T) {
	cacheStore, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := cacheStore.SaveProfile(ctx, entity.UserProfile{UID: "user-1", Name: "Dana", Weight: 82}); err != nil {
		t.Fatalf("optimistic save failed: %v", err)
	}

	if err := cacheStore.ApplyProfile(ctx, entity.UserProfile{UID: "user-1", Name: "Dana", Weight: 80}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	profile, found, err := cacheStore.Profile(ctx, "user-1")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !found {
		t.Fatalf("expected profile")
	}
	if profile.Synced != entity.SyncConfirmed {
		t.Fatalf("expected pulled profile to be confirmed, got %d", profile.Synced)
	}
	if profile.Weight != 80 {
		t.Fatalf("expected server copy to supersede, got %+v", profile)
	}
}

func TestApplyChatMessagesStoresConfirmedCopies(t *testing.T) {
	cacheStore, _ := newTestStore(t)
	ctx := context.Background()

	batch := []entity.ChatMessage{
		{ID: "chat-1", UserID: "user-1", Text: "hello", Sender: "user", Timestamp: "2026-05-12T10:00:00Z"},
		{ID: "chat-2", UserID: "user-1", Text: "hi there", Sender: "coach", Timestamp: "2026-05-12T10:00:05Z"},
	}
	if err := cacheStore.ApplyChatMessages(ctx, batch); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	messages, err := cacheStore.ChatMessages(ctx, "user-1")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	for _, message := range messages {
		if message.Synced != entity.SyncConfirmed {
			t.Fatalf("expected applied message confirmed, got %+v", message)
		}
	}

	pending, err := cacheStore.UnsyncedChatMessages(ctx, "user-1")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("applied messages must not be queued for push, got %d", len(pending))
	}
}

func TestMarkNotificationReadIsLocalOnly(t *testing.T) {
	cacheStore, _ := newTestStore(t)
	ctx := context.Background()

	seed := []entity.Notification{
		{ID: "notice-1", UserID: "user-1", Title: "Streak", CreatedAt: "2026-05-12T09:00:00Z"},
	}
	if err := cacheStore.ApplyNotifications(ctx, seed); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if err := cacheStore.MarkNotificationRead(ctx, "notice-1"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	notifications, err := cacheStore.Notifications(ctx, "user-1")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(notifications) != 1 || !notifications[0].Read {
		t.Fatalf("expected notification marked read, got %+v", notifications)
	}
	// Reading stays a device concern: the row must not re-enter the
	// pending set.
	if notifications[0].Synced != entity.SyncConfirmed {
		t.Fatalf("expected read marker to leave sync state alone, got %d", notifications[0].Synced)
	}

	if err := cacheStore.MarkNotificationRead(ctx, ""); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestStatusCountsPendingPerKind(t *testing.T) {
	cacheStore, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := cacheStore.SaveMeal(ctx, entity.Meal{UserID: "user-1", Name: "Lunch"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := cacheStore.SaveWaterLog(ctx, entity.WaterLog{UserID: "user-1", Amount: 250}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := cacheStore.ReplaceFoods(ctx, []entity.Food{{ID: "food-1", Name: "Oats"}}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	status, err := cacheStore.Status(ctx, "user-1")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.Pending["meals"] != 1 {
		t.Fatalf("expected one pending meal, got %d", status.Pending["meals"])
	}
	if status.Pending["water_logs"] != 1 {
		t.Fatalf("expected one pending water log, got %d", status.Pending["water_logs"])
	}
	if status.Catalog["foods"] != 1 {
		t.Fatalf("expected one cached food, got %d", status.Catalog["foods"])
	}
}
