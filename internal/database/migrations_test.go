package database

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/healthfitlab/fitsync/internal/entity"
)

func openTestDB(t *testing.T, path string) *gorm.DB {
	t.Helper()

	db, err := OpenSQLite(path, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to reach sql handle: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("failed to close database: %v", err)
	}
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	if _, err := OpenSQLite("", zap.NewNop()); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestMigrationsRecordedOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	db := openTestDB(t, path)

	var count int64
	if err := db.Model(&migrationRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 ledger rows, got %d", count)
	}

	closeDB(t, db)

	// A second open must not re-run applied migrations.
	db = openTestDB(t, path)
	if err := db.Model(&migrationRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected ledger unchanged after reopen, got %d rows", count)
	}
}

func TestBackfillInitialWeight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	db := openTestDB(t, path)
	profile := entity.UserProfile{UID: "user-1", Name: "Dana", Weight: 82}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	// Wipe the ledger row so the backfill runs again on reopen, the way it
	// would against a database created before the migration existed.
	if err := db.Where("name = ?", migrationBackfillInitialWeight).Delete(&migrationRecord{}).Error; err != nil {
		t.Fatalf("ledger reset failed: %v", err)
	}
	closeDB(t, db)

	db = openTestDB(t, path)
	var migrated entity.UserProfile
	if err := db.Where("uid = ?", "user-1").Take(&migrated).Error; err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if migrated.InitialWeight != 82 {
		t.Fatalf("expected initial weight backfilled from weight, got %v", migrated.InitialWeight)
	}
}

func TestAssignChatOwnersForSingleProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	db := openTestDB(t, path)
	if err := db.Create(&entity.UserProfile{UID: "user-1", Name: "Dana"}).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := db.Create(&entity.ChatMessage{ID: "chat-1", Text: "hello", Sender: "user"}).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := db.Where("name = ?", migrationAssignChatOwners).Delete(&migrationRecord{}).Error; err != nil {
		t.Fatalf("ledger reset failed: %v", err)
	}
	closeDB(t, db)

	db = openTestDB(t, path)
	var message entity.ChatMessage
	if err := db.Where("id = ?", "chat-1").Take(&message).Error; err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if message.UserID != "user-1" {
		t.Fatalf("expected orphan chat row assigned to the lone profile, got %q", message.UserID)
	}
}

func TestAssignChatOwnersSkippedWhenAmbiguous(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	db := openTestDB(t, path)
	for _, uid := range []string{"user-1", "user-2"} {
		if err := db.Create(&entity.UserProfile{UID: uid}).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	if err := db.Create(&entity.ChatMessage{ID: "chat-1", Text: "hello"}).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := db.Where("name = ?", migrationAssignChatOwners).Delete(&migrationRecord{}).Error; err != nil {
		t.Fatalf("ledger reset failed: %v", err)
	}
	closeDB(t, db)

	db = openTestDB(t, path)
	var message entity.ChatMessage
	if err := db.Where("id = ?", "chat-1").Take(&message).Error; err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if message.UserID != "" {
		t.Fatalf("expected ambiguous ownership left alone, got %q", message.UserID)
	}
}
