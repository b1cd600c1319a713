package db

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"
)

func TestUpsertUser(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := createTestUser(t, db, "upsert-user")

	if user.ID == uuid.Nil {
		t.Error("UpsertUser() did not set ID")
	}
	if user.PlanType != "free" {
		t.Errorf("PlanType = %q, want free default", user.PlanType)
	}

	// Second upsert with the same sub updates in place.
	firstID := user.ID
	user.DisplayName = "Renamed"
	if err := db.UpsertUser(ctx, user); err != nil {
		t.Fatalf("second UpsertUser() error = %v", err)
	}
	if user.ID != firstID {
		t.Errorf("second UpsertUser() ID = %v, want original %v", user.ID, firstID)
	}

	got, err := db.GetUserBySub(ctx, "upsert-user")
	if err != nil {
		t.Fatalf("GetUserBySub() error = %v", err)
	}
	if got.DisplayName != "Renamed" {
		t.Errorf("DisplayName = %q, want Renamed", got.DisplayName)
	}
}

func TestGetUserByIDNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := db.GetUserByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("GetUserByID() error = %v, want ErrUserNotFound", err)
	}
}

func TestGetTrackableUsers(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	tracked := createTestUser(t, db, "tracked")
	idle := createTestUser(t, db, "idle")
	createTestUser(t, db, "no-settings")

	setKeywords := func(userID uuid.UUID, keywords []string) {
		s, err := db.GetSettings(ctx, userID)
		if err != nil {
			t.Fatalf("GetSettings() error = %v", err)
		}
		s.Keywords = keywords
		if err := db.UpsertSettings(ctx, s); err != nil {
			t.Fatalf("UpsertSettings() error = %v", err)
		}
	}
	setKeywords(tracked.ID, []string{"golang", "postgres"})
	setKeywords(idle.ID, []string{})

	users, err := db.GetTrackableUsers(ctx)
	if err != nil {
		t.Fatalf("GetTrackableUsers() error = %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1 (only non-empty keyword sets)", len(users))
	}
	if users[0].ID != tracked.ID {
		t.Errorf("users[0].ID = %v, want %v", users[0].ID, tracked.ID)
	}
	if !slices.Equal(users[0].Keywords, []string{"golang", "postgres"}) {
		t.Errorf("Keywords = %v, want [golang postgres]", users[0].Keywords)
	}
}
