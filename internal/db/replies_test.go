package db

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"mentionwatch/internal/models"
)

func createTestTweetWithReply(t *testing.T, db *DB) (*models.Tweet, *models.Reply) {
	t.Helper()
	ctx := context.Background()

	user := createTestUser(t, db, "reply-owner")
	tweet := sampleTweet(user.ID, "ext-reply")
	if _, err := db.UpsertTweet(ctx, tweet, "golang", true); err != nil {
		t.Fatalf("UpsertTweet() error = %v", err)
	}

	reply := &models.Reply{TweetID: tweet.ID, Content: "thanks for the mention"}
	if err := db.CreateReply(ctx, reply); err != nil {
		t.Fatalf("CreateReply() error = %v", err)
	}

	return tweet, reply
}

func TestCreateReplyDefaultsToDraft(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, reply := createTestTweetWithReply(t, db)

	if reply.ID == uuid.Nil {
		t.Error("CreateReply() did not set ID")
	}
	if reply.Status != models.ReplyDraft {
		t.Errorf("Status = %q, want %q", reply.Status, models.ReplyDraft)
	}
}

func TestGetRepliesByTweet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	tweet, first := createTestTweetWithReply(t, db)

	second := &models.Reply{TweetID: tweet.ID, Content: "another draft", Status: models.ReplySent}
	if err := db.CreateReply(ctx, second); err != nil {
		t.Fatalf("CreateReply() error = %v", err)
	}

	replies, err := db.GetRepliesByTweet(ctx, tweet.ID)
	if err != nil {
		t.Fatalf("GetRepliesByTweet() error = %v", err)
	}
	if len(replies) != 2 {
		t.Fatalf("len(replies) = %d, want 2", len(replies))
	}

	found := map[uuid.UUID]bool{}
	for _, r := range replies {
		found[r.ID] = true
	}
	if !found[first.ID] || !found[second.ID] {
		t.Errorf("replies = %v, want both created drafts", replies)
	}
}

func TestUpdateReplyStatus(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	tweet, reply := createTestTweetWithReply(t, db)

	if err := db.UpdateReplyStatus(ctx, reply.ID, models.ReplySent); err != nil {
		t.Fatalf("UpdateReplyStatus() error = %v", err)
	}

	replies, err := db.GetRepliesByTweet(ctx, tweet.ID)
	if err != nil {
		t.Fatalf("GetRepliesByTweet() error = %v", err)
	}
	if replies[0].Status != models.ReplySent {
		t.Errorf("Status = %q, want %q", replies[0].Status, models.ReplySent)
	}
}

func TestUpdateReplyStatusNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := db.UpdateReplyStatus(context.Background(), uuid.New(), models.ReplyDiscarded)
	if !errors.Is(err, ErrReplyNotFound) {
		t.Fatalf("UpdateReplyStatus() error = %v, want ErrReplyNotFound", err)
	}
}

func TestDeleteReply(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	tweet, reply := createTestTweetWithReply(t, db)

	if err := db.DeleteReply(ctx, reply.ID); err != nil {
		t.Fatalf("DeleteReply() error = %v", err)
	}

	replies, err := db.GetRepliesByTweet(ctx, tweet.ID)
	if err != nil {
		t.Fatalf("GetRepliesByTweet() error = %v", err)
	}
	if len(replies) != 0 {
		t.Errorf("len(replies) = %d, want 0 after delete", len(replies))
	}

	if err := db.DeleteReply(ctx, reply.ID); !errors.Is(err, ErrReplyNotFound) {
		t.Fatalf("second DeleteReply() error = %v, want ErrReplyNotFound", err)
	}
}
