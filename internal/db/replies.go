package db

import (
	"context"

	"github.com/google/uuid"

	"mentionwatch/internal/models"
)

// CreateReply stores a reply draft for a tweet.
func (d *DB) CreateReply(ctx context.Context, reply *models.Reply) error {
	query := `
		INSERT INTO replies (tweet_id, content, status)
		VALUES ($1, $2, COALESCE(NULLIF($3, ''), 'draft'))
		RETURNING id, status, created_at
	`

	return d.Pool.QueryRow(ctx, query,
		reply.TweetID,
		reply.Content,
		reply.Status,
	).Scan(&reply.ID, &reply.Status, &reply.CreatedAt)
}

// GetRepliesByTweet retrieves reply drafts for a stored tweet, newest first.
func (d *DB) GetRepliesByTweet(ctx context.Context, tweetID uuid.UUID) ([]models.Reply, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, tweet_id, content, status, created_at
		FROM replies
		WHERE tweet_id = $1
		ORDER BY created_at DESC
	`, tweetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var replies []models.Reply
	for rows.Next() {
		var r models.Reply
		if err := rows.Scan(&r.ID, &r.TweetID, &r.Content, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		replies = append(replies, r)
	}
	return replies, rows.Err()
}

// UpdateReplyStatus marks a reply draft as sent or discarded.
func (d *DB) UpdateReplyStatus(ctx context.Context, replyID uuid.UUID, status string) error {
	result, err := d.Pool.Exec(ctx,
		`UPDATE replies SET status = $1 WHERE id = $2`, status, replyID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrReplyNotFound
	}
	return nil
}

// DeleteReply removes a reply draft.
func (d *DB) DeleteReply(ctx context.Context, replyID uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM replies WHERE id = $1`, replyID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrReplyNotFound
	}
	return nil
}
