package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mentionwatch/internal/models"
)

const tweetColumns = `id, user_id, tweet_id, tweet_text, author_username, author_display_name,
	matched_keywords, posted_at, created_at, updated_at`

func scanTweets(rows pgx.Rows) ([]models.Tweet, error) {
	defer rows.Close()

	var tweets []models.Tweet
	for rows.Next() {
		var t models.Tweet
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.TweetID,
			&t.TweetText,
			&t.AuthorUsername,
			&t.AuthorDisplayName,
			&t.MatchedKeywords,
			&t.PostedAt,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tweets = append(tweets, t)
	}

	return tweets, rows.Err()
}

// UpsertTweet records a sighting of an external item for a user. A first
// sighting inserts the row with matchedKeywords = [keyword]; later sightings
// append the keyword instead. The whole operation is a single conditional
// write, so concurrent upserts for the same external id cannot race the
// existence check. When dedup is true a keyword already present is not
// appended again.
//
// Returns true if the row was newly inserted.
func (d *DB) UpsertTweet(ctx context.Context, tweet *models.Tweet, keyword string, dedup bool) (bool, error) {
	query := `
		INSERT INTO tweets (user_id, tweet_id, tweet_text, author_username, author_display_name, matched_keywords, posted_at)
		VALUES ($1, $2, $3, $4, $5, ARRAY[$6::text], $7)
		ON CONFLICT (user_id, tweet_id) DO UPDATE SET
			matched_keywords = CASE
				WHEN $8::boolean AND tweets.matched_keywords @> ARRAY[$6::text]
					THEN tweets.matched_keywords
				ELSE array_append(tweets.matched_keywords, $6::text)
			END,
			updated_at = NOW()
		RETURNING id, matched_keywords, created_at, updated_at, (xmax = 0)
	`

	var inserted bool
	err := d.Pool.QueryRow(ctx, query,
		tweet.UserID,
		tweet.TweetID,
		tweet.TweetText,
		tweet.AuthorUsername,
		tweet.AuthorDisplayName,
		keyword,
		tweet.PostedAt,
		dedup,
	).Scan(&tweet.ID, &tweet.MatchedKeywords, &tweet.CreatedAt, &tweet.UpdatedAt, &inserted)
	if err != nil {
		return false, err
	}

	return inserted, nil
}

// GetTweetByExternalID retrieves a user's tweet row by the external identifier.
func (d *DB) GetTweetByExternalID(ctx context.Context, userID uuid.UUID, tweetID string) (*models.Tweet, error) {
	query := `SELECT ` + tweetColumns + ` FROM tweets WHERE user_id = $1 AND tweet_id = $2`

	var t models.Tweet
	err := d.Pool.QueryRow(ctx, query, userID, tweetID).Scan(
		&t.ID,
		&t.UserID,
		&t.TweetID,
		&t.TweetText,
		&t.AuthorUsername,
		&t.AuthorDisplayName,
		&t.MatchedKeywords,
		&t.PostedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTweetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTweetsByUser retrieves a user's stored tweets, newest first, with reply
// drafts attached.
func (d *DB) GetTweetsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Tweet, error) {
	query := `
		SELECT ` + tweetColumns + `
		FROM tweets
		WHERE user_id = $1
		ORDER BY posted_at DESC
		LIMIT $2
	`

	rows, err := d.Pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	tweets, err := scanTweets(rows)
	if err != nil {
		return nil, err
	}
	return d.attachReplies(ctx, tweets)
}

// GetTweetsByKeywords retrieves a user's stored tweets whose matched keyword
// list overlaps the given set, newest first, with reply drafts attached.
func (d *DB) GetTweetsByKeywords(ctx context.Context, userID uuid.UUID, keywords []string) ([]models.Tweet, error) {
	query := `
		SELECT ` + tweetColumns + `
		FROM tweets
		WHERE user_id = $1 AND matched_keywords && $2
		ORDER BY posted_at DESC
	`

	rows, err := d.Pool.Query(ctx, query, userID, keywords)
	if err != nil {
		return nil, err
	}
	tweets, err := scanTweets(rows)
	if err != nil {
		return nil, err
	}
	return d.attachReplies(ctx, tweets)
}

// CountTweets returns the number of stored tweets for a user.
func (d *DB) CountTweets(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tweets WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

// CountRecentTweets returns the number of a user's tweets posted since the cutoff.
func (d *DB) CountRecentTweets(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM tweets WHERE user_id = $1 AND posted_at >= $2`, userID, since).Scan(&count)
	return count, err
}

// GetTweetCount returns the total number of stored tweets across all users.
func (d *DB) GetTweetCount(ctx context.Context) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM tweets`).Scan(&count)
	return count, err
}

// KeywordMatchCount is one keyword's accumulated match total, for metrics export.
type KeywordMatchCount struct {
	Keyword string
	Count   int64
}

// GetKeywordMatchCounts returns how many stored tweets each keyword has matched,
// across all users and search passes.
func (d *DB) GetKeywordMatchCounts(ctx context.Context) ([]KeywordMatchCount, error) {
	query := `
		SELECT k, COUNT(*)
		FROM tweets, unnest(matched_keywords) AS k
		GROUP BY k
	`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []KeywordMatchCount
	for rows.Next() {
		var c KeywordMatchCount
		if err := rows.Scan(&c.Keyword, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// attachReplies loads reply drafts for the given tweets in one query.
func (d *DB) attachReplies(ctx context.Context, tweets []models.Tweet) ([]models.Tweet, error) {
	if len(tweets) == 0 {
		return tweets, nil
	}

	ids := make([]uuid.UUID, len(tweets))
	index := make(map[uuid.UUID]int, len(tweets))
	for i, t := range tweets {
		ids[i] = t.ID
		index[t.ID] = i
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT id, tweet_id, content, status, created_at
		FROM replies
		WHERE tweet_id = ANY($1)
		ORDER BY created_at DESC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r models.Reply
		if err := rows.Scan(&r.ID, &r.TweetID, &r.Content, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[r.TweetID]; ok {
			tweets[i].Replies = append(tweets[i].Replies, r)
		}
	}

	return tweets, rows.Err()
}
