// Package tracker implements the keyword-tracking ingestion pipeline: resolve
// the user's credential, search the external API per keyword, and merge the
// results into the tweet store deduplicated by external id.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mentionwatch/internal/db"
	"mentionwatch/internal/metrics"
	"mentionwatch/internal/models"
	"mentionwatch/internal/twitter"
)

// Pipeline error sentinels.
var (
	ErrMissingCredential = errors.New("twitter access token not found")
	ErrNoKeywords        = errors.New("no keywords configured")
)

// Store is the persistence surface the pipeline needs. *db.DB satisfies it;
// tests inject fakes.
type Store interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetKeywords(ctx context.Context, userID uuid.UUID) ([]string, error)
	GetCredential(ctx context.Context, userID uuid.UUID, provider string) (*models.Credential, error)
	UpsertTweet(ctx context.Context, tweet *models.Tweet, keyword string, dedup bool) (bool, error)
	GetTweetsByKeywords(ctx context.Context, userID uuid.UUID, keywords []string) ([]models.Tweet, error)
	CountTweets(ctx context.Context, userID uuid.UUID) (int, error)
	CountRecentTweets(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	GetTrackableUsers(ctx context.Context) ([]db.TrackableUser, error)
}

// Notifier is told about passes that found new mentions. Implementations must
// not block; delivery happens out of band.
type Notifier interface {
	NotifyNewMentions(ctx context.Context, userID uuid.UUID, result *models.SearchResponse)
}

// Options tune pipeline behavior.
type Options struct {
	// MaxResults bounds each keyword's search request page size.
	MaxResults int
	// RequestTimeout bounds each keyword's search request. Zero means no
	// per-request deadline beyond the client's own timeout.
	RequestTimeout time.Duration
	// AllowDuplicateMatches keeps the append to matchedKeywords literal:
	// repeated sightings of the same keyword accumulate duplicate entries.
	// Off by default, making the append set-like.
	AllowDuplicateMatches bool
	// Notifier, when set, is told about passes that found new mentions.
	Notifier Notifier
}

// Tracker runs the ingestion pipeline. All collaborators are injected.
type Tracker struct {
	store  Store
	client twitter.SearchClient
	opts   Options
}

// New creates a tracker with the given collaborators.
func New(store Store, client twitter.SearchClient, opts Options) *Tracker {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 10
	}
	return &Tracker{store: store, client: client, opts: opts}
}

// SearchKeywords runs one search pass over the user's tracked keywords.
//
// The credential is resolved once up front; a missing credential fails the
// whole call. An empty keyword set fails with ErrNoKeywords before any network
// call. Per-keyword failures are recorded in the result's keyword statuses and
// skipped; the call itself still succeeds with whatever the other keywords
// produced. TweetsFound counts first-time inserts only.
func (t *Tracker) SearchKeywords(ctx context.Context, userID uuid.UUID) (*models.SearchResponse, error) {
	keywords, err := t.store.GetKeywords(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		return nil, ErrNoKeywords
	}

	cred, err := t.store.GetCredential(ctx, userID, models.ProviderTwitter)
	if err != nil {
		if errors.Is(err, db.ErrCredentialNotFound) {
			return nil, ErrMissingCredential
		}
		return nil, err
	}

	result := &models.SearchResponse{
		Tweets:   []models.Tweet{},
		Keywords: make([]models.KeywordStatus, 0, len(keywords)),
	}

	for _, keyword := range keywords {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		status, err := t.searchOne(ctx, userID, cred.AccessToken, keyword, result)
		if err != nil {
			slog.Warn("keyword search failed", "user_id", userID, "keyword", keyword, "error", err)
			metrics.KeywordRequests.WithLabelValues("error").Inc()
			status.Error = err.Error()
		} else {
			metrics.KeywordRequests.WithLabelValues("ok").Inc()
		}
		result.Keywords = append(result.Keywords, status)
	}

	if t.opts.Notifier != nil && result.TweetsFound > 0 {
		t.opts.Notifier.NotifyNewMentions(ctx, userID, result)
	}

	return result, nil
}

// searchOne issues the search request for a single keyword and upserts each
// resolved post tagged with that keyword.
func (t *Tracker) searchOne(ctx context.Context, userID uuid.UUID, token, keyword string, result *models.SearchResponse) (models.KeywordStatus, error) {
	status := models.KeywordStatus{Keyword: keyword}

	reqCtx := ctx
	if t.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, t.opts.RequestTimeout)
		defer cancel()
	}

	posts, err := t.client.SearchRecent(reqCtx, token, keyword, t.opts.MaxResults)
	if err != nil {
		return status, err
	}

	for _, post := range posts {
		tweet := models.Tweet{
			UserID:            userID,
			TweetID:           post.ID,
			TweetText:         post.Text,
			AuthorUsername:    post.AuthorUsername,
			AuthorDisplayName: post.AuthorDisplayName,
			PostedAt:          post.CreatedAt,
		}

		inserted, err := t.store.UpsertTweet(ctx, &tweet, keyword, !t.opts.AllowDuplicateMatches)
		if err != nil {
			return status, err
		}

		if inserted {
			metrics.TweetsIngested.WithLabelValues("inserted").Inc()
			result.TweetsFound++
			result.Tweets = append(result.Tweets, tweet)
			status.Found++
		} else {
			metrics.TweetsIngested.WithLabelValues("merged").Inc()
		}
	}

	return status, nil
}

// Tweets returns the user's stored tweets filtered by their current keyword
// set, newest first. A user with no keywords gets an empty list.
func (t *Tracker) Tweets(ctx context.Context, userID uuid.UUID) ([]models.Tweet, error) {
	keywords, err := t.store.GetKeywords(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		return []models.Tweet{}, nil
	}

	tweets, err := t.store.GetTweetsByKeywords(ctx, userID, keywords)
	if err != nil {
		return nil, err
	}
	if tweets == nil {
		tweets = []models.Tweet{}
	}
	return tweets, nil
}

// Stats aggregates tracking counts for a user. Fails only if the user does not
// exist.
func (t *Tracker) Stats(ctx context.Context, userID uuid.UUID) (*models.TrackingStats, error) {
	if _, err := t.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	keywords, err := t.store.GetKeywords(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := t.store.CountTweets(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := t.store.CountRecentTweets(ctx, userID, time.Now().Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}

	return &models.TrackingStats{
		TotalKeywords: len(keywords),
		TotalTweets:   total,
		RecentTweets:  recent,
		Keywords:      keywords,
	}, nil
}

// TrackUser runs the pipeline for one user, absorbing pipeline errors into the
// result instead of propagating them. A user with no keywords is a successful
// no-op.
func (t *Tracker) TrackUser(ctx context.Context, userID uuid.UUID) models.TrackResult {
	result := models.TrackResult{UserID: userID, Keywords: []string{}}

	user, err := t.store.GetUserByID(ctx, userID)
	if err != nil {
		metrics.TrackRuns.WithLabelValues("error").Inc()
		result.Error = err.Error()
		return result
	}
	result.Username = user.Username

	keywords, err := t.store.GetKeywords(ctx, userID)
	if err != nil {
		metrics.TrackRuns.WithLabelValues("error").Inc()
		result.Error = err.Error()
		return result
	}
	if len(keywords) == 0 {
		metrics.TrackRuns.WithLabelValues("ok").Inc()
		result.Success = true
		return result
	}
	result.Keywords = keywords

	search, err := t.SearchKeywords(ctx, userID)
	if err != nil {
		slog.Error("tracking failed", "user_id", userID, "error", err)
		metrics.TrackRuns.WithLabelValues("error").Inc()
		result.Error = err.Error()
		return result
	}

	metrics.TrackRuns.WithLabelValues("ok").Inc()
	result.TweetsFound = search.TweetsFound
	result.Success = true
	return result
}

// TrackAllUsers runs the pipeline for every user with a non-empty keyword set.
// One user's failure never aborts the batch; it is recorded in that user's
// result entry and iteration continues.
func (t *Tracker) TrackAllUsers(ctx context.Context) ([]models.TrackResult, error) {
	users, err := t.store.GetTrackableUsers(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]models.TrackResult, 0, len(users))
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := models.TrackResult{UserID: u.ID, Username: u.Username, Keywords: u.Keywords}

		search, err := t.SearchKeywords(ctx, u.ID)
		if err != nil {
			slog.Error("tracking failed", "user_id", u.ID, "error", err)
			metrics.TrackRuns.WithLabelValues("error").Inc()
			result.Error = err.Error()
		} else {
			metrics.TrackRuns.WithLabelValues("ok").Inc()
			result.TweetsFound = search.TweetsFound
			result.Success = true
		}

		results = append(results, result)
	}

	return results, nil
}
