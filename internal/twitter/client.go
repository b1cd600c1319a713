// Package twitter implements a client for the X API v2 recent-search endpoint.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Post is one search result item with its author already resolved through the
// response's user lookup table. Items whose author is missing from the lookup
// table are dropped during parsing; they are not actionable without attribution.
type Post struct {
	ID                string
	Text              string
	AuthorUsername    string
	AuthorDisplayName string
	CreatedAt         time.Time
}

// SearchClient is the part of the API the tracking pipeline consumes.
type SearchClient interface {
	SearchRecent(ctx context.Context, accessToken, query string, maxResults int) ([]Post, error)
}

// Client is a rate-limited HTTP client for the X API v2. The bearer token is
// supplied per call because each user tracks with their own linked credential.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	baseBackoff time.Duration
}

// NewClient creates a search API client. baseURL defaults to the public API
// when empty.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.twitter.com/2"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(rate.Limit(2), 10),
		maxAttempts: 3,
		baseBackoff: 500 * time.Millisecond,
	}
}

// searchResponse mirrors the recent-search payload: raw items plus an author
// lookup table under includes.
type searchResponse struct {
	Data []struct {
		ID        string    `json:"id"`
		Text      string    `json:"text"`
		AuthorID  string    `json:"author_id"`
		CreatedAt time.Time `json:"created_at"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Name     string `json:"name"`
		} `json:"users"`
	} `json:"includes"`
	Meta struct {
		ResultCount int `json:"result_count"`
	} `json:"meta"`
}

// SearchRecent issues one bounded recent-search request for the query and
// returns resolved posts in the API's order (newest first). This targets the
// recent window only; it is not an exhaustive historical search.
func (c *Client) SearchRecent(ctx context.Context, accessToken, query string, maxResults int) ([]Post, error) {
	u := fmt.Sprintf("%s/tweets/search/recent?query=%s&max_results=%d&tweet.fields=created_at,author_id&user.fields=username,name&expansions=author_id",
		c.baseURL, url.QueryEscape(query), clamp(maxResults, 10, 100))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	authors := make(map[string]struct{ username, name string }, len(raw.Includes.Users))
	for _, u := range raw.Includes.Users {
		authors[u.ID] = struct{ username, name string }{u.Username, u.Name}
	}

	posts := make([]Post, 0, len(raw.Data))
	for _, d := range raw.Data {
		author, ok := authors[d.AuthorID]
		if !ok {
			continue
		}
		posts = append(posts, Post{
			ID:                d.ID,
			Text:              d.Text,
			AuthorUsername:    author.username,
			AuthorDisplayName: author.name,
			CreatedAt:         d.CreatedAt,
		})
	}

	return posts, nil
}

// doWithRetry retries 429 and 5xx responses with exponential backoff, honoring
// Retry-After when present. Every attempt, retries included, waits on the rate
// limiter first. Context cancellation aborts the wait.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	backoff := c.baseBackoff
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req.Clone(ctx))
		if err == nil {
			if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
				return resp, nil
			}
			wait := retryAfter(resp, backoff)
			resp.Body.Close()
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
			continue
		}

		lastErr = err
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		backoff *= 2
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("upstream kept responding with retryable status")
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func retryAfter(resp *http.Response, fallback time.Duration) time.Duration {
	ra := resp.Header.Get("Retry-After")
	if ra == "" {
		return fallback
	}
	if secs, err := time.ParseDuration(ra + "s"); err == nil {
		return secs
	}
	if t, err := http.ParseTime(ra); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return fallback
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
