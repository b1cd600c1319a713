package twitter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func newTestClient(server *httptest.Server) *Client {
	c := NewClient(server.URL, 5*time.Second)
	c.baseBackoff = time.Millisecond
	return c
}

func TestSearchRecentParsesAuthors(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"data": [
				{"id": "100", "text": "first match", "author_id": "u1", "created_at": "2026-08-27T10:00:00Z"},
				{"id": "200", "text": "second match", "author_id": "u2", "created_at": "2026-08-27T11:00:00Z"}
			],
			"includes": {"users": [
				{"id": "u1", "username": "alice", "name": "Alice A"},
				{"id": "u2", "username": "bob", "name": "Bob B"}
			]},
			"meta": {"result_count": 2}
		}`)
	}))
	defer server.Close()

	client := newTestClient(server)
	posts, err := client.SearchRecent(context.Background(), "test-token", "golang", 10)
	if err != nil {
		t.Fatalf("SearchRecent() error = %v", err)
	}

	if gotPath != "/tweets/search/recent" {
		t.Errorf("request path = %q, want /tweets/search/recent", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want Bearer test-token", gotAuth)
	}

	if len(posts) != 2 {
		t.Fatalf("len(posts) = %d, want 2", len(posts))
	}
	if posts[0].ID != "100" || posts[0].AuthorUsername != "alice" || posts[0].AuthorDisplayName != "Alice A" {
		t.Errorf("posts[0] = %+v, want id 100 by alice", posts[0])
	}
	want := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	if !posts[0].CreatedAt.Equal(want) {
		t.Errorf("posts[0].CreatedAt = %v, want %v", posts[0].CreatedAt, want)
	}
}

func TestSearchRecentDropsAuthorlessItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"data": [
				{"id": "100", "text": "has author", "author_id": "u1", "created_at": "2026-08-27T10:00:00Z"},
				{"id": "200", "text": "orphan", "author_id": "missing", "created_at": "2026-08-27T11:00:00Z"}
			],
			"includes": {"users": [{"id": "u1", "username": "alice", "name": "Alice A"}]},
			"meta": {"result_count": 2}
		}`)
	}))
	defer server.Close()

	client := newTestClient(server)
	posts, err := client.SearchRecent(context.Background(), "tok", "golang", 10)
	if err != nil {
		t.Fatalf("SearchRecent() error = %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("len(posts) = %d, want 1 (orphan dropped)", len(posts))
	}
	if posts[0].ID != "100" {
		t.Errorf("posts[0].ID = %q, want 100", posts[0].ID)
	}
}

func TestSearchRecentEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"meta": {"result_count": 0}}`)
	}))
	defer server.Close()

	client := newTestClient(server)
	posts, err := client.SearchRecent(context.Background(), "tok", "nothing", 10)
	if err != nil {
		t.Fatalf("SearchRecent() error = %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("len(posts) = %d, want 0", len(posts))
	}
}

func TestSearchRecentRetriesRateLimit(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"data": [{"id": "1", "text": "ok", "author_id": "u1", "created_at": "2026-08-27T10:00:00Z"}],
			"includes": {"users": [{"id": "u1", "username": "alice", "name": "Alice A"}]},
			"meta": {"result_count": 1}
		}`)
	}))
	defer server.Close()

	client := newTestClient(server)
	posts, err := client.SearchRecent(context.Background(), "tok", "golang", 10)
	if err != nil {
		t.Fatalf("SearchRecent() error = %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if len(posts) != 1 {
		t.Errorf("len(posts) = %d, want 1", len(posts))
	}
}

func TestSearchRecentRetriesRespectRateLimiter(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server)
	// One token available, none refilled within the test window: the retry
	// must block on the limiter instead of hitting the server again.
	client.limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := client.SearchRecent(ctx, "tok", "golang", 10)
	if err == nil {
		t.Fatal("SearchRecent() error = nil, want limiter/deadline failure")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (retry must wait on the limiter)", attempts)
	}
}

func TestSearchRecentGivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.SearchRecent(context.Background(), "tok", "golang", 10)
	if err == nil {
		t.Fatal("SearchRecent() error = nil, want failure after retries")
	}
	if attempts != client.maxAttempts {
		t.Errorf("attempts = %d, want %d", attempts, client.maxAttempts)
	}
}

func TestSearchRecentUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server)
	_, err := client.SearchRecent(context.Background(), "bad-token", "golang", 10)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("SearchRecent() error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", statusErr.StatusCode)
	}
}

func TestSearchRecentCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server)
	_, err := client.SearchRecent(ctx, "tok", "golang", 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("SearchRecent() error = %v, want context.Canceled", err)
	}
}

func TestClampMaxResults(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 10},
		{5, 10},
		{10, 10},
		{50, 50},
		{500, 100},
	}
	for _, tt := range tests {
		if got := clamp(tt.in, 10, 100); got != tt.want {
			t.Errorf("clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
