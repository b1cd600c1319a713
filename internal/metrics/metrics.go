package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"mentionwatch/internal/db"
)

var (
	keywordMatchesDesc = prometheus.NewDesc(
		"mentionwatch_keyword_matches_total",
		"Accumulated stored-tweet matches per keyword",
		[]string{"keyword"},
		nil,
	)

	// KeywordRequests counts per-keyword search requests by outcome (ok | error).
	KeywordRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentionwatch_keyword_requests_total",
			Help: "Search API requests per keyword iteration by outcome",
		},
		[]string{"outcome"},
	)

	// TweetsIngested counts upsert results (inserted | merged).
	TweetsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentionwatch_tweets_ingested_total",
			Help: "Candidate matches processed by upsert result",
		},
		[]string{"result"},
	)

	// TrackRuns counts per-user tracking runs by outcome (ok | error).
	TrackRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentionwatch_track_runs_total",
			Help: "Per-user tracking runs by outcome",
		},
		[]string{"outcome"},
	)
)

// KeywordCollector is a custom Prometheus collector that reads accumulated
// keyword match counts from the database on each scrape.
type KeywordCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *KeywordCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- keywordMatchesDesc
}

// Collect queries the database for keyword match totals and emits them as counters.
func (c *KeywordCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.GetKeywordMatchCounts(context.Background())
	if err != nil {
		slog.Error("failed to collect keyword match metrics", "error", err)
		return
	}
	for _, kc := range counts {
		ch <- prometheus.MustNewConstMetric(
			keywordMatchesDesc,
			prometheus.CounterValue,
			float64(kc.Count),
			kc.Keyword,
		)
	}
}

var initOnce sync.Once

// Init registers the pipeline counters and the database-backed collector.
// Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(KeywordRequests, TweetsIngested, TrackRuns)
		prometheus.MustRegister(&KeywordCollector{db: database})
	})
}
