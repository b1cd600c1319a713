package jobs

import (
	"context"
	"log"
	"time"

	"mentionwatch/internal/tracker"
)

// TrackerJob periodically runs the keyword tracking pipeline for all users.
type TrackerJob struct {
	tracker  *tracker.Tracker
	interval time.Duration
}

// NewTrackerJob creates a new background tracking job.
func NewTrackerJob(t *tracker.Tracker, interval time.Duration) *TrackerJob {
	return &TrackerJob{tracker: t, interval: interval}
}

// Start begins the background tracking loop. It runs one pass immediately and
// then on every tick until the context is cancelled.
func (j *TrackerJob) Start(ctx context.Context) {
	log.Printf("Keyword tracker started (interval: %v)", j.interval)

	j.runOnce(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Keyword tracker stopped")
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *TrackerJob) runOnce(ctx context.Context) {
	results, err := j.tracker.TrackAllUsers(ctx)
	if err != nil {
		log.Printf("Keyword tracker: batch run failed: %v", err)
		return
	}

	var found, failed int
	for _, r := range results {
		found += r.TweetsFound
		if !r.Success {
			failed++
		}
	}

	if len(results) > 0 {
		log.Printf("Keyword tracker: %d users processed, %d tweets found, %d failed", len(results), found, failed)
	}
}
