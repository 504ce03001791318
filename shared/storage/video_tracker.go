package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// VideoTracker persists the IDs of videos that already appeared in a
// report, so scheduled runs don't resurface the same short every day.
// Entries expire after maxAge.
type VideoTracker struct {
	filePath string
	reported map[string]time.Time
	mu       sync.RWMutex
	maxAge   time.Duration
}

type trackedVideo struct {
	VideoID    string    `json:"video_id"`
	ReportedAt time.Time `json:"reported_at"`
}

func NewVideoTracker(dataDir string, maxAge time.Duration) (*VideoTracker, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	t := &VideoTracker{
		filePath: filepath.Join(dataDir, "reported_videos.json"),
		reported: make(map[string]time.Time),
		maxAge:   maxAge,
	}
	if err := t.load(); err != nil {
		return nil, fmt.Errorf("failed to load video tracker data: %w", err)
	}
	t.expire()

	return t, nil
}

// IsReported reports whether the video appeared in a recent report.
func (t *VideoTracker) IsReported(videoID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	reportedAt, ok := t.reported[videoID]
	return ok && time.Since(reportedAt) < t.maxAge
}

// MarkReported records a batch of video IDs and persists the store.
func (t *VideoTracker) MarkReported(videoIDs []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	for _, id := range videoIDs {
		t.reported[id] = now
	}
	return t.save()
}

func (t *VideoTracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.reported)
}

func (t *VideoTracker) expire() {
	cutoff := time.Now().Add(-t.maxAge)
	for id, reportedAt := range t.reported {
		if reportedAt.Before(cutoff) {
			delete(t.reported, id)
		}
	}
}

func (t *VideoTracker) load() error {
	data, err := os.ReadFile(t.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var entries []trackedVideo
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to decode tracker data: %w", err)
	}
	for _, e := range entries {
		t.reported[e.VideoID] = e.ReportedAt
	}
	return nil
}

func (t *VideoTracker) save() error {
	entries := make([]trackedVideo, 0, len(t.reported))
	for id, reportedAt := range t.reported {
		entries = append(entries, trackedVideo{VideoID: id, ReportedAt: reportedAt})
	}

	w, err := NewAtomicWriter(t.filePath)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		w.Abort()
		return err
	}
	return w.Commit()
}
