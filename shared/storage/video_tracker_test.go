package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestVideoTrackerMarkAndCheck(t *testing.T) {
	dir := t.TempDir()
	tracker, err := NewVideoTracker(dir, time.Hour)
	if err != nil {
		t.Fatalf("NewVideoTracker() error = %v", err)
	}

	if tracker.IsReported("v1") {
		t.Error("fresh tracker should not know v1")
	}
	if err := tracker.MarkReported([]string{"v1", "v2"}); err != nil {
		t.Fatalf("MarkReported() error = %v", err)
	}
	if !tracker.IsReported("v1") || !tracker.IsReported("v2") {
		t.Error("marked videos should be reported")
	}
	if tracker.Count() != 2 {
		t.Errorf("Count() = %d, want 2", tracker.Count())
	}
}

func TestVideoTrackerPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	tracker, err := NewVideoTracker(dir, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if err := tracker.MarkReported([]string{"v1"}); err != nil {
		t.Fatal(err)
	}

	reloaded, err := NewVideoTracker(dir, time.Hour)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reloaded.IsReported("v1") {
		t.Error("tracked videos must survive a restart")
	}
}

func TestVideoTrackerExpiresOldEntries(t *testing.T) {
	dir := t.TempDir()

	// Seed the store with one stale and one fresh entry.
	entries := []trackedVideo{
		{VideoID: "stale", ReportedAt: time.Now().Add(-48 * time.Hour)},
		{VideoID: "fresh", ReportedAt: time.Now()},
	}
	data, err := json.Marshal(entries)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "reported_videos.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	tracker, err := NewVideoTracker(dir, 24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if tracker.IsReported("stale") {
		t.Error("entries past the retention window must expire")
	}
	if !tracker.IsReported("fresh") {
		t.Error("fresh entries must survive the cleanup")
	}
}

func TestVideoTrackerCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "reported_videos.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewVideoTracker(dir, time.Hour); err == nil {
		t.Error("corrupt store should surface an error, not silently reset")
	}
}
