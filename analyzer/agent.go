package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"shorts-analyzer/internal/models"
	"shorts-analyzer/report"
	"shorts-analyzer/shared/ai"
	"shorts-analyzer/shared/config"
	"shorts-analyzer/shared/storage"
	"shorts-analyzer/youtube"
)

// VideoSource is the slice of the YouTube client the agent needs.
type VideoSource interface {
	Search(ctx context.Context, req youtube.SearchRequest) ([]string, error)
	FetchDetails(ctx context.Context, ids []string) ([]*models.Video, error)
	FetchTranscript(ctx context.Context, videoID string) (string, error)
	QuotaUsed() int
}

// Highlighter produces optional AI commentary for the report.
type Highlighter interface {
	Highlights(ctx context.Context, videos []*models.ScoredVideo) ([]models.Highlight, error)
}

// ReportTracker remembers videos from earlier runs so scheduled mode
// doesn't report the same short every day.
type ReportTracker interface {
	IsReported(videoID string) bool
	MarkReported(videoIDs []string) error
}

// Preferences describe one search. Either Start/End are set explicitly
// (interactive mode) or WindowDays is set and the range is derived at
// run time (scheduled mode).
type Preferences struct {
	Category   string
	SortMethod string
	MaxResults int64
	Start      time.Time
	End        time.Time
	WindowDays int
}

// Agent runs the full pipeline: search, fetch details, filter duplicate
// channels, compute metrics and write the CSV/HTML reports.
type Agent struct {
	cfg         *config.Config
	prefs       Preferences
	source      VideoSource
	highlighter Highlighter
	tracker     ReportTracker
	trackRuns   bool
}

func New(cfg *config.Config, prefs Preferences, trackRuns bool) *Agent {
	return &Agent{
		cfg:       cfg,
		prefs:     prefs,
		trackRuns: trackRuns,
	}
}

func (a *Agent) Name() string {
	return "Shorts Analyzer"
}

func (a *Agent) Initialize() error {
	log.Printf("Initializing %s...", a.Name())

	if a.source == nil {
		client, err := youtube.NewClient(context.Background(), &a.cfg.YouTube)
		if err != nil {
			return fmt.Errorf("failed to create YouTube client: %w", err)
		}
		a.source = client
		log.Println("YouTube client initialized")
	}

	if a.highlighter == nil && a.cfg.AI.GeminiAPIKey != "" {
		h, err := ai.NewHighlighter(context.Background(), &a.cfg.AI)
		if err != nil {
			return fmt.Errorf("failed to create highlighter: %w", err)
		}
		a.highlighter = h
		log.Println("AI highlighter initialized")
	}

	if a.tracker == nil && a.trackRuns {
		tracker, err := storage.NewVideoTracker("data", 30*24*time.Hour)
		if err != nil {
			return fmt.Errorf("failed to create video tracker: %w", err)
		}
		a.tracker = tracker
		log.Printf("Video tracker initialized (%d videos tracked)", tracker.Count())
	}

	return nil
}

// RunOnce executes one analysis run and returns a one-line summary for
// monitoring. Quota exhaustion mid-run is not fatal as long as some
// records were fetched: they are still reported.
func (a *Agent) RunOnce(ctx context.Context) (string, error) {
	start, end := a.prefs.window(time.Now())

	log.Printf("Searching %q sorted by %s (%s to %s, up to %d videos)",
		a.prefs.Category, a.prefs.SortMethod,
		start.Format("2006-01-02"), end.Format("2006-01-02"), a.prefs.MaxResults)

	ids, err := a.source.Search(ctx, youtube.SearchRequest{
		Query:           a.prefs.Category,
		Order:           a.prefs.SortMethod,
		PublishedAfter:  start,
		PublishedBefore: end,
		MaxResults:      a.prefs.MaxResults,
	})
	quotaHit := errors.Is(err, youtube.ErrQuotaExceeded)
	if err != nil && !quotaHit {
		return "", fmt.Errorf("search failed: %w", err)
	}
	if len(ids) == 0 {
		if quotaHit {
			return "", err
		}
		log.Println("No videos matched the search")
		return "found 0 videos", nil
	}

	videos, err := a.source.FetchDetails(ctx, ids)
	if err != nil {
		if !errors.Is(err, youtube.ErrQuotaExceeded) {
			return "", fmt.Errorf("fetching video details failed: %w", err)
		}
		quotaHit = true
	}

	found := len(videos)

	if a.tracker != nil {
		var fresh []*models.Video
		for _, v := range videos {
			if a.tracker.IsReported(v.ID) {
				continue
			}
			fresh = append(fresh, v)
		}
		if skipped := len(videos) - len(fresh); skipped > 0 {
			log.Printf("Skipping %d videos already reported in earlier runs", skipped)
		}
		videos = fresh
	}

	videos = DedupeByChannel(videos)

	if a.cfg.YouTube.FetchTranscripts {
		a.fetchTranscripts(ctx, videos)
	}

	rep := BuildReport(videos, a.prefs.Category, a.prefs.SortMethod, time.Now())
	if rep.Count == 0 {
		if quotaHit {
			return "", youtube.ErrQuotaExceeded
		}
		log.Println("Nothing new to report")
		return fmt.Sprintf("found %d videos, reported 0", found), nil
	}

	if a.highlighter != nil {
		highlights, err := a.highlighter.Highlights(ctx, rep.Top(10))
		if err != nil {
			log.Printf("Warning: highlight generation failed, continuing without: %v", err)
		} else {
			rep.Highlights = highlights
		}
	}

	timestamp := rep.GeneratedAt.Format("20060102_150405")
	csvPath := filepath.Join(a.cfg.Output.Dir, fmt.Sprintf("youtube_shorts_analysis_%s.csv", timestamp))
	htmlPath := filepath.Join(a.cfg.Output.Dir, fmt.Sprintf("youtube_shorts_analysis_%s_report.html", timestamp))

	if err := report.WriteCSV(rep, csvPath); err != nil {
		return "", err
	}
	if err := report.WriteHTML(rep, htmlPath); err != nil {
		return "", err
	}
	log.Printf("Data saved to: %s", csvPath)
	log.Printf("HTML report generated: %s", htmlPath)

	if a.tracker != nil {
		ids := make([]string, 0, rep.Count)
		for _, sv := range rep.Videos {
			ids = append(ids, sv.Video.ID)
		}
		if err := a.tracker.MarkReported(ids); err != nil {
			log.Printf("Warning: failed to mark videos as reported: %v", err)
		}
	}

	log.Printf("Summary: %d videos, avg score %.2f, avg engagement rate %.2f%%, total views %d",
		rep.Count, rep.AvgScore, rep.AvgEngagementRate*100, rep.TotalViews)
	if quotaHit {
		log.Printf("Daily quota exhausted mid-run: report covers the %d videos fetched before the limit; retry after the quota resets", rep.Count)
	}

	return fmt.Sprintf("found %d videos, reported %d (quota used: %d units)", found, rep.Count, a.source.QuotaUsed()), nil
}

func (a *Agent) fetchTranscripts(ctx context.Context, videos []*models.Video) {
	for _, v := range videos {
		transcript, err := a.source.FetchTranscript(ctx, v.ID)
		if err != nil {
			log.Printf("Warning: transcript fetch failed for %s: %v", v.ID, err)
			continue
		}
		v.Transcript = transcript
	}
}

// window resolves the effective date range: explicit dates win, a
// WindowDays-relative range is computed from now.
func (p Preferences) window(now time.Time) (time.Time, time.Time) {
	if !p.Start.IsZero() || !p.End.IsZero() {
		return p.Start, p.End
	}
	days := p.WindowDays
	if days <= 0 {
		days = 7
	}
	return now.AddDate(0, 0, -days), now
}
