package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"shorts-analyzer/internal/models"
)

func scoredVideo(id string, score float64, views int64) *models.ScoredVideo {
	return &models.ScoredVideo{
		Video: &models.Video{
			ID: id, Title: "Video " + id, ChannelTitle: "Channel " + id, ChannelID: "c-" + id,
			ViewCount: views, URL: "https://www.youtube.com/watch?v=" + id,
		},
		Metrics: models.EngagementMetrics{PerformanceScore: score, EngagementRate: 0.05},
	}
}

func TestWriteHTMLSummaryAndTopTable(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	rep := &models.Report{
		GeneratedAt:       now,
		Category:          "gaming shorts",
		SortMethod:        "viewCount",
		Count:             12,
		AvgScore:          33.33,
		AvgEngagementRate: 0.0512,
		TotalViews:        120000,
	}
	for i := 0; i < 12; i++ {
		rep.Videos = append(rep.Videos, scoredVideo(
			string(rune('a'+i)), float64(120-i*10), int64(1000*(12-i))))
	}

	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTML(rep, path); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)

	if !strings.Contains(html, "Total Videos Analyzed: 12") {
		t.Error("summary block missing video count")
	}
	if !strings.Contains(html, "Average Performance Score: 33.33") {
		t.Error("summary block missing average score")
	}
	if !strings.Contains(html, "Average Engagement Rate: 5.12%") {
		t.Error("summary block missing average engagement rate as a percentage")
	}
	if !strings.Contains(html, "Total Views: 120000") {
		t.Error("summary block missing total views")
	}
	if !strings.Contains(html, "2026-08-30 12:00:00") {
		t.Error("summary block missing analysis date")
	}

	// Only the top 10 records make the table.
	if strings.Count(html, "watch?v=") != 10 {
		t.Errorf("table rows = %d, want 10", strings.Count(html, "watch?v="))
	}
	if strings.Contains(html, "Video k") || strings.Contains(html, "Video l") {
		t.Error("records 11 and 12 must not appear in the top-10 table")
	}

	// Order: highest score first.
	if strings.Index(html, "Video a") > strings.Index(html, "Video b") {
		t.Error("top table not in descending score order")
	}
}

func TestWriteHTMLEscapesUntrustedTitles(t *testing.T) {
	rep := &models.Report{
		GeneratedAt: time.Now(),
		Count:       1,
		Videos: []*models.ScoredVideo{{
			Video:   &models.Video{ID: "x", Title: `<script>alert("xss")</script>`, ChannelTitle: "c"},
			Metrics: models.EngagementMetrics{},
		}},
	}

	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTML(rep, path); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "<script>alert") {
		t.Error("video titles must be HTML-escaped")
	}
}

func TestWriteHTMLHighlights(t *testing.T) {
	rep := &models.Report{
		GeneratedAt: time.Now(),
		Count:       1,
		Videos:      []*models.ScoredVideo{scoredVideo("a", 50, 1000)},
		Highlights: []models.Highlight{
			{VideoID: "a", Takeaway: "High velocity for a small channel."},
		},
	}

	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTML(rep, path); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "High velocity for a small channel.") {
		t.Error("highlights section missing")
	}
}
