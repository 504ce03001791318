package report

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"shorts-analyzer/internal/models"
	"shorts-analyzer/shared/storage"
)

// csvColumns is the fixed column order of the CSV output. Consumers
// parse by position, so this order is part of the tool's contract.
var csvColumns = []string{
	"video_id", "title", "channel_title", "channel_id",
	"performance_score", "view_count", "like_count", "comment_count",
	"engagement_rate", "likes_to_views_ratio", "comments_to_views_ratio",
	"avg_views_per_hour", "total_engagement",
	"published_at", "duration", "category", "sort_method",
}

// WriteCSV writes the report as UTF-8 comma-delimited rows with a
// header, one row per video, in report order. The file is written
// atomically so a failure never leaves a truncated report behind.
func WriteCSV(rep *models.Report, path string) error {
	w, err := storage.NewAtomicWriter(path)
	if err != nil {
		return fmt.Errorf("failed to write CSV to %s: %w", path, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		w.Abort()
		return fmt.Errorf("failed to write CSV to %s: %w", path, err)
	}
	for _, sv := range rep.Videos {
		if err := cw.Write(csvRow(sv)); err != nil {
			w.Abort()
			return fmt.Errorf("failed to write CSV to %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		w.Abort()
		return fmt.Errorf("failed to write CSV to %s: %w", path, err)
	}

	if err := w.Commit(); err != nil {
		return fmt.Errorf("failed to write CSV to %s: %w", path, err)
	}
	return nil
}

func csvRow(sv *models.ScoredVideo) []string {
	v, m := sv.Video, sv.Metrics
	return []string{
		v.ID,
		v.Title,
		v.ChannelTitle,
		v.ChannelID,
		formatFloat(m.PerformanceScore),
		strconv.FormatInt(v.ViewCount, 10),
		strconv.FormatInt(v.LikeCount, 10),
		strconv.FormatInt(v.CommentCount, 10),
		formatFloat(m.EngagementRate),
		formatFloat(m.LikesToViews),
		formatFloat(m.CommentsToViews),
		formatFloat(m.ViewsPerHour),
		strconv.FormatInt(m.TotalEngagement, 10),
		v.PublishedAt.UTC().Format(time.RFC3339),
		v.Duration,
		v.Category,
		v.SortMethod,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
