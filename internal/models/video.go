package models

import "time"

type Video struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	ChannelID       string    `json:"channel_id"`
	ChannelTitle    string    `json:"channel_title"`
	PublishedAt     time.Time `json:"published_at"`
	Duration        string    `json:"duration"`
	DurationSeconds int       `json:"duration_seconds"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
	CommentCount    int64     `json:"comment_count"`
	Transcript      string    `json:"transcript,omitempty"`
	URL             string    `json:"url"`
	Category        string    `json:"category"`
	SortMethod      string    `json:"sort_method"`
}

// EngagementMetrics holds the derived metrics for one video. Ratio fields
// are fractions of the view count (0.06 means 6%), rounded to 4 decimals.
type EngagementMetrics struct {
	EngagementRate   float64 `json:"engagement_rate"`
	LikesToViews     float64 `json:"likes_to_views_ratio"`
	CommentsToViews  float64 `json:"comments_to_views_ratio"`
	ViewsPerHour     float64 `json:"avg_views_per_hour"`
	TotalEngagement  int64   `json:"total_engagement"`
	PerformanceScore float64 `json:"performance_score"`
}

type ScoredVideo struct {
	Video   *Video            `json:"video"`
	Metrics EngagementMetrics `json:"metrics"`
}

// Highlight is a short AI-generated takeaway about one of the top videos.
type Highlight struct {
	VideoID  string `json:"video_id"`
	Takeaway string `json:"takeaway"`
}

// Report is the final, ordered result of one analysis run: scored videos
// sorted by performance score (ties broken by view count) plus summary
// aggregates for the report header.
type Report struct {
	GeneratedAt       time.Time      `json:"generated_at"`
	Category          string         `json:"category"`
	SortMethod        string         `json:"sort_method"`
	Videos            []*ScoredVideo `json:"videos"`
	Count             int            `json:"count"`
	AvgScore          float64        `json:"avg_score"`
	AvgEngagementRate float64        `json:"avg_engagement_rate"`
	TotalViews        int64          `json:"total_views"`
	Highlights        []Highlight    `json:"highlights,omitempty"`
}

// Top returns the first n videos of the report, fewer if the report is
// shorter. Videos are already in final order.
func (r *Report) Top(n int) []*ScoredVideo {
	if n > len(r.Videos) {
		n = len(r.Videos)
	}
	return r.Videos[:n]
}
