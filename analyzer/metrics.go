package analyzer

import (
	"math"
	"time"

	"shorts-analyzer/internal/models"
)

// Performance score weighting. The score is a weighted sum of three
// normalized inputs: raw reach (views, log-scaled so viral outliers
// don't flatten everything else), engagement rate, and view velocity.
const (
	weightViews      = 0.40
	weightEngagement = 0.30
	weightVelocity   = 0.30

	// Normalization caps: log10 of 100M views, a 20% engagement rate
	// and 10k views/hour each count as "maxed out".
	viewsLogCap   = 8.0
	engagementCap = 0.20
	velocityCap   = 10000.0
)

// Calculate derives engagement metrics for one video as of now. It is a
// pure function of its inputs. A video with zero views gets all-zero
// metrics; the platform reports like/comment counts independently of
// views, so counter combinations that look impossible are passed
// through untouched.
func Calculate(video *models.Video, now time.Time) models.EngagementMetrics {
	if video.ViewCount == 0 {
		return models.EngagementMetrics{}
	}

	views := float64(video.ViewCount)
	totalEngagement := video.LikeCount + video.CommentCount

	// Same-minute uploads would divide by ~zero; floor at one hour.
	hoursSincePublished := now.Sub(video.PublishedAt).Hours()
	if hoursSincePublished < 1 {
		hoursSincePublished = 1
	}

	engagementRate := float64(totalEngagement) / views
	viewsPerHour := views / hoursSincePublished

	normViews := math.Min(math.Log10(views+1)/viewsLogCap, 1)
	normEngagement := math.Min(engagementRate/engagementCap, 1)
	normVelocity := math.Min(viewsPerHour/velocityCap, 1)

	score := 100 * (weightViews*normViews +
		weightEngagement*normEngagement +
		weightVelocity*normVelocity)

	return models.EngagementMetrics{
		EngagementRate:   round4(engagementRate),
		LikesToViews:     round4(float64(video.LikeCount) / views),
		CommentsToViews:  round4(float64(video.CommentCount) / views),
		ViewsPerHour:     round2(viewsPerHour),
		TotalEngagement:  totalEngagement,
		PerformanceScore: round2(score),
	}
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }

func round4(f float64) float64 { return math.Round(f*10000) / 10000 }
