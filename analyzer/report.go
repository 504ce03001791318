package analyzer

import (
	"sort"
	"time"

	"shorts-analyzer/internal/models"
)

// BuildReport scores the videos, orders them by performance score
// descending with ties broken by higher view count, and computes the
// summary aggregates.
func BuildReport(videos []*models.Video, category, sortMethod string, now time.Time) *models.Report {
	scored := make([]*models.ScoredVideo, 0, len(videos))
	for _, v := range videos {
		v.Category = category
		v.SortMethod = sortMethod
		scored = append(scored, &models.ScoredVideo{
			Video:   v,
			Metrics: Calculate(v, now),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Metrics.PerformanceScore != scored[j].Metrics.PerformanceScore {
			return scored[i].Metrics.PerformanceScore > scored[j].Metrics.PerformanceScore
		}
		return scored[i].Video.ViewCount > scored[j].Video.ViewCount
	})

	report := &models.Report{
		GeneratedAt: now,
		Category:    category,
		SortMethod:  sortMethod,
		Videos:      scored,
		Count:       len(scored),
	}
	if len(scored) == 0 {
		return report
	}

	var scoreSum, rateSum float64
	for _, sv := range scored {
		scoreSum += sv.Metrics.PerformanceScore
		rateSum += sv.Metrics.EngagementRate
		report.TotalViews += sv.Video.ViewCount
	}
	report.AvgScore = round2(scoreSum / float64(len(scored)))
	report.AvgEngagementRate = round4(rateSum / float64(len(scored)))

	return report
}
