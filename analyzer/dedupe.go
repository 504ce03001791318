package analyzer

import "shorts-analyzer/internal/models"

// DedupeByChannel keeps only the first video seen from each channel,
// preserving input order. Search results sorted by view count tend to
// cluster around a handful of big channels; this keeps the report
// diverse.
func DedupeByChannel(videos []*models.Video) []*models.Video {
	seen := make(map[string]bool, len(videos))
	out := make([]*models.Video, 0, len(videos))
	for _, v := range videos {
		if seen[v.ChannelID] {
			continue
		}
		seen[v.ChannelID] = true
		out = append(out, v)
	}
	return out
}
