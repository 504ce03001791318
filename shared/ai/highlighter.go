package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"shorts-analyzer/internal/models"
	"shorts-analyzer/shared/config"

	"google.golang.org/genai"
)

// Highlighter asks Gemini for one-line takeaways about the top videos
// of a report. It only ever sees metadata and computed metrics.
type Highlighter struct {
	client *genai.Client
	model  string
}

func NewHighlighter(ctx context.Context, cfg *config.AIConfig) (*Highlighter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Highlighter{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (h *Highlighter) Highlights(ctx context.Context, videos []*models.ScoredVideo) ([]models.Highlight, error) {
	if len(videos) == 0 {
		return nil, nil
	}

	prompt := buildHighlightPrompt(videos)
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := h.client.Models.GenerateContent(ctx, h.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("highlight generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	return parseHighlights(text)
}

func buildHighlightPrompt(videos []*models.ScoredVideo) string {
	var sb strings.Builder
	sb.WriteString("You are given engagement metrics for the top-performing YouTube Shorts of an analysis run.\n")
	sb.WriteString("For each video, write one short takeaway (max 25 words) about why it performs the way it does.\n\n")

	for _, sv := range videos {
		fmt.Fprintf(&sb, "video_id: %s\ntitle: %s\nchannel: %s\nviews: %d\nengagement_rate: %.2f%%\nviews_per_hour: %.1f\nperformance_score: %.2f\n\n",
			sv.Video.ID, sv.Video.Title, sv.Video.ChannelTitle,
			sv.Video.ViewCount, sv.Metrics.EngagementRate*100,
			sv.Metrics.ViewsPerHour, sv.Metrics.PerformanceScore)
	}

	sb.WriteString(`Respond with ONLY a JSON array in this exact format:
[{"video_id": "...", "takeaway": "..."}]`)
	return sb.String()
}

// parseHighlights tolerates the model wrapping its JSON in a markdown
// code fence.
func parseHighlights(text string) ([]models.Highlight, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var highlights []models.Highlight
	if err := json.Unmarshal([]byte(text), &highlights); err != nil {
		return nil, fmt.Errorf("failed to parse highlights response: %w", err)
	}
	return highlights, nil
}
