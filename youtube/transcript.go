package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Caption fetching via YouTube's public timedtext endpoint. This does
// not count against the Data API quota.

const timedtextURL = "https://www.youtube.com/api/timedtext"

type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

type timedtextEvent struct {
	Segs []timedtextSegment `json:"segs,omitempty"`
}

type timedtextSegment struct {
	UTF8 string `json:"utf8"`
}

// FetchTranscript returns the video's captions joined into plain text.
// Videos without captions return an empty string and no error; they are
// common among Shorts and not a failure of the run.
func (c *Client) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	if videoID == "" {
		return "", fmt.Errorf("video ID is required")
	}

	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", "en")
	params.Set("fmt", "json3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, timedtextURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("timedtext request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", nil
	default:
		return "", fmt.Errorf("timedtext API returned status %d for video %s", resp.StatusCode, videoID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read timedtext response: %w", err)
	}
	// The endpoint answers 200 with an empty body when no track exists.
	if len(body) == 0 {
		return "", nil
	}

	return parseTimedtext(body)
}

func parseTimedtext(data []byte) (string, error) {
	var resp timedtextResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("unmarshal timedtext response: %w", err)
	}

	var sb strings.Builder
	for _, event := range resp.Events {
		for _, seg := range event.Segs {
			text := strings.TrimSpace(seg.UTF8)
			if text == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(text)
		}
	}
	return sb.String(), nil
}
