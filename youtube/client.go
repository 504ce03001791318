package youtube

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"shorts-analyzer/internal/models"
	"shorts-analyzer/internal/retry"
	"shorts-analyzer/shared/config"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const maxPageSize = 50 // API cap for both search.list and videos.list

// Client wraps the YouTube Data API v3 for searching short-form videos
// and fetching their statistics. All calls are paced, quota-accounted
// and retried on transient failures.
type Client struct {
	service *youtube.Service
	region  string
	quota   *quotaLedger
	limiter *rate.Limiter
	retry   retry.Config
	httpc   *http.Client // timedtext only, unauthenticated
}

// SearchRequest describes one search against the API. MaxResults above
// the page size is reached by paginating.
type SearchRequest struct {
	Query           string
	Order           string
	PublishedAfter  time.Time
	PublishedBefore time.Time
	MaxResults      int64
}

// NewClient builds an authenticated client. An API key is preferred;
// without one it falls back to the OAuth device flow using the
// configured client ID/secret and persists the token for later runs.
func NewClient(ctx context.Context, cfg *config.YouTubeConfig) (*Client, error) {
	var opts []option.ClientOption
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.ClientID != "" && cfg.ClientSecret != "":
		httpClient, err := oauthHTTPClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to authorize via OAuth: %w", err)
		}
		opts = append(opts, option.WithHTTPClient(httpClient))
	default:
		return nil, fmt.Errorf("no YouTube credentials configured")
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service: service,
		region:  cfg.Region,
		quota:   newQuotaLedger(cfg.DailyQuota),
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		retry:   retry.DefaultConfig(),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Search returns video IDs matching the request, in API result order.
// On quota exhaustion it returns the IDs collected so far together with
// ErrQuotaExceeded so the caller can still use the partial results.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]string, error) {
	pageSize := req.MaxResults
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var ids []string
	pageToken := ""

	for int64(len(ids)) < req.MaxResults {
		if err := c.quota.charge(costSearch); err != nil {
			return ids, err
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return ids, err
		}

		var resp *youtube.SearchListResponse
		err := retry.Do(ctx, c.retry, isTransient, func(ctx context.Context) error {
			call := c.service.Search.List([]string{"id", "snippet"}).
				Q(req.Query).
				Type("video").
				VideoDuration("short").
				Order(req.Order).
				MaxResults(pageSize).
				RegionCode(c.region).
				RelevanceLanguage("en").
				Context(ctx)
			if !req.PublishedAfter.IsZero() {
				call = call.PublishedAfter(req.PublishedAfter.UTC().Format(time.RFC3339))
			}
			if !req.PublishedBefore.IsZero() {
				call = call.PublishedBefore(req.PublishedBefore.UTC().Format(time.RFC3339))
			}
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			var callErr error
			resp, callErr = call.Do()
			return callErr
		})
		if err != nil {
			if isQuotaError(err) {
				return ids, ErrQuotaExceeded
			}
			return ids, fmt.Errorf("search request failed: %w", err)
		}

		for _, item := range resp.Items {
			if item.Id == nil || item.Id.VideoId == "" {
				continue
			}
			ids = append(ids, item.Id.VideoId)
			if int64(len(ids)) >= req.MaxResults {
				break
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	log.Printf("Search for %q returned %d videos (%d quota units used)", req.Query, len(ids), c.quota.usedUnits())
	return ids, nil
}

// FetchDetails resolves video IDs to full records via batched
// videos.list calls, preserving the order of ids. Partial results are
// returned alongside ErrQuotaExceeded when the quota runs out mid-way.
func (c *Client) FetchDetails(ctx context.Context, ids []string) ([]*models.Video, error) {
	byID := make(map[string]*models.Video, len(ids))

	var fetchErr error
	for i := 0; i < len(ids); i += maxPageSize {
		end := i + maxPageSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[i:end]

		if err := c.quota.charge(costVideosList); err != nil {
			fetchErr = err
			break
		}
		if err := c.limiter.Wait(ctx); err != nil {
			fetchErr = err
			break
		}

		var resp *youtube.VideoListResponse
		err := retry.Do(ctx, c.retry, isTransient, func(ctx context.Context) error {
			var callErr error
			resp, callErr = c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
				Id(batch...).
				Context(ctx).
				Do()
			return callErr
		})
		if err != nil {
			if isQuotaError(err) {
				fetchErr = ErrQuotaExceeded
				break
			}
			fetchErr = fmt.Errorf("video details request failed: %w", err)
			break
		}

		for _, item := range resp.Items {
			byID[item.Id] = mapVideo(item)
		}
	}

	videos := make([]*models.Video, 0, len(byID))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, fetchErr
}

// QuotaUsed reports the quota units consumed so far in this run.
func (c *Client) QuotaUsed() int { return c.quota.usedUnits() }

func mapVideo(item *youtube.Video) *models.Video {
	video := &models.Video{
		ID:  item.Id,
		URL: fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Id),
	}
	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.ChannelID = item.Snippet.ChannelId
		video.ChannelTitle = item.Snippet.ChannelTitle
		if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			video.PublishedAt = publishedAt
		}
	}
	if item.ContentDetails != nil {
		video.Duration = item.ContentDetails.Duration
		video.DurationSeconds = parseDurationSeconds(item.ContentDetails.Duration)
	}
	if item.Statistics != nil {
		video.ViewCount = int64(item.Statistics.ViewCount)
		video.LikeCount = int64(item.Statistics.LikeCount)
		video.CommentCount = int64(item.Statistics.CommentCount)
	}
	return video
}

var iso8601Duration = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseDurationSeconds converts an ISO 8601 duration like "PT1M30S"
// into whole seconds. Unparseable input yields 0.
func parseDurationSeconds(duration string) int {
	matches := iso8601Duration.FindStringSubmatch(duration)
	if len(matches) == 0 {
		return 0
	}

	var total int
	units := []int{3600, 60, 1}
	for i, unit := range units {
		if matches[i+1] == "" {
			continue
		}
		if n, err := strconv.Atoi(matches[i+1]); err == nil {
			total += n * unit
		}
	}
	return total
}
