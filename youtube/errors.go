package youtube

import (
	"errors"
	"net"

	"google.golang.org/api/googleapi"
)

// ErrQuotaExceeded signals that the daily API quota is spent. It is
// terminal for the run: the quota resets at midnight Pacific time, so
// retrying within the same run cannot help.
var ErrQuotaExceeded = errors.New("youtube: daily API quota exceeded, retry after the quota resets")

// quotaReasons are the googleapi error reasons that mean the daily
// quota (not a momentary rate limit) is gone.
var quotaReasons = map[string]bool{
	"quotaExceeded":      true,
	"dailyLimitExceeded": true,
}

// isQuotaError reports whether err is the API telling us the daily
// quota is exhausted.
func isQuotaError(err error) bool {
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code != 403 {
		return false
	}
	for _, e := range apiErr.Errors {
		if quotaReasons[e.Reason] {
			return true
		}
	}
	return false
}

// isTransient reports whether err is worth retrying: server-side 5xx,
// 429 rate limiting, or network-level failures. Quota exhaustion and
// client errors (4xx) are permanent.
func isTransient(err error) bool {
	if isQuotaError(err) {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 500 || apiErr.Code == 429
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return false
}
