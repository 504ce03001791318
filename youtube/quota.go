package youtube

import "log"

// Quota unit costs per API operation, as billed by the YouTube Data API
// v3. Transcript fetches go through the public timedtext endpoint and
// cost nothing.
const (
	costSearch     = 100
	costVideosList = 1
)

// quotaLedger tracks quota units consumed during a run against the
// daily limit. The pipeline is sequential, so no locking is needed.
type quotaLedger struct {
	used  int
	limit int
}

func newQuotaLedger(limit int) *quotaLedger {
	if limit <= 0 {
		limit = 10000 // API v3 default daily allocation
	}
	return &quotaLedger{limit: limit}
}

// charge reserves cost units, or returns ErrQuotaExceeded if that would
// cross the daily limit.
func (q *quotaLedger) charge(cost int) error {
	if q.used+cost > q.limit {
		log.Printf("Quota limit would be exceeded: %d used + %d needed > %d limit", q.used, cost, q.limit)
		return ErrQuotaExceeded
	}
	q.used += cost
	return nil
}

func (q *quotaLedger) usedUnits() int { return q.used }
