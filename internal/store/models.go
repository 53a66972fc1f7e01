package store

import "time"

// Campaign status values derived at write time from the payload's
// expiresAt field.
const (
	CampaignActive  = "active"
	CampaignExpired = "expired"
)

// System status keys.
const (
	KeyUpstreamAvailable = "upstream_api_available"
	KeyLastCycleID       = "last_cycle_id"
)

type HistoryEntry struct {
	Data      Document  `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}
