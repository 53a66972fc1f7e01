package reconcile

import (
	"time"

	"high-command/internal/store"
)

// CampaignStatus derives the stored status from the payload's expiresAt
// field, evaluated against one consistent now for the whole write. An
// absent or unparseable expiry means the campaign cannot be proven
// expired, so it stays active.
func CampaignStatus(doc store.Document, now time.Time) string {
	expires, ok := doc.String("expiresAt")
	if !ok || expires == "" {
		return store.CampaignActive
	}
	exp, parsed := store.ParseTimestamp(expires)
	if !parsed {
		return store.CampaignActive
	}
	if now.Before(exp) {
		return store.CampaignActive
	}
	return store.CampaignExpired
}
