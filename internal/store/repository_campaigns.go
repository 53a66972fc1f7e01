package store

import (
	"context"
	"time"
)

// UpsertCampaign writes the canonical row for one campaign. The status is
// derived by the reconciler before the call and persisted as-is; one
// statement keeps the write atomic per campaign_id.
func (s *Store) UpsertCampaign(ctx context.Context, campaignID int64, planetIndex int, status string, doc Document, at time.Time) error {
	raw, err := marshalDocument(doc)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO campaigns (campaign_id, planet_index, status, data, timestamp)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (campaign_id)
		 DO UPDATE SET planet_index = EXCLUDED.planet_index,
		               status = EXCLUDED.status,
		               data = EXCLUDED.data,
		               timestamp = EXCLUDED.timestamp`,
		campaignID, planetIndex, status, raw, at)
	return err
}

// ActiveCampaigns returns campaigns whose stored status is "active" and
// whose expiresAt has not passed as of now. The stored status is only as
// fresh as the last write, so expiry is re-checked at read time.
func (s *Store) ActiveCampaigns(ctx context.Context, now time.Time) ([]Document, error) {
	docs, err := s.queryDocuments(ctx,
		`SELECT data FROM campaigns WHERE status = $1 ORDER BY timestamp DESC`,
		CampaignActive)
	if err != nil {
		return nil, err
	}
	active := []Document{}
	for _, doc := range docs {
		expires, ok := doc.String("expiresAt")
		if ok {
			if exp, parsed := ParseTimestamp(expires); parsed && !now.Before(exp) {
				continue
			}
		}
		active = append(active, doc)
	}
	return active, nil
}

// LatestCampaignsSnapshot returns the most recent row per campaign_id,
// newest first, regardless of status. The unique key guarantees one row
// per campaign, so this is the full mechanically-latest set.
func (s *Store) LatestCampaignsSnapshot(ctx context.Context) ([]Document, error) {
	docs, err := s.queryDocuments(ctx,
		`SELECT data FROM campaigns ORDER BY timestamp DESC`)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs, nil
}
