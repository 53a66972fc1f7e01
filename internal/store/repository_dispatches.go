package store

import (
	"context"
	"sort"
	"time"
)

func (s *Store) UpsertDispatch(ctx context.Context, dispatchID int64, doc Document, at time.Time) error {
	raw, err := marshalDocument(doc)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO dispatches (dispatch_id, data, timestamp)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (dispatch_id)
		 DO UPDATE SET data = EXCLUDED.data, timestamp = EXCLUDED.timestamp`,
		dispatchID, raw, at)
	return err
}

// LatestDispatches orders by the payload's published field rather than
// the write timestamp; a later cycle can ingest an older dispatch.
func (s *Store) LatestDispatches(ctx context.Context, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 10
	}
	docs, err := s.queryDocuments(ctx,
		`SELECT data FROM dispatches ORDER BY timestamp DESC`)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(docs, func(i, j int) bool {
		pi, _ := docs[i].String("published")
		pj, _ := docs[j].String("published")
		return pi > pj
	})
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}
