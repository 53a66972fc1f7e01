package store

import (
	"context"
	"errors"
	"time"
)

func (s *Store) InsertWarStatus(ctx context.Context, doc Document, at time.Time) error {
	raw, err := marshalDocument(doc)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO war_status (data, timestamp) VALUES ($1, $2)`,
		raw, at)
	return err
}

func (s *Store) InsertStatistics(ctx context.Context, doc Document, at time.Time) error {
	raw, err := marshalDocument(doc)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO statistics (data, timestamp) VALUES ($1, $2)`,
		raw, at)
	return err
}

func (s *Store) LatestWarStatus(ctx context.Context) (Document, error) {
	return s.queryDocument(ctx,
		`SELECT data FROM war_status ORDER BY timestamp DESC LIMIT 1`)
}

func (s *Store) LatestStatistics(ctx context.Context) (Document, error) {
	return s.queryDocument(ctx,
		`SELECT data FROM statistics ORDER BY timestamp DESC LIMIT 1`)
}

func (s *Store) StatisticsHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.queryHistory(ctx,
		`SELECT data, timestamp FROM statistics ORDER BY timestamp DESC LIMIT $1`,
		limit)
}

// LatestFactionsSnapshot extracts the factions list from the most recent
// war status payload. Factions have no table of their own. Returns
// (nil, nil) when no war status has ever been written.
func (s *Store) LatestFactionsSnapshot(ctx context.Context) ([]Document, error) {
	war, err := s.LatestWarStatus(ctx)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	factions, ok := war.Docs("factions")
	if !ok || len(factions) == 0 {
		return nil, nil
	}
	return factions, nil
}
