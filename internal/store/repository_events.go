package store

import (
	"context"
	"time"
)

func (s *Store) UpsertPlanetEvent(ctx context.Context, eventID int64, planetIndex int, eventType string, doc Document, at time.Time) error {
	raw, err := marshalDocument(doc)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO planet_events (event_id, planet_index, event_type, data, timestamp)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (event_id)
		 DO UPDATE SET planet_index = EXCLUDED.planet_index,
		               event_type = EXCLUDED.event_type,
		               data = EXCLUDED.data,
		               timestamp = EXCLUDED.timestamp`,
		eventID, planetIndex, eventType, raw, at)
	return err
}

// PlanetEvents lists events newest first, optionally filtered to one
// planet. planetIndex nil means all planets.
func (s *Store) PlanetEvents(ctx context.Context, planetIndex *int, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 10
	}
	if planetIndex != nil {
		return s.queryDocuments(ctx,
			`SELECT data FROM planet_events WHERE planet_index = $1 ORDER BY timestamp DESC LIMIT $2`,
			*planetIndex, limit)
	}
	return s.queryDocuments(ctx,
		`SELECT data FROM planet_events ORDER BY timestamp DESC LIMIT $1`,
		limit)
}
