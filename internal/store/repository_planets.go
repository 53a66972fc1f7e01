package store

import (
	"context"
	"time"
)

// UpsertPlanetStatus writes the canonical row for one planet. The caller
// supplies the write time so every planet saved in the same collector
// cycle shares one snapshot timestamp.
func (s *Store) UpsertPlanetStatus(ctx context.Context, planetIndex int, doc Document, at time.Time) error {
	raw, err := marshalDocument(doc)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO planet_status (planet_index, data, timestamp)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (planet_index)
		 DO UPDATE SET data = EXCLUDED.data, timestamp = EXCLUDED.timestamp`,
		planetIndex, raw, at)
	return err
}

func (s *Store) PlanetStatus(ctx context.Context, planetIndex int) (Document, error) {
	return s.queryDocument(ctx,
		`SELECT data FROM planet_status WHERE planet_index = $1 ORDER BY timestamp DESC LIMIT 1`,
		planetIndex)
}

func (s *Store) PlanetStatusHistory(ctx context.Context, planetIndex, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryHistory(ctx,
		`SELECT data, timestamp FROM planet_status WHERE planet_index = $1 ORDER BY timestamp DESC LIMIT $2`,
		planetIndex, limit)
}

// LatestPlanetsSnapshot returns every planet row carrying the single most
// recent timestamp, ordered by planet index. Returns (nil, nil) when no
// planet rows exist; rows written by older cycles are excluded.
func (s *Store) LatestPlanetsSnapshot(ctx context.Context) ([]Document, error) {
	docs, err := s.queryDocuments(ctx,
		`SELECT data FROM planet_status
		 WHERE timestamp = (SELECT MAX(timestamp) FROM planet_status)
		 ORDER BY planet_index ASC`)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs, nil
}

// LatestBiomesSnapshot derives the biome list from the latest planet
// snapshot, de-duplicated by biome name in first-seen order.
func (s *Store) LatestBiomesSnapshot(ctx context.Context) ([]Document, error) {
	planets, err := s.LatestPlanetsSnapshot(ctx)
	if err != nil || planets == nil {
		return nil, err
	}
	seen := map[string]bool{}
	biomes := []Document{}
	for _, planet := range planets {
		biome, ok := planet.Sub("biome")
		if !ok {
			continue
		}
		name, ok := biome.String("name")
		if !ok || name == "" || seen[name] {
			continue
		}
		seen[name] = true
		biomes = append(biomes, biome)
	}
	if len(biomes) == 0 {
		return nil, nil
	}
	return biomes, nil
}
