package store

import (
	"context"
	"time"
)

func (s *Store) UpsertAssignment(ctx context.Context, assignmentID int64, doc Document, at time.Time) error {
	raw, err := marshalDocument(doc)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO assignments (assignment_id, data, timestamp)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (assignment_id)
		 DO UPDATE SET data = EXCLUDED.data, timestamp = EXCLUDED.timestamp`,
		assignmentID, raw, at)
	return err
}

func (s *Store) LatestAssignments(ctx context.Context, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryDocuments(ctx,
		`SELECT data FROM assignments ORDER BY timestamp DESC LIMIT $1`,
		limit)
}
