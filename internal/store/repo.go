package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *Store) queryDocument(ctx context.Context, sql string, args ...any) (Document, error) {
	var raw []byte
	if err := s.Pool.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return nil, mapNotFound(err)
	}
	return unmarshalDocument(raw)
}

func (s *Store) queryDocuments(ctx context.Context, sql string, args ...any) ([]Document, error) {
	rows, err := s.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Document{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		doc, err := unmarshalDocument(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *Store) queryHistory(ctx context.Context, sql string, args ...any) ([]HistoryEntry, error) {
	rows, err := s.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []HistoryEntry{}
	for rows.Next() {
		var entry HistoryEntry
		var raw []byte
		if err := rows.Scan(&raw, &entry.Timestamp); err != nil {
			return nil, err
		}
		doc, err := unmarshalDocument(raw)
		if err != nil {
			return nil, err
		}
		entry.Data = doc
		out = append(out, entry)
	}
	return out, rows.Err()
}
