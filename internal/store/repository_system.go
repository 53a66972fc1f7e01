package store

import (
	"context"
	"errors"
)

func (s *Store) SetSystemStatus(ctx context.Context, key, value string) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO system_status (key, value, timestamp)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key)
		 DO UPDATE SET value = EXCLUDED.value, timestamp = NOW()`,
		key, value)
	return err
}

func (s *Store) SystemStatus(ctx context.Context, key string) (string, error) {
	var value string
	err := s.Pool.QueryRow(ctx,
		`SELECT value FROM system_status WHERE key = $1`, key).Scan(&value)
	if err != nil {
		return "", mapNotFound(err)
	}
	return value, nil
}

func (s *Store) SetUpstreamAvailable(ctx context.Context, available bool) error {
	value := "false"
	if available {
		value = "true"
	}
	return s.SetSystemStatus(ctx, KeyUpstreamAvailable, value)
}

// UpstreamAvailable reports the flag written by the collector. An absent
// flag row reads as unavailable, the conservative default for a process
// that has never completed a fetch.
func (s *Store) UpstreamAvailable(ctx context.Context) (bool, error) {
	value, err := s.SystemStatus(ctx, KeyUpstreamAvailable)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == "true", nil
}
