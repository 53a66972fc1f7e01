package store

import "context"

// Idempotent DDL: safe to run at every process start.
const schema = `
CREATE TABLE IF NOT EXISTS war_status (
    id        BIGSERIAL PRIMARY KEY,
    data      JSONB NOT NULL,
    timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS statistics (
    id        BIGSERIAL PRIMARY KEY,
    data      JSONB NOT NULL,
    timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS planet_status (
    id           BIGSERIAL PRIMARY KEY,
    planet_index INTEGER UNIQUE NOT NULL,
    data         JSONB NOT NULL,
    timestamp    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS campaigns (
    id           BIGSERIAL PRIMARY KEY,
    campaign_id  BIGINT UNIQUE NOT NULL,
    planet_index INTEGER,
    status       TEXT,
    data         JSONB NOT NULL,
    timestamp    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS assignments (
    id            BIGSERIAL PRIMARY KEY,
    assignment_id BIGINT UNIQUE NOT NULL,
    data          JSONB NOT NULL,
    timestamp     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS dispatches (
    id          BIGSERIAL PRIMARY KEY,
    dispatch_id BIGINT UNIQUE NOT NULL,
    data        JSONB NOT NULL,
    timestamp   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS planet_events (
    id           BIGSERIAL PRIMARY KEY,
    event_id     BIGINT UNIQUE NOT NULL,
    planet_index INTEGER,
    event_type   TEXT,
    data         JSONB NOT NULL,
    timestamp    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS system_status (
    id        BIGSERIAL PRIMARY KEY,
    key       TEXT UNIQUE NOT NULL,
    value     TEXT,
    timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_war_status_timestamp ON war_status(timestamp);
CREATE INDEX IF NOT EXISTS idx_statistics_timestamp ON statistics(timestamp);
CREATE INDEX IF NOT EXISTS idx_planet_status_index ON planet_status(planet_index);
CREATE INDEX IF NOT EXISTS idx_planet_status_timestamp ON planet_status(timestamp);
CREATE INDEX IF NOT EXISTS idx_campaigns_timestamp ON campaigns(timestamp);
CREATE INDEX IF NOT EXISTS idx_assignments_timestamp ON assignments(timestamp);
CREATE INDEX IF NOT EXISTS idx_dispatches_timestamp ON dispatches(timestamp);
CREATE INDEX IF NOT EXISTS idx_planet_events_index ON planet_events(planet_index);
`

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, schema)
	return err
}
