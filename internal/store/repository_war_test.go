package store

import (
	"testing"
	"time"
)

func TestWarStatusAppendOnly(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	t0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	if err := st.InsertWarStatus(ctx, Document{"warId": 801, "round": 1}, t0); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := st.InsertWarStatus(ctx, Document{"warId": 801, "round": 2}, t0.Add(5*time.Minute)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if n := countRows(t, st, ctx, "war_status"); n != 2 {
		t.Fatalf("war_status is append-only, expected 2 rows, got %d", n)
	}
	latest, err := st.LatestWarStatus(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if round, _ := latest.Int64("round"); round != 2 {
		t.Fatalf("latest round = %d, want 2", round)
	}
}

func TestLatestWarStatusEmpty(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	if _, err := st.LatestWarStatus(ctx); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStatisticsHistoryNewestFirst(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	t0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		doc := Document{"missionsWon": i}
		if err := st.InsertStatistics(ctx, doc, t0.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	history, err := st.StatisticsHistory(ctx, 2)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("limit not applied, got %d rows", len(history))
	}
	if won, _ := history[0].Data.Int64("missionsWon"); won != 2 {
		t.Fatalf("history not newest first: %d", won)
	}
}

func TestLatestFactionsSnapshot(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	// No war status at all: nil, not an error.
	factions, err := st.LatestFactionsSnapshot(ctx)
	if err != nil || factions != nil {
		t.Fatalf("expected nil factions with empty table, got %v, %v", factions, err)
	}

	t0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	war := Document{
		"warId": 801,
		"factions": []any{
			map[string]any{"name": "Humans"},
			map[string]any{"name": "Automatons"},
		},
	}
	if err := st.InsertWarStatus(ctx, war, t0); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// A newer war status without factions wins; derived view follows it.
	if err := st.InsertWarStatus(ctx, Document{"warId": 801}, t0.Add(time.Minute)); err != nil {
		t.Fatalf("insert: %v", err)
	}

	factions, err = st.LatestFactionsSnapshot(ctx)
	if err != nil || factions != nil {
		t.Fatalf("latest war status has no factions, expected nil, got %v, %v", factions, err)
	}

	if err := st.InsertWarStatus(ctx, war, t0.Add(2*time.Minute)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	factions, err = st.LatestFactionsSnapshot(ctx)
	if err != nil {
		t.Fatalf("factions: %v", err)
	}
	if len(factions) != 2 {
		t.Fatalf("expected 2 factions, got %d", len(factions))
	}
}
