package reconcile

import (
	"context"
	"testing"
	"time"

	"high-command/internal/store"
	"high-command/internal/testutil"
)

func TestSaveCampaignDerivesStatusAtWriteTime(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()
	rec := New(st)

	writeTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := store.Document{
		"id":        42,
		"planet":    map[string]any{"index": 5},
		"expiresAt": writeTime.Add(time.Hour).Format(time.RFC3339),
	}

	if !rec.SaveCampaign(ctx, doc, writeTime) {
		t.Fatal("save campaign failed")
	}
	assertCampaignStatus(t, st, ctx, 42, store.CampaignActive)

	// Same campaign, same payload, saved again two hours later: the
	// derived status flips because the write time moved past expiry.
	if !rec.SaveCampaign(ctx, doc, writeTime.Add(2*time.Hour)) {
		t.Fatal("re-save campaign failed")
	}
	assertCampaignStatus(t, st, ctx, 42, store.CampaignExpired)
}

func TestSaveCampaignWithoutExpiryIsActive(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()
	rec := New(st)

	doc := store.Document{"id": 7, "planet": map[string]any{"index": 3}}
	if !rec.SaveCampaign(ctx, doc, time.Now().UTC()) {
		t.Fatal("save campaign failed")
	}
	assertCampaignStatus(t, st, ctx, 7, store.CampaignActive)
}

func TestSaveAssignmentsSkipsItemsWithoutID(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()
	rec := New(st)

	docs := []store.Document{
		{"id": 1, "title": "First"},
		{"title": "No ID"},
		{"id": 2, "title": "Second"},
	}
	if !rec.SaveAssignments(ctx, docs, time.Now().UTC()) {
		t.Fatal("batch should succeed despite the skipped item")
	}

	items, err := st.LatestAssignments(ctx, 10)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 persisted assignments, got %d", len(items))
	}
}

func TestSavePlanetEventsBothSpellings(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()
	rec := New(st)

	docs := []store.Document{
		{"id": 1, "planet_index": 5, "event_type": "defense"},
		{"id": 2, "planetIndex": 5, "eventType": "defense"},
		{"id": 3, "eventType": "defense"}, // no planet index: skipped
	}
	if !rec.SavePlanetEvents(ctx, docs, time.Now().UTC()) {
		t.Fatal("batch should succeed")
	}

	planet := 5
	items, err := st.PlanetEvents(ctx, &planet, 10)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 events for planet 5, got %d", len(items))
	}
	var types [2]string
	for i := range items {
		if err := st.Pool.QueryRow(ctx,
			`SELECT event_type FROM planet_events WHERE event_id = $1`, i+1).
			Scan(&types[i]); err != nil {
			t.Fatalf("read event type: %v", err)
		}
	}
	if types[0] != types[1] {
		t.Fatalf("both spellings should store identical fields: %q vs %q", types[0], types[1])
	}
}

func TestSavePlanetsSharesCycleTimestamp(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	ctx := context.Background()
	rec := New(st)

	cycle := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	docs := []store.Document{
		{"index": 2, "name": "B"},
		{"index": 1, "name": "A"},
		{"name": "no index"},
	}
	if !rec.SavePlanets(ctx, docs, cycle) {
		t.Fatal("batch should succeed")
	}

	snap, err := st.LatestPlanetsSnapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap) != 2 {
		t.Fatalf("expected both indexed planets in one snapshot, got %d", len(snap))
	}
	if name, _ := snap[0].String("name"); name != "A" {
		t.Fatalf("snapshot not ordered by index: %q first", name)
	}
}

func assertCampaignStatus(t *testing.T, st *store.Store, ctx context.Context, campaignID int64, want string) {
	t.Helper()
	var status string
	if err := st.Pool.QueryRow(ctx,
		`SELECT status FROM campaigns WHERE campaign_id = $1`, campaignID).
		Scan(&status); err != nil {
		t.Fatalf("read campaign status: %v", err)
	}
	if status != want {
		t.Fatalf("campaign %d status = %q, want %q", campaignID, status, want)
	}
}
