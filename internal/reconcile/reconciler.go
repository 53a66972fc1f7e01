// Package reconcile turns fetched upstream payloads into persisted rows.
// Every save converts lower-layer faults into a logged boolean so a bad
// cycle never takes the collector down; false means "state possibly
// unchanged, retry next cycle".
package reconcile

import (
	"context"
	"time"

	"high-command/internal/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Reconciler struct {
	store *store.Store
	log   zerolog.Logger
}

func New(st *store.Store) *Reconciler {
	return &Reconciler{
		store: st,
		log:   log.With().Str("component", "reconciler").Logger(),
	}
}

func (r *Reconciler) SaveWarStatus(ctx context.Context, doc store.Document, at time.Time) bool {
	if err := r.store.InsertWarStatus(ctx, doc, at); err != nil {
		r.log.Error().Err(err).Msg("save war status failed")
		return false
	}
	return true
}

func (r *Reconciler) SaveStatistics(ctx context.Context, doc store.Document, at time.Time) bool {
	if err := r.store.InsertStatistics(ctx, doc, at); err != nil {
		r.log.Error().Err(err).Msg("save statistics failed")
		return false
	}
	return true
}

func (r *Reconciler) SavePlanetStatus(ctx context.Context, planetIndex int, doc store.Document, at time.Time) bool {
	if err := r.store.UpsertPlanetStatus(ctx, planetIndex, doc, at); err != nil {
		r.log.Error().Err(err).Int("planet_index", planetIndex).Msg("save planet status failed")
		return false
	}
	return true
}

// SavePlanets upserts a full planet listing. Every planet written in one
// call shares the same timestamp, which is what defines a snapshot for
// the fallback reads. Items without an index are skipped.
func (r *Reconciler) SavePlanets(ctx context.Context, docs []store.Document, at time.Time) bool {
	ok := true
	for _, doc := range docs {
		idx, found := doc.Int64("index")
		if !found {
			idx, found = doc.Int64("planetIndex")
		}
		if !found {
			continue
		}
		if !r.SavePlanetStatus(ctx, int(idx), doc, at) {
			ok = false
		}
	}
	return ok
}

func (r *Reconciler) SaveCampaign(ctx context.Context, doc store.Document, at time.Time) bool {
	id, found := doc.Int64("id")
	if !found {
		return true
	}
	planetIndex := 0
	if planet, ok := doc.Sub("planet"); ok {
		if idx, ok := planet.Int64("index"); ok {
			planetIndex = int(idx)
		}
	}
	status := CampaignStatus(doc, at)
	if err := r.store.UpsertCampaign(ctx, id, planetIndex, status, doc, at); err != nil {
		r.log.Error().Err(err).Int64("campaign_id", id).Msg("save campaign failed")
		return false
	}
	return true
}

func (r *Reconciler) SaveCampaigns(ctx context.Context, docs []store.Document, at time.Time) bool {
	ok := true
	for _, doc := range docs {
		if !r.SaveCampaign(ctx, doc, at) {
			ok = false
		}
	}
	return ok
}

// SaveAssignments upserts a batch of major orders, skipping items with no
// id. Partial application is not an error.
func (r *Reconciler) SaveAssignments(ctx context.Context, docs []store.Document, at time.Time) bool {
	ok := true
	for _, doc := range docs {
		id, found := doc.Int64("id")
		if !found {
			continue
		}
		if err := r.store.UpsertAssignment(ctx, id, doc, at); err != nil {
			r.log.Error().Err(err).Int64("assignment_id", id).Msg("save assignment failed")
			ok = false
		}
	}
	return ok
}

func (r *Reconciler) SaveDispatches(ctx context.Context, docs []store.Document, at time.Time) bool {
	ok := true
	for _, doc := range docs {
		id, found := doc.Int64("id")
		if !found {
			continue
		}
		if err := r.store.UpsertDispatch(ctx, id, doc, at); err != nil {
			r.log.Error().Err(err).Int64("dispatch_id", id).Msg("save dispatch failed")
			ok = false
		}
	}
	return ok
}

// SavePlanetEvents accepts both snake_case and camelCase spellings of the
// planet index and event type. Items missing an id or any planet index
// variant are skipped; a missing event type stores as "unknown".
func (r *Reconciler) SavePlanetEvents(ctx context.Context, docs []store.Document, at time.Time) bool {
	ok := true
	for _, doc := range docs {
		id, found := doc.Int64("id")
		if !found {
			continue
		}
		planetIndex, eventType, found := eventFields(doc)
		if !found {
			continue
		}
		if err := r.store.UpsertPlanetEvent(ctx, id, planetIndex, eventType, doc, at); err != nil {
			r.log.Error().Err(err).Int64("event_id", id).Msg("save planet event failed")
			ok = false
		}
	}
	return ok
}

func (r *Reconciler) SetUpstreamAvailable(ctx context.Context, available bool) bool {
	if err := r.store.SetUpstreamAvailable(ctx, available); err != nil {
		r.log.Error().Err(err).Msg("set upstream status failed")
		return false
	}
	return true
}

func (r *Reconciler) RecordCycleID(ctx context.Context, cycleID string) bool {
	if err := r.store.SetSystemStatus(ctx, store.KeyLastCycleID, cycleID); err != nil {
		r.log.Error().Err(err).Msg("record cycle id failed")
		return false
	}
	return true
}

func eventFields(doc store.Document) (planetIndex int, eventType string, ok bool) {
	idx, found := doc.Int64("planet_index")
	if !found {
		idx, found = doc.Int64("planetIndex")
	}
	if !found {
		return 0, "", false
	}
	typ, found := doc.String("event_type")
	if !found {
		typ, found = doc.String("eventType")
	}
	if !found || typ == "" {
		typ = "unknown"
	}
	return int(idx), typ, true
}
