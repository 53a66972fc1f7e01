package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"high-command/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func healthzHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "db": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "db": "up"})
	}
}

// livezHandler proves the process is up without touching the store, so
// it keeps answering through a database outage.
func livezHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"status": "ok"})
	}
}

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		upstreamAPI := "offline"
		available, err := st.UpstreamAvailable(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("read upstream availability failed")
		} else if available {
			upstreamAPI = "online"
		}
		writeJSON(w, map[string]any{
			"status":       "ok",
			"upstream_api": upstreamAPI,
		})
	}
}

func warHandler(st *store.Store) http.HandlerFunc {
	return latestDocumentHandler(st.LatestWarStatus)
}

func statisticsHandler(st *store.Store) http.HandlerFunc {
	return latestDocumentHandler(st.LatestStatistics)
}

// latestDocumentHandler answers single-record reads. A missing record
// and a store fault both degrade to a JSON null; clients never see a
// propagated store error on a read.
func latestDocumentHandler(read func(context.Context) (store.Document, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := read(r.Context())
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Error().Err(err).Msg("document read failed")
			}
			writeJSON(w, nil)
			return
		}
		writeJSON(w, doc)
	}
}

func statisticsHistoryHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseLimit(r, 100)
		entries, err := st.StatisticsHistory(r.Context(), limit)
		if err != nil {
			log.Error().Err(err).Msg("statistics history read failed")
			entries = nil
		}
		writeJSON(w, historyItems(entries))
	}
}

func planetHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := parsePlanetIndex(w, r)
		if !ok {
			return
		}
		doc, err := st.PlanetStatus(r.Context(), index)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Error().Err(err).Int("planet_index", index).Msg("planet read failed")
			}
			writeJSON(w, nil)
			return
		}
		writeJSON(w, doc)
	}
}

func planetHistoryHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := parsePlanetIndex(w, r)
		if !ok {
			return
		}
		limit := parseLimit(r, 100)
		entries, err := st.PlanetStatusHistory(r.Context(), index, limit)
		if err != nil {
			log.Error().Err(err).Int("planet_index", index).Msg("planet history read failed")
			entries = nil
		}
		writeJSON(w, historyItems(entries))
	}
}

func campaignsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := st.ActiveCampaigns(r.Context(), nowUTC())
		if err != nil {
			log.Error().Err(err).Msg("active campaigns read failed")
			items = nil
		}
		writeJSON(w, documentItems(items))
	}
}

func assignmentsHandler(st *store.Store) http.HandlerFunc {
	return listHandler(st.LatestAssignments)
}

func dispatchesHandler(st *store.Store) http.HandlerFunc {
	return listHandler(st.LatestDispatches)
}

// listHandler answers collection reads; a store fault degrades to an
// empty list.
func listHandler(read func(context.Context, int) ([]store.Document, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseLimit(r, 50)
		items, err := read(r.Context(), limit)
		if err != nil {
			log.Error().Err(err).Msg("list read failed")
			items = nil
		}
		writeJSON(w, documentItems(items))
	}
}

func planetEventsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseLimit(r, 50)
		var planetIndex *int
		if v := r.URL.Query().Get("planet_index"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeHTTPError(w, http.StatusBadRequest, "invalid_planet_index")
				return
			}
			planetIndex = &n
		}
		items, err := st.PlanetEvents(r.Context(), planetIndex, limit)
		if err != nil {
			log.Error().Err(err).Msg("planet events read failed")
			items = nil
		}
		writeJSON(w, documentItems(items))
	}
}

// snapshotHandler serves the fallback layer: callers always get a 200,
// and any store fault or empty snapshot is answered as null.
func snapshotHandler(read func(context.Context) ([]store.Document, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := read(r.Context())
		if err != nil {
			log.Error().Err(err).Str("path", r.URL.Path).Msg("snapshot read failed")
			writeJSON(w, nil)
			return
		}
		if items == nil {
			writeJSON(w, nil)
			return
		}
		writeJSON(w, items)
	}
}

func parsePlanetIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeHTTPError(w, http.StatusBadRequest, "invalid_planet_index")
		return 0, false
	}
	return index, true
}
