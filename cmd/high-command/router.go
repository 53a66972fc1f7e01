package main

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"high-command/internal/config"
	"high-command/internal/proxy"
	"high-command/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func newRouter(st *store.Store, cfg config.ServerConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(apiLogMiddleware()).Get("/healthz", healthzHandler(st))

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())
		r.Get("/livez", livezHandler())
		r.Get("/health", healthHandler(st))
		r.Get("/war", warHandler(st))
		r.Get("/statistics", statisticsHandler(st))
		r.Get("/statistics/history", statisticsHistoryHandler(st))
		r.Get("/planets/{index}", planetHandler(st))
		r.Get("/planets/{index}/history", planetHistoryHandler(st))
		r.Get("/campaigns", campaignsHandler(st))
		r.Get("/assignments", assignmentsHandler(st))
		r.Get("/dispatches", dispatchesHandler(st))
		r.Get("/planet-events", planetEventsHandler(st))

		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/planets", snapshotHandler(st.LatestPlanetsSnapshot))
			r.Get("/campaigns", snapshotHandler(st.LatestCampaignsSnapshot))
			r.Get("/factions", snapshotHandler(st.LatestFactionsSnapshot))
			r.Get("/biomes", snapshotHandler(st.LatestBiomesSnapshot))
		})
	})

	claude := proxy.NewHandler(cfg.ClaudeAPIKey)
	r.With(apiLogMiddleware()).Handle("/claude/*", claude)
	r.With(apiLogMiddleware()).Handle("/claude", claude)

	return r
}

func logRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 32)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
