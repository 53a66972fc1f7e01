package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"high-command/internal/collector"
	"high-command/internal/config"
	"high-command/internal/logging"
	"high-command/internal/reconcile"
	"high-command/internal/store"
	"high-command/internal/upstream"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logging.Init(logCfg)

	mode := strings.ToLower(os.Getenv("MODE"))
	switch mode {
	case "", "api", "server":
		runAPI()
	case "collector", "poller":
		runCollector()
	default:
		log.Fatal().Str("mode", mode).Msg("unknown MODE, want api or collector")
	}
}

func runAPI() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("load server config failed")
	}

	st, err := store.New(cfg.DatabaseURL, cfg.PoolMaxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer st.Close()
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.EnsureSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("ensure schema failed")
	}

	r := newRouter(st, cfg)
	logRoutes(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("server stopped")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func runCollector() {
	cfg, err := config.LoadCollector()
	if err != nil {
		log.Fatal().Err(err).Msg("load collector config failed")
	}

	st, err := store.New(cfg.DatabaseURL, cfg.PoolMaxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer st.Close()
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.EnsureSchema(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("ensure schema failed")
	}

	col := collector.New(upstream.NewClient(cfg), reconcile.New(st), cfg.ScrapeInterval())
	col.Start()
	log.Info().
		Str("api_base", cfg.APIBase).
		Dur("interval", cfg.ScrapeInterval()).
		Msg("collector started")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	col.Stop()
	log.Info().Msg("collector stopped")
}
