// Package collector schedules the poll-and-reconcile cycle. One
// collector is the sole writer; it fetches each entity class from the
// upstream source on a fixed interval and feeds the reconciler.
package collector

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"high-command/internal/store"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Source is the upstream fetch surface consumed by a cycle.
type Source interface {
	War(ctx context.Context) (store.Document, error)
	Statistics(ctx context.Context) (store.Document, error)
	Planets(ctx context.Context) ([]store.Document, error)
	Campaigns(ctx context.Context) ([]store.Document, error)
	Assignments(ctx context.Context) ([]store.Document, error)
	Dispatches(ctx context.Context) ([]store.Document, error)
	PlanetEvents(ctx context.Context) ([]store.Document, error)
}

// Saver is the reconcile surface consumed by a cycle.
type Saver interface {
	SaveWarStatus(ctx context.Context, doc store.Document, at time.Time) bool
	SaveStatistics(ctx context.Context, doc store.Document, at time.Time) bool
	SavePlanets(ctx context.Context, docs []store.Document, at time.Time) bool
	SaveCampaigns(ctx context.Context, docs []store.Document, at time.Time) bool
	SaveAssignments(ctx context.Context, docs []store.Document, at time.Time) bool
	SaveDispatches(ctx context.Context, docs []store.Document, at time.Time) bool
	SavePlanetEvents(ctx context.Context, docs []store.Document, at time.Time) bool
	SetUpstreamAvailable(ctx context.Context, available bool) bool
	RecordCycleID(ctx context.Context, cycleID string) bool
}

type Collector struct {
	source   Source
	saver    Saver
	interval time.Duration
	log      zerolog.Logger

	mu      sync.Mutex
	running bool
	quit    chan struct{}
	done    chan struct{}

	ulidEntropy   *rand.Rand
	ulidEntropyMu sync.Mutex
}

func New(source Source, saver Saver, interval time.Duration) *Collector {
	if interval <= 0 {
		interval = 300 * time.Second
	}
	return &Collector{
		source:      source,
		saver:       saver,
		interval:    interval,
		log:         log.With().Str("component", "collector").Logger(),
		ulidEntropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start launches the cycle loop. Calling Start on a running collector is
// a no-op.
func (c *Collector) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.quit = make(chan struct{})
	c.done = make(chan struct{})
	go c.run(c.quit, c.done)
	c.log.Info().Dur("interval", c.interval).Msg("collector started")
}

// Stop signals the loop and waits for the in-flight cycle to finish.
// Idempotent and safe to call from a signal handler.
func (c *Collector) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	close(c.quit)
	done := c.done
	c.mu.Unlock()

	<-done
	c.log.Info().Msg("collector stopped")
}

func (c *Collector) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Collector) run(quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ctx := context.Background()
	c.runCycle(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			c.runCycle(ctx)
		}
	}
}

// runCycle fetches every entity class and reconciles what it got. One
// entity class failing never aborts the rest; planets and campaigns go
// in before assignments and later classes so campaign rows can lean on
// fresh planet context. All writes share one cycle timestamp, which is
// what groups a planet snapshot.
func (c *Collector) runCycle(ctx context.Context) {
	cycleID := c.newCycleID()
	now := time.Now().UTC()
	cycleLog := c.log.With().Str("cycle_id", cycleID).Logger()

	fetched := 0

	if war, err := c.source.War(ctx); err != nil {
		cycleLog.Warn().Err(err).Msg("fetch war status failed")
	} else {
		fetched++
		c.saver.SaveWarStatus(ctx, war, now)
	}

	if stats, err := c.source.Statistics(ctx); err != nil {
		cycleLog.Warn().Err(err).Msg("fetch statistics failed")
	} else {
		fetched++
		c.saver.SaveStatistics(ctx, stats, now)
	}

	if planets, err := c.source.Planets(ctx); err != nil {
		cycleLog.Warn().Err(err).Msg("fetch planets failed")
	} else {
		fetched++
		c.saver.SavePlanets(ctx, planets, now)
	}

	if campaigns, err := c.source.Campaigns(ctx); err != nil {
		cycleLog.Warn().Err(err).Msg("fetch campaigns failed")
	} else {
		fetched++
		c.saver.SaveCampaigns(ctx, campaigns, now)
	}

	if assignments, err := c.source.Assignments(ctx); err != nil {
		cycleLog.Warn().Err(err).Msg("fetch assignments failed")
	} else {
		fetched++
		c.saver.SaveAssignments(ctx, assignments, now)
	}

	if dispatches, err := c.source.Dispatches(ctx); err != nil {
		cycleLog.Warn().Err(err).Msg("fetch dispatches failed")
	} else {
		fetched++
		c.saver.SaveDispatches(ctx, dispatches, now)
	}

	if events, err := c.source.PlanetEvents(ctx); err != nil {
		cycleLog.Warn().Err(err).Msg("fetch planet events failed")
	} else {
		fetched++
		c.saver.SavePlanetEvents(ctx, events, now)
	}

	c.saver.SetUpstreamAvailable(ctx, fetched > 0)
	c.saver.RecordCycleID(ctx, cycleID)
	cycleLog.Info().Int("fetched", fetched).Bool("upstream_available", fetched > 0).Msg("cycle complete")
}

func (c *Collector) newCycleID() string {
	c.ulidEntropyMu.Lock()
	defer c.ulidEntropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), c.ulidEntropy).String()
}
