// Package upstream fetches world state from the community Helldivers 2
// API. Every call is one GET with a bounded timeout; callers treat any
// error as "this entity class is unavailable this cycle".
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"high-command/internal/config"
	"high-command/internal/store"
)

const (
	pathWar          = "/api/v1/war"
	pathPlanets      = "/api/v1/planets"
	pathCampaigns    = "/api/v1/campaigns"
	pathAssignments  = "/api/v1/assignments"
	pathDispatches   = "/api/v1/dispatches"
	pathPlanetEvents = "/api/v1/planet-events"
)

type Client struct {
	base       string
	clientName string
	contact    string
	inner      *http.Client
}

func NewClient(cfg config.CollectorConfig) *Client {
	return &Client{
		base:       strings.TrimRight(cfg.APIBase, "/"),
		clientName: cfg.ClientName,
		contact:    cfg.Contact,
		inner:      &http.Client{Timeout: cfg.APITimeout()},
	}
}

func (c *Client) War(ctx context.Context) (store.Document, error) {
	var doc store.Document
	if err := c.getJSON(ctx, pathWar, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Statistics come embedded in the war payload; the community API has no
// standalone statistics endpoint.
func (c *Client) Statistics(ctx context.Context) (store.Document, error) {
	war, err := c.War(ctx)
	if err != nil {
		return nil, err
	}
	stats, ok := war.Sub("statistics")
	if !ok {
		return nil, fmt.Errorf("war payload has no statistics field")
	}
	return stats, nil
}

func (c *Client) Planets(ctx context.Context) ([]store.Document, error) {
	return c.getList(ctx, pathPlanets)
}

func (c *Client) Campaigns(ctx context.Context) ([]store.Document, error) {
	return c.getList(ctx, pathCampaigns)
}

func (c *Client) Assignments(ctx context.Context) ([]store.Document, error) {
	return c.getList(ctx, pathAssignments)
}

func (c *Client) Dispatches(ctx context.Context) ([]store.Document, error) {
	return c.getList(ctx, pathDispatches)
}

func (c *Client) PlanetEvents(ctx context.Context) ([]store.Document, error) {
	return c.getList(ctx, pathPlanetEvents)
}

func (c *Client) getList(ctx context.Context, path string) ([]store.Document, error) {
	var docs []store.Document
	if err := c.getJSON(ctx, path, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.clientName != "" {
		req.Header.Set("X-Super-Client", c.clientName)
	}
	if c.contact != "" {
		req.Header.Set("X-Super-Contact", c.contact)
	}

	resp, err := c.inner.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("fetch %s failed with status %d", path, resp.StatusCode)
	}
	return json.Unmarshal(body, out)
}
