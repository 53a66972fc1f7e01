// Package proxy forwards /claude/* requests to the Anthropic API with
// the server-held key injected, so browser clients never see the
// credential. Not part of the collector/read data path.
package proxy

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultAnthropicBase = "https://api.anthropic.com"

// Response headers that must not be forwarded verbatim: the body has
// already been decoded and re-framed by the Go HTTP client.
var dropResponseHeaders = map[string]bool{
	"transfer-encoding": true,
	"connection":        true,
	"content-encoding":  true,
	"content-length":    true,
}

type Handler struct {
	APIKey     string
	Base       string
	HTTPClient *http.Client
}

func NewHandler(apiKey string) *Handler {
	return &Handler{
		APIKey:     apiKey,
		Base:       defaultAnthropicBase,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// ServeHTTP maps /claude/{path} to {base}/v1/{path}, preserving method,
// query, body and most headers.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.APIKey == "" {
		writeErr(w, http.StatusServiceUnavailable, "claude_api_key_not_configured")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/claude")
	path = strings.TrimPrefix(path, "/")
	upstreamURL := strings.TrimRight(h.Base, "/") + "/v1"
	if path != "" {
		upstreamURL += "/" + path
	}
	if r.URL.RawQuery != "" {
		upstreamURL += "?" + r.URL.RawQuery
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_request")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, upstreamURL, bytes.NewReader(body))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_request")
		return
	}
	for k, vals := range r.Header {
		if strings.EqualFold(k, "Host") {
			continue
		}
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	// The server key always wins over anything the client sent.
	req.Header.Set("x-api-key", h.APIKey)
	req.Header.Set("anthropic-dangerous-direct-browser-access", "true")

	resp, err := h.HTTPClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", upstreamURL).Msg("claude proxy upstream error")
		writeErr(w, http.StatusBadGateway, "upstream_error")
		return
	}
	defer resp.Body.Close()

	for k, vals := range resp.Header {
		if dropResponseHeaders[strings.ToLower(k)] {
			continue
		}
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": msg})
}
