// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package metadata fetches title details (episode counts, air dates, series
// status, genres) from an external provider API. Responses are cached with a
// TTL and all calls go through a circuit breaker so a flaky provider cannot
// stall the reclassification cycle.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/showlog/internal/config"
	"github.com/tomtom215/showlog/internal/logging"
	"github.com/tomtom215/showlog/internal/metrics"
	"github.com/tomtom215/showlog/internal/models"
)

// ErrNotConfigured is returned when no provider base URL is set.
var ErrNotConfigured = errors.New("metadata provider not configured")

// Provider resolves title details by media ID.
type Provider interface {
	TitleDetails(ctx context.Context, mediaID int) (*models.TitleDetails, error)
}

type cacheEntry struct {
	details   *models.TitleDetails
	fetchedAt time.Time
}

// Client is an HTTP metadata provider client with TTL caching and circuit
// breaker protection. Failures are returned to the caller, which skips the
// affected title until the next cycle.
type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	cb       *gobreaker.CircuitBreaker[*models.TitleDetails]
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[int]cacheEntry
}

// NewClient creates a metadata client from configuration.
//
// Circuit breaker settings:
//   - 3 concurrent requests allowed in half-open state
//   - counts reset after 1 minute in closed state
//   - 2 minute wait before attempting recovery
//   - opens after 60% failure rate with a minimum of 10 requests
func NewClient(cfg config.MetadataConfig) *Client {
	cbName := "metadata-provider"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[*models.TitleDetails](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().
				Str("breaker", name).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Client{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: cfg.Timeout},
		cb:       cb,
		cacheTTL: cfg.CacheTTL,
		cache:    make(map[int]cacheEntry),
	}
}

// TitleDetails returns details for the given media ID, serving from cache
// when fresh. Errors mean the title should be skipped until the next cycle,
// never treated as an empty result.
func (c *Client) TitleDetails(ctx context.Context, mediaID int) (*models.TitleDetails, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	c.mu.RLock()
	entry, ok := c.cache[mediaID]
	c.mu.RUnlock()
	if ok && time.Since(entry.fetchedAt) < c.cacheTTL {
		metrics.MetadataCacheHits.Inc()
		return entry.details, nil
	}
	metrics.MetadataCacheMisses.Inc()

	details, err := c.cb.Execute(func() (*models.TitleDetails, error) {
		return c.fetch(ctx, mediaID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordMetadataRequest(0, "breaker_open")
			logging.Warn().Int("media_id", mediaID).Msg("Metadata request rejected by circuit breaker")
		}
		return nil, err
	}

	c.mu.Lock()
	c.cache[mediaID] = cacheEntry{details: details, fetchedAt: time.Now()}
	c.mu.Unlock()

	return details, nil
}

// Invalidate drops the cached entry for a media ID, forcing a refetch on the
// next lookup.
func (c *Client) Invalidate(mediaID int) {
	c.mu.Lock()
	delete(c.cache, mediaID)
	c.mu.Unlock()
}

func (c *Client) fetch(ctx context.Context, mediaID int) (*models.TitleDetails, error) {
	start := time.Now()

	endpoint, err := url.JoinPath(c.baseURL, "titles", strconv.Itoa(mediaID))
	if err != nil {
		return nil, fmt.Errorf("metadata: invalid base URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("metadata: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordMetadataRequest(time.Since(start), "timeout")
		return nil, fmt.Errorf("metadata: request failed for media %d: %w", mediaID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordMetadataRequest(time.Since(start), "http")
		return nil, fmt.Errorf("metadata: provider returned status %d for media %d", resp.StatusCode, mediaID)
	}

	var details models.TitleDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		metrics.RecordMetadataRequest(time.Since(start), "decode")
		return nil, fmt.Errorf("metadata: decode response for media %d: %w", mediaID, err)
	}

	metrics.RecordMetadataRequest(time.Since(start), "")
	return &details, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
