package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Citizens-Hub/ccu-planner/internal/domain/ship"
	"github.com/Citizens-Hub/ccu-planner/internal/infrastructure/config"
)

const defaultTimeout = 30 * time.Second

// HTTPCatalog implements ship.Catalog over a remote catalog endpoint.
// The full ship list is fetched once and cached for the process lifetime;
// requests are rate-limited and retried with exponential backoff + jitter.
type HTTPCatalog struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	url         string
	maxRetries  int
	backoffBase time.Duration

	ships []*ship.Ship
	byID  ship.Index
}

// NewHTTPCatalog creates a catalog importer from config
func NewHTTPCatalog(cfg *config.CatalogConfig) *HTTPCatalog {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &HTTPCatalog{
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit.Requests), cfg.RateLimit.Burst),
		url:         cfg.URL,
		maxRetries:  cfg.Retry.MaxAttempts,
		backoffBase: cfg.Retry.BackoffBase,
	}
}

// All returns every known ship, fetching the catalog on first use
func (c *HTTPCatalog) All(ctx context.Context) ([]*ship.Ship, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return c.ships, nil
}

// FindByID returns the ship with the given id
func (c *HTTPCatalog) FindByID(ctx context.Context, id string) (*ship.Ship, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	if s := c.byID.Get(id); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ship.ErrShipNotFound, id)
}

// FindByName returns the ship with the given display name, case-insensitive
func (c *HTTPCatalog) FindByName(ctx context.Context, name string) (*ship.Ship, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	for _, s := range c.ships {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ship.ErrShipNotFound, name)
}

func (c *HTTPCatalog) ensureLoaded(ctx context.Context) error {
	if c.ships != nil {
		return nil
	}

	var records []shipRecord
	if err := c.fetch(ctx, &records); err != nil {
		return fmt.Errorf("failed to import catalog: %w", err)
	}
	if len(records) == 0 {
		return ship.ErrEmptyCatalog
	}

	c.ships = recordsToShips(records)
	c.byID = ship.NewIndex(c.ships)
	return nil
}

// fetch performs the GET with rate limiting and exponential backoff + jitter
func (c *HTTPCatalog) fetch(ctx context.Context, result interface{}) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("network error: %w", err)
			if attempt >= c.maxRetries {
				break
			}
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			time.Sleep(addJitter(c.backoffBase * time.Duration(1<<attempt)))
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("failed to read response: %w", readErr)
		}

		// 5xx and 429 are retryable; other failures are not
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("catalog endpoint returned %d", resp.StatusCode)
			if attempt >= c.maxRetries {
				break
			}
			time.Sleep(addJitter(c.backoffBase * time.Duration(1<<attempt)))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("catalog endpoint returned %d", resp.StatusCode)
		}

		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to parse catalog response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("catalog import failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// addJitter adds random jitter to a backoff delay to avoid thundering herd.
// Returns a duration between 50% and 150% of the original value.
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64()
	return time.Duration(float64(d) * jitter)
}
