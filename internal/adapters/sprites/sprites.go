// Package sprites fetches creature sprite images from the external object
// store. Absence or failure of either image is never a request failure;
// callers degrade to an uncolorized or imageless render.
package sprites

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/broodsheet/internal/domain/model"
	"github.com/okian/broodsheet/pkg/logger"
	"github.com/okian/broodsheet/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultTimeout      = 5 * time.Second
	maxSpriteBytes      = 8 << 20 // 8 MiB per image
	maskSuffix          = "_m"
	aseGameSuffix       = "_ase"
	spriteFileExtension = ".png"
)

// Client fetches sprite objects over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout bounds each individual fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a sprite client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("sprites")
	}
	return c
}

// BaseKey returns the object key for a species' base image.
func BaseKey(species, game string) string {
	return species + gameSuffix(game) + spriteFileExtension
}

// MaskKey returns the object key for a species' color-region mask.
func MaskKey(species, game string) string {
	return species + gameSuffix(game) + maskSuffix + spriteFileExtension
}

// gameSuffix is empty for ASA and a fixed marker for ASE.
func gameSuffix(game string) string {
	if game == model.GameASE {
		return aseGameSuffix
	}
	return ""
}

// FetchPair retrieves the base and mask images for a species concurrently.
// Either result may be nil: a missing base means rendering proceeds without a
// creature image, a missing mask means the base is used uncolorized. Fetch
// failures are logged and swallowed.
func (c *Client) FetchPair(ctx context.Context, species, game string) (base, mask []byte) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		base = c.fetch(gctx, BaseKey(species, game))
		return nil
	})
	g.Go(func() error {
		mask = c.fetch(gctx, MaskKey(species, game))
		return nil
	})
	_ = g.Wait()
	return base, mask
}

// fetch retrieves one object, returning nil on any failure.
func (c *Client) fetch(ctx context.Context, key string) []byte {
	start := time.Now()
	metrics.RecordSpriteFetch()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+key, nil)
	if err != nil {
		c.warn(ctx, key, err)
		return nil
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.warn(ctx, key, err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordSpriteFetchLatency(float64(time.Since(start).Milliseconds()))

	if resp.StatusCode != http.StatusOK {
		c.warn(ctx, key, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode))
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSpriteBytes))
	if err != nil {
		c.warn(ctx, key, err)
		return nil
	}
	return body
}

func (c *Client) warn(ctx context.Context, key string, err error) {
	metrics.RecordSpriteFetchError()
	c.logger.Warn(ctx, "sprite unavailable; rendering degrades",
		logger.String("key", key),
		logger.Error(err),
	)
}
