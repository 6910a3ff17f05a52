// Package fetch provides the HTTP client the crawler uses to pull
// documentation pages: single fetches plus concurrent batch fetches keyed
// by URL.
package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/apiforge/modelgen/internal/errors"
	"github.com/apiforge/modelgen/internal/logger"
)

// maxBodySize caps response bodies at 5MB; documentation pages are far
// smaller and anything bigger is not worth parsing.
const maxBodySize = 5 * 1024 * 1024

// Cache is an optional page cache consulted before the network. The
// bbolt-backed implementation lives in internal/cache.
type Cache interface {
	Get(url string) ([]byte, bool)
	Put(url string, body []byte) error
}

// Config holds fetch client configuration.
type Config struct {
	Timeout             time.Duration
	RequestsPerSecond   float64
	Burst               int
	UserAgent           string
	MaxIdleConns        int
	MaxIdleConnsPerHost int

	// Transient failures (network, timeout, 5xx) are retried with
	// exponential backoff; 0 disables retries.
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultConfig returns defaults polite enough for a documentation site.
func DefaultConfig() Config {
	return Config{
		Timeout:             30 * time.Second,
		RequestsPerSecond:   10,
		Burst:               4,
		UserAgent:           "modelgen/1.0 (+https://github.com/apiforge/modelgen)",
		MaxIdleConns:        64,
		MaxIdleConnsPerHost: 16,
		MaxRetries:          2,
		RetryDelay:          500 * time.Millisecond,
	}
}

// Client fetches documentation pages over HTTP.
type Client struct {
	client    *http.Client
	limiter   *rate.Limiter
	retrier   *errors.Retrier
	userAgent string
	cache     Cache
	log       *logger.Logger
}

// NewClient creates a fetch client. A nil logger falls back to a no-op
// logger.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultConfig().RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultConfig().Burst
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	var retrier *errors.Retrier
	if cfg.MaxRetries > 0 {
		retryCfg := errors.DefaultRetryConfig()
		retryCfg.MaxRetries = cfg.MaxRetries
		if cfg.RetryDelay > 0 {
			retryCfg.InitialDelay = cfg.RetryDelay
		}
		retrier = errors.NewRetrier(retryCfg)
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		retrier:   retrier,
		userAgent: cfg.UserAgent,
		log:       log.WithComponent("fetch"),
	}
}

// SetCache attaches an optional page cache.
func (c *Client) SetCache(cache Cache) {
	c.cache = cache
}

// Page fetches one page and returns its body text. Non-2xx responses and
// transport failures come back as categorized errors; transient ones are
// retried when the client was configured with retries.
func (c *Client) Page(ctx context.Context, url string) (string, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(url); ok {
			c.log.WithURL(url).Debug("cache hit")
			return string(body), nil
		}
	}

	var body string
	fetch := func(ctx context.Context) error {
		var err error
		body, err = c.fetchOnce(ctx, url)
		return err
	}

	if c.retrier != nil {
		result := c.retrier.Do(ctx, "request", url, fetch)
		if !result.Success {
			return "", result.LastError
		}
	} else if err := fetch(ctx); err != nil {
		return "", err
	}

	if c.cache != nil {
		if err := c.cache.Put(url, []byte(body)); err != nil {
			c.log.WithURL(url).WithError(err).Warn("failed to cache page")
		}
	}

	return body, nil
}

// fetchOnce performs a single rate-limited GET.
func (c *Client) fetchOnce(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", errors.Categorize(err, url)
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.New(errors.Unknown, url, "request_creation", "failed to create request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Categorize(err, url)
	}
	defer resp.Body.Close()

	if httpErr := errors.CategorizeHTTPStatus(resp.StatusCode, url); httpErr != nil {
		return "", httpErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", errors.NewNetworkError(url, "body_read", err)
	}

	c.log.FetchEvent(url, resp.StatusCode, time.Since(start))
	return string(body), nil
}

// Pages fetches a batch of URLs concurrently and returns the bodies of
// only the URLs that succeeded, keyed by URL. Failures are logged and
// omitted; they never fail the batch. The call returns once every fetch
// has settled.
func (c *Client) Pages(ctx context.Context, urls []string, concurrency int) map[string]string {
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]string, len(urls))
		sem     = make(chan struct{}, concurrency)
	)

	for _, u := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			body, err := c.Page(ctx, url)
			if err != nil {
				c.log.WithURL(url).WithError(err).Warn("page fetch failed")
				return
			}

			mu.Lock()
			results[url] = body
			mu.Unlock()
		}(u)
	}

	wg.Wait()
	return results
}

// Close releases idle connections.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}

// IsDocsURL reports whether a URL points at an http(s) origin; anything
// else is not fetchable by this client.
func IsDocsURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
