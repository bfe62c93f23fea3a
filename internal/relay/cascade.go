package relay

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// maxPayloadBytes caps how much of a response body is read; feeds larger
// than this are truncated rather than buffered unbounded.
const maxPayloadBytes = 4 << 20

// ExhaustedError reports that every configured relay failed for one URL.
type ExhaustedError struct {
	URL      string
	Attempts int
	LastErr  error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d relays failed for %s: %v", e.Attempts, e.URL, e.LastErr)
}

func (e *ExhaustedError) Unwrap() error { return e.LastErr }

// Client fetches URLs through the relay cascade. A single Client is shared
// by every source in a refresh cycle; the rotator cursor and the rate
// limiter are its only cross-request state.
type Client struct {
	http    *http.Client
	rotator *Rotator
	limiter *rate.Limiter
	timeout time.Duration
	logger  *log.Logger
}

// NewClient builds a cascade client. timeout bounds each individual relay
// attempt, not the whole cascade.
func NewClient(rotator *Rotator, timeout time.Duration, logger *log.Logger) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		http:    &http.Client{Transport: transport},
		rotator: rotator,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		timeout: timeout,
		logger:  logger,
	}
}

// Fetch retrieves url, trying each configured relay in rotator order. A
// timeout or non-2xx response advances to the next relay; attempts are
// strictly sequential. Returns *ExhaustedError once every relay has failed.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	attempts := c.rotator.Len()
	var lastErr error

	for attempt := 0; attempt < attempts; attempt++ {
		wrapped := c.rotator.Next().Wrap(url)

		payload, err := c.fetchOnce(ctx, wrapped)
		if err == nil {
			return payload, nil
		}
		lastErr = err
		c.logger.Debug("relay attempt failed", "url", url, "attempt", attempt+1, "err", err)

		if ctx.Err() != nil {
			break
		}
	}

	return nil, &ExhaustedError{URL: url, Attempts: attempts, LastErr: lastErr}
}

func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "ai-news-hub/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))
		return nil, fmt.Errorf("http %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
}
