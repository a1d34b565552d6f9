package temperature

// HTTP transport for the temperature dataset endpoint.
// Rate limited, wrapped in a circuit breaker and retried through infra/retry.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"temperature-heatmap/internal/infra/fs"
	"temperature-heatmap/internal/infra/log"
	"temperature-heatmap/internal/infra/retry"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultURL is the public copy of the monthly global temperature dataset.
const DefaultURL = "https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/global-temperature.json"

type Options struct {
	URL             string
	Timeout         time.Duration
	MaxRetries      int
	MaxResponseSize int64
}

// Client fetches the raw dataset document.
type Client struct {
	url             string
	httpClient      *http.Client
	rateLimiter     *rate.Limiter
	circuitBreaker  *gobreaker.CircuitBreaker
	retry           retry.Options
	maxResponseSize int64
}

func NewClient(opts Options) *Client {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxResponseSize <= 0 {
		opts.MaxResponseSize = 10 * 1024 * 1024
	}

	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "TemperatureDataset",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Client{
		url:             opts.URL,
		rateLimiter:     rate.NewLimiter(rate.Limit(2), 4),
		circuitBreaker:  circuitBreaker,
		maxResponseSize: opts.MaxResponseSize,
		retry: retry.Options{
			MaxRetries: opts.MaxRetries,
			BaseDelay:  300 * time.Millisecond,
			MaxDelay:   5 * time.Second,
			Backoff:    2.0,
		},
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:    4,
				IdleConnTimeout: 90 * time.Second,
			},
		},
	}
}

func (c *Client) URL() string { return c.url }

// Fetch returns the raw dataset bytes from the configured URL or local file.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	if path, ok := fs.LocalPath(c.url); ok {
		log.LogDebug("Reading dataset from file", zap.String("path", path))
		return fs.ReadLimited(path, c.maxResponseSize)
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	var body []byte
	err := retry.Do(ctx, c.retry, func() error {
		_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			b, err := c.get(ctx)
			if err != nil {
				return nil, err
			}
			body = b
			return nil, nil
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	requestID := log.GenerateRequestID()
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.LogRequest(requestID, req.Method, c.url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.LogResponse(requestID, 0, time.Since(startTime).Milliseconds(), zap.String("endpoint", c.url), zap.Error(err))
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := fs.ReadAllLimited(resp.Body, c.maxResponseSize)
	duration := time.Since(startTime).Milliseconds()
	if readErr != nil && !errors.Is(readErr, fs.ErrTooLarge) {
		log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", c.url), zap.Error(readErr))
		return nil, fmt.Errorf("failed to read response: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", c.url))
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       truncate(body, 256),
			RetryAfter: retry.ParseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if readErr != nil {
		log.LogResponse(requestID, resp.StatusCode, duration, zap.String("endpoint", c.url), zap.Error(readErr))
		return nil, readErr
	}

	log.LogResponse(requestID, resp.StatusCode, duration,
		zap.String("endpoint", c.url),
		zap.Int("bytes", len(body)),
		zap.String("content_type", resp.Header.Get("Content-Type")))
	return body, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return []byte(strings.TrimSpace(string(b[:n])) + "...")
}
