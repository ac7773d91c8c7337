// Package provider implements the external data-provider collaborators:
// the football statistics API, the weather API and the news API. All
// operations are independently failable; callers are expected to degrade
// to "no data" on error.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var providerRequestFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "provider_request_failures_total",
	Help: "Total number of failed upstream provider requests",
}, []string{"endpoint"})

// Config configures the upstream API client.
type Config struct {
	FootballBaseURL string
	FootballAPIKey  string
	WeatherBaseURL  string
	WeatherAPIKey   string
	NewsBaseURL     string
	NewsAPIKey      string
	Season          int
	Timeout         time.Duration
	RequestsPerSec  int
	MaxRetryTime    time.Duration
}

// Client talks to the three upstream APIs behind one rate limiter.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.SugaredLogger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSec == 0 {
		cfg.RequestsPerSec = 5
	}
	if cfg.MaxRetryTime == 0 {
		cfg.MaxRetryTime = 15 * time.Second
	}
	if cfg.Season == 0 {
		cfg.Season = time.Now().Year()
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.RequestsPerSec),
		logger:  logger.Sugar(),
	}
}

// StatusError reports a non-200 upstream response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// getJSON performs a rate-limited GET with exponential-backoff retries and
// decodes the body into out.
func (c *Client) getJSON(ctx context.Context, endpoint, rawURL string, params url.Values, headers map[string]string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	u.RawQuery = params.Encode()

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := &StatusError{StatusCode: resp.StatusCode}
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return nil
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.MaxElapsedTime = c.cfg.MaxRetryTime

	if err := backoff.Retry(operation, backoff.WithContext(strategy, ctx)); err != nil {
		providerRequestFailures.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) footballHeaders() map[string]string {
	return map[string]string{
		"X-RapidAPI-Key":  c.cfg.FootballAPIKey,
		"X-RapidAPI-Host": "v3.football.api-sports.io",
	}
}
