// internal/adapters/listingsapi/client.go
package listingsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"andaman_vendor/internal/adapters/observability"
	"andaman_vendor/internal/domain"
)

const DefaultTimeout = 10 * time.Second

type Options struct {
	Timeout time.Duration // per call; DefaultTimeout when zero
	RPS     int
}

// Client talks to the listings API. It never retries: every failure goes back
// to the caller, which shows it to the vendor.
type Client struct {
	base    string
	hc      *http.Client
	timeout time.Duration
	rl      *rate.Limiter
	cb      *gobreaker.CircuitBreaker
}

var _ domain.ListingsAPI = (*Client)(nil)

func New(base string, opts Options) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("listings API base URL is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RPS <= 0 {
		opts.RPS = 20
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		hc:      &http.Client{Timeout: opts.Timeout + time.Second},
		timeout: opts.Timeout,
		rl:      rate.NewLimiter(rate.Limit(opts.RPS), opts.RPS),
		cb:      newBreaker("listings-api"),
	}, nil
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 4
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("circuit breaker state changed")
			observability.SetBreakerState(name, int(to))
		},
		// 4xx answers mean the API is up.
		IsSuccessful: func(err error) bool {
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.Status < 500
			}
			return err == nil
		},
	})
}

// ---- Public API ----

func (c *Client) GetProfile(ctx context.Context, p domain.Principal) (domain.ProfileEnvelope, error) {
	var out domain.ProfileEnvelope
	u := fmt.Sprintf("%s/vendors/%d/profile", c.base, p.UserID)
	return out, c.do(ctx, http.MethodGet, "profile", u, p.Token, nil, &out)
}

func (c *Client) ListIslands(ctx context.Context) (domain.IslandsEnvelope, error) {
	var out domain.IslandsEnvelope
	return out, c.do(ctx, http.MethodGet, "islands", c.base+"/islands", "", nil, &out)
}

func (c *Client) GetHotel(ctx context.Context, p domain.Principal, serviceID int64) (domain.HotelEnvelope, error) {
	var out domain.HotelEnvelope
	u := fmt.Sprintf("%s/vendor/hotels/%d", c.base, serviceID)
	return out, c.do(ctx, http.MethodGet, "hotel_get", u, p.Token, nil, &out)
}

func (c *Client) UpdateHotel(ctx context.Context, p domain.Principal, serviceID int64, body domain.HotelUpdate) (domain.Envelope[any], error) {
	var out domain.Envelope[any]
	b, err := json.Marshal(body)
	if err != nil {
		return out, fmt.Errorf("encode hotel update: %w", err)
	}
	u := fmt.Sprintf("%s/vendor/hotels/%d", c.base, serviceID)
	return out, c.do(ctx, http.MethodPut, "hotel_put", u, p.Token, b, &out)
}

// ---- Internals ----

// APIError is a non-2xx answer. Message carries the envelope's text if any.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("listings API: status %d", e.Status)
	}
	return fmt.Sprintf("listings API: status %d: %s", e.Status, e.Message)
}

func (e *APIError) UserMessage() string { return e.Message }

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusServiceUnavailable:
		return domain.ErrUnavailable
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint, url, token string, body []byte, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.cb.Execute(func() (any, error) {
		return nil, c.send(ctx, method, endpoint, url, token, body, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return err
}

func (c *Client) send(ctx context.Context, method, endpoint, url, token string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "andaman-vendor-portal/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("listings", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return fmt.Errorf("%s %s: %w", method, endpoint, ctx.Err())
		}
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("listings", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", endpoint, err)
		}
		return nil
	}

	// read a small error body; prefer the envelope message
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var env struct {
		Message string `json:"message"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	if json.Unmarshal(b, &env) == nil {
		apiErr.Message = env.Message
	}
	return apiErr
}
