package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	"movie-catalog-backend/internal/infrastructure/metrics"
)

// maxErrorBody giới hạn số byte đọc từ body lỗi
const maxErrorBody = 64 << 10

// statusError là response non-2xx từ TMDB
type statusError struct {
	StatusCode int
	Message    string // status_message của TMDB nếu parse được
	Path       string
}

func (e *statusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb %s: status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("tmdb %s: status %d", e.Path, e.StatusCode)
}

// transient: 429 và 5xx được retry, 4xx còn lại là lỗi application
func (e *statusError) transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// isTransient quyết định attempt có được retry không
func isTransient(err error) bool {
	if err == nil {
		return false
	}

	var se *statusError
	if errors.As(err, &se) {
		return se.transient()
	}

	// Circuit open → fail fast, retry chỉ làm tệ thêm
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}

	// Caller cancel thì dừng luôn
	if errors.Is(err, context.Canceled) {
		return false
	}

	// Lỗi network / timeout của từng attempt
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

// breakerSuccess: 4xx (trừ 429) là lỗi của request, không phải TMDB down
func breakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return !se.transient()
	}
	return false
}

func newBreaker() *gobreaker.CircuitBreaker[[]byte] {
	const name = "tmdb-api"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,                // requests cho phép ở half-open
		Interval:    time.Minute,      // reset counts trong closed state
		Timeout:     30 * time.Second, // open → half-open
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[TMDB] Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}

// get gọi GET path, retry lỗi transient theo RetryPolicy và decode JSON vào dest
// endpoint chỉ dùng làm metrics label
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, dest interface{}) error {
	reqURL := c.config.BaseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	attempts := uint(c.config.Retry.MaxRetries) + 1

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			return c.attempt(ctx, endpoint, path, reqURL)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		// retry-go gọi DelayType với n đã tăng (retry đầu tiên n = 1)
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return c.config.Retry.Delay(n - 1)
		}),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
		// OnRetry chạy cả sau attempt cuối cùng, lúc đó không còn retry nào
		retry.OnRetry(func(n uint, err error) {
			if n+1 >= attempts {
				return
			}
			metrics.ProviderRetriesTotal.WithLabelValues(endpoint).Inc()
			log.Warn().
				Err(err).
				Uint("attempt", n+1).
				Str("path", path).
				Msg("[TMDB] Transient failure, retrying")
		}),
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("tmdb %s: decode response: %w", path, err)
	}
	return nil
}

// attempt là một HTTP round-trip, đi qua rate limiter và circuit breaker
func (c *Client) attempt(ctx context.Context, endpoint, path, reqURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("tmdb %s: rate limiter: %w", path, err)
	}

	start := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, path, reqURL)
	})
	metrics.ProviderRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.ProviderRequestsTotal.WithLabelValues(endpoint, outcome).Inc()

	return body, err
}

func (c *Client) roundTrip(ctx context.Context, path, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb %s: request failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &statusError{StatusCode: resp.StatusCode, Path: path}
		var apiErr errorResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &apiErr) == nil {
			se.Message = apiErr.StatusMessage
		}
		return nil, se
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tmdb %s: read body: %w", path, err)
	}
	return body, nil
}
