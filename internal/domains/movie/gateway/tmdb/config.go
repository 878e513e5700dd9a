package tmdb

import (
	"errors"
	"time"
)

// RetryPolicy là policy object inject vào client
// MaxRetries = số lần retry sau attempt đầu tiên (3 → tối đa 4 requests)
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration // delay lần retry đầu, nhân đôi mỗi lần sau
	MaxDelay   time.Duration
}

// Delay trả về backoff trước retry thứ n (n bắt đầu từ 0)
func (p RetryPolicy) Delay(n uint) time.Duration {
	d := p.BaseDelay << n
	if p.MaxDelay > 0 && (d > p.MaxDelay || d <= 0) {
		return p.MaxDelay
	}
	return d
}

// Config for TMDB client
type Config struct {
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	Retry          RetryPolicy
	RateLimit      float64 // requests/second
	RateBurst      int
	MaxConcurrency int // credits lookups in flight per search
}

// DefaultConfig dùng cho local dev/test, giá trị giống config.Load defaults
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.themoviedb.org/3",
		Timeout: 10 * time.Second,
		Retry: RetryPolicy{
			MaxRetries: 3,
			BaseDelay:  500 * time.Millisecond,
			MaxDelay:   5 * time.Second,
		},
		RateLimit:      40,
		RateBurst:      20,
		MaxConcurrency: 8,
	}
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("tmdb: base URL is required")
	}
	if c.Retry.MaxRetries < 0 {
		return errors.New("tmdb: max retries must be >= 0")
	}
	if c.MaxConcurrency < 1 {
		return errors.New("tmdb: max concurrency must be >= 1")
	}
	if c.RateLimit <= 0 {
		return errors.New("tmdb: rate limit must be > 0")
	}
	return nil
}
