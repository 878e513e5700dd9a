package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-backend/internal/infrastructure/metrics"
	"movie-catalog-backend/internal/shared/apperror"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.APIKey = "test-token"
	cfg.BaseURL = srv.URL
	cfg.Timeout = 2 * time.Second
	cfg.Retry = RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
	cfg.RateLimit = 1000
	cfg.RateBurst = 100

	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func TestSearchByTitle_MapsResultsAndKeepsOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "matrix", r.URL.Query().Get("query"))
		fmt.Fprint(w, `{"page":1,"results":[
			{"id":603,"title":"The Matrix","genre_ids":[28,878],"release_date":"1999-03-30","vote_average":8.2,"overview":"Neo"},
			{"id":604,"title":"The Matrix Reloaded","genre_ids":[28],"release_date":"","vote_average":7.0,"overview":"Zion"},
			{"id":605,"title":"The Matrix Revolutions","genre_ids":[],"release_date":"not-a-date","vote_average":6.7,"overview":"End"}
		]}`)
	})
	mux.HandleFunc("/movie/", func(w http.ResponseWriter, r *http.Request) {
		// first result answers slowest so completion order differs from input order
		switch r.URL.Path {
		case "/movie/603/credits":
			time.Sleep(30 * time.Millisecond)
			fmt.Fprint(w, `{"id":603,"cast":[
				{"name":"Keanu Reeves","known_for_department":"Acting"},
				{"name":"Lana Wachowski","known_for_department":"Directing"},
				{"name":"Carrie-Anne Moss","known_for_department":"Acting"}]}`)
		case "/movie/604/credits":
			time.Sleep(10 * time.Millisecond)
			fmt.Fprint(w, `{"id":604,"cast":[{"name":"Hugo Weaving","known_for_department":"Acting"}]}`)
		default:
			fmt.Fprint(w, `{"id":605,"cast":[]}`)
		}
	})
	client := newTestClient(t, mux)

	movies, err := client.SearchByTitle(context.Background(), "matrix")
	require.NoError(t, err)
	require.Len(t, movies, 3)

	assert.Equal(t, int64(603), movies[0].ExternalID)
	assert.Equal(t, "28, 878", movies[0].Genre)
	assert.Equal(t, "Keanu Reeves, Carrie-Anne Moss", movies[0].Actors)
	require.NotNil(t, movies[0].ReleaseYear)
	assert.Equal(t, 1999, *movies[0].ReleaseYear)
	assert.Equal(t, 8.2, movies[0].Rating)

	assert.Equal(t, int64(604), movies[1].ExternalID)
	assert.Equal(t, "Hugo Weaving", movies[1].Actors)
	assert.Nil(t, movies[1].ReleaseYear)

	assert.Equal(t, int64(605), movies[2].ExternalID)
	assert.Equal(t, "", movies[2].Genre)
	assert.Nil(t, movies[2].ReleaseYear)
}

func TestSearchByTitle_CreditsFailureYieldsEmptyActors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[{"id":1,"title":"A","genre_ids":[18],"release_date":"2001-01-01"}]}`)
	})
	mux.HandleFunc("/movie/1/credits", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status_code":34,"status_message":"The resource you requested could not be found."}`)
	})
	client := newTestClient(t, mux)

	movies, err := client.SearchByTitle(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "", movies[0].Actors)
}

func TestSearchByTitle_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"results":[]}`)
	})
	client := newTestClient(t, mux)

	movies, err := client.SearchByTitle(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, movies)
	assert.Equal(t, int32(3), calls.Load())
}

func TestSearchByTitle_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"status_code":25,"status_message":"Your request count is over the allowed limit."}`)
	})
	client := newTestClient(t, mux)

	_, err := client.SearchByTitle(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUpstream))
	assert.Equal(t, "Your request count is over the allowed limit.", apperror.As(err).Message)
	assert.Equal(t, int32(4), calls.Load())
}

func TestSearchByTitle_BackoffFollowsPolicy(t *testing.T) {
	var (
		mu    sync.Mutex
		stamp []time.Time
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		stamp = append(stamp, time.Now())
		mu.Unlock()
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client := newTestClient(t, mux)
	client.config.Retry = RetryPolicy{MaxRetries: 3, BaseDelay: 50 * time.Millisecond, MaxDelay: time.Second}

	retries := metrics.ProviderRetriesTotal.WithLabelValues("search")
	before := testutil.ToFloat64(retries)

	_, err := client.SearchByTitle(context.Background(), "x")
	require.Error(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, stamp, 4)

	// retry thứ i chờ Delay(i): 50ms, 100ms, 200ms
	for i := 1; i < len(stamp); i++ {
		gap := stamp[i].Sub(stamp[i-1])
		want := client.config.Retry.Delay(uint(i - 1))
		assert.GreaterOrEqual(t, gap, want, "gap before retry %d", i)
		assert.Less(t, gap, 2*want, "gap before retry %d", i)
	}

	// chỉ đếm 3 lần retry, attempt cuối không retry nữa
	assert.Equal(t, float64(3), testutil.ToFloat64(retries)-before)
}

func TestSearchByTitle_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key."}`)
	})
	client := newTestClient(t, mux)

	_, err := client.SearchByTitle(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, "Invalid API key: You must be granted a valid key.", apperror.As(err).Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchFullDetails_TopFiveActorsAndGenreNames(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/603", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":603,"title":"The Matrix","genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}],
			"release_date":"1999-03-30","vote_average":8.2,"overview":"Neo"}`)
	})
	mux.HandleFunc("/movie/603/credits", func(w http.ResponseWriter, r *http.Request) {
		cast := make([]string, 0, 7)
		for i := 1; i <= 7; i++ {
			dept := "Acting"
			if i == 2 {
				dept = "Directing"
			}
			cast = append(cast, fmt.Sprintf(`{"name":"Actor %d","known_for_department":%q,"order":%d}`, i, dept, i-1))
		}
		fmt.Fprintf(w, `{"id":603,"cast":[%s]}`, strings.Join(cast, ","))
	})
	client := newTestClient(t, mux)

	detail, err := client.FetchFullDetails(context.Background(), 603)
	require.NoError(t, err)

	assert.Equal(t, "The Matrix", detail.Title)
	assert.Equal(t, int64(603), detail.ExternalID)
	assert.Equal(t, "Action, Science Fiction", detail.Genre)
	assert.Equal(t, "Actor 1, Actor 2, Actor 3, Actor 4, Actor 5", detail.Actors)
	require.NotNil(t, detail.ReleaseYear)
	assert.Equal(t, 1999, *detail.ReleaseYear)
	assert.Equal(t, "Neo", detail.Description)
}

func TestFetchFullDetails_NotFoundIsUpstreamError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status_code":34,"status_message":"The resource you requested could not be found."}`)
	})
	client := newTestClient(t, mux)

	detail, err := client.FetchFullDetails(context.Background(), 999999)
	require.Error(t, err)
	assert.Nil(t, detail)
	assert.True(t, apperror.IsKind(err, apperror.KindUpstream))
	assert.Equal(t, "The resource you requested could not be found.", apperror.As(err).Message)
}

func TestRetryPolicy_DelayDoublesAndCaps(t *testing.T) {
	p := RetryPolicy{MaxRetries: 3, BaseDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, p.Delay(0))
	assert.Equal(t, 200*time.Millisecond, p.Delay(1))
	assert.Equal(t, 300*time.Millisecond, p.Delay(2))
}

func TestNewClient_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxConcurrency = 0

	_, err := NewClient(cfg)
	assert.Error(t, err)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(&statusError{StatusCode: 500}))
	assert.True(t, isTransient(&statusError{StatusCode: 429}))
	assert.False(t, isTransient(&statusError{StatusCode: 404}))
	assert.False(t, isTransient(context.Canceled))
	assert.False(t, isTransient(nil))
}

func TestParseReleaseYear(t *testing.T) {
	y := parseReleaseYear("2010-07-16")
	require.NotNil(t, y)
	assert.Equal(t, 2010, *y)
	assert.Nil(t, parseReleaseYear(""))
	assert.Nil(t, parseReleaseYear("2010"))
}
