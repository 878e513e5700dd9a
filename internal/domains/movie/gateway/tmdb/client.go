package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/sourcegraph/conc/iter"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/time/rate"

	"movie-catalog-backend/internal/domains/movie/gateway"
	"movie-catalog-backend/internal/shared/apperror"
	"movie-catalog-backend/internal/shared/utils"
)

const departmentActing = "Acting"

// Client implements gateway.MetadataProvider against the TMDB v3 API
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

var _ gateway.MetadataProvider = (*Client)(nil)

// NewClient creates TMDB client
func NewClient(config Config) (*Client, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if config.APIKey == "" {
		log.Warn().Msg("[TMDB] API key is empty, provider calls will be rejected")
	}

	burst := config.RateBurst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(config.RateLimit), burst),
		breaker:    newBreaker(),
	}, nil
}

// =====================================================
// SEARCH BY TITLE
// =====================================================

func (c *Client) SearchByTitle(ctx context.Context, query string) ([]gateway.MovieSummary, error) {
	// Step 1: Title search
	var resp searchResponse
	if err := c.get(ctx, "search", "/search/movie", url.Values{"query": []string{query}}, &resp); err != nil {
		return nil, toUpstreamError(err)
	}

	// Step 2: Credits lookup cho từng result, chạy song song
	// Mapper giữ nguyên thứ tự input nên kết quả khớp thứ tự của TMDB
	mapper := iter.Mapper[searchResult, gateway.MovieSummary]{
		MaxGoroutines: c.config.MaxConcurrency,
	}
	movies := mapper.Map(resp.Results, func(r *searchResult) gateway.MovieSummary {
		actors, err := c.actingCast(ctx, r.ID)
		if err != nil {
			// Credits lỗi không làm hỏng cả search, result đó có actors rỗng
			log.Warn().Err(err).Int64("tmdb_id", r.ID).Msg("[TMDB] Error fetching actors")
			actors = ""
		}

		return gateway.MovieSummary{
			Title:       r.Title,
			ExternalID:  r.ID,
			Genre:       joinGenreIDs(r.GenreIDs),
			Actors:      actors,
			ReleaseYear: parseReleaseYear(r.ReleaseDate),
			Rating:      r.VoteAverage,
			Description: r.Overview,
		}
	})

	return movies, nil
}

// actingCast trả về tên các cast member có known_for_department = Acting
func (c *Client) actingCast(ctx context.Context, externalID int64) (string, error) {
	var credits creditsResponse
	if err := c.get(ctx, "credits", creditsPath(externalID), nil, &credits); err != nil {
		return "", err
	}

	names := make([]string, 0, len(credits.Cast))
	for _, member := range credits.Cast {
		if member.KnownForDepartment == departmentActing {
			names = append(names, member.Name)
		}
	}
	return utils.JoinNonEmpty(names, ", "), nil
}

// =====================================================
// FETCH FULL DETAILS
// =====================================================

func (c *Client) FetchFullDetails(ctx context.Context, externalID int64) (*gateway.MovieDetail, error) {
	var (
		detail  movieDetailResponse
		credits creditsResponse
	)

	// Detail và credits độc lập nhau, gọi song song
	// Một bên lỗi thì cancel bên còn lại
	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		return c.get(ctx, "movie", moviePath(externalID), nil, &detail)
	})
	p.Go(func(ctx context.Context) error {
		return c.get(ctx, "credits", creditsPath(externalID), nil, &credits)
	})
	if err := p.Wait(); err != nil {
		return nil, toUpstreamError(err)
	}

	// Top N cast theo thứ tự billing của TMDB, không lọc department
	cast := credits.Cast
	if len(cast) > gateway.MaxDetailActors {
		cast = cast[:gateway.MaxDetailActors]
	}
	actorNames := make([]string, 0, len(cast))
	for _, member := range cast {
		actorNames = append(actorNames, member.Name)
	}

	genreNames := make([]string, 0, len(detail.Genres))
	for _, g := range detail.Genres {
		genreNames = append(genreNames, g.Name)
	}

	externalIDOut := detail.ID
	if externalIDOut == 0 {
		externalIDOut = externalID
	}

	return &gateway.MovieDetail{
		Title:       detail.Title,
		ExternalID:  externalIDOut,
		Genre:       utils.JoinNonEmpty(genreNames, ", "),
		Actors:      utils.JoinNonEmpty(actorNames, ", "),
		ReleaseYear: parseReleaseYear(detail.ReleaseDate),
		Rating:      detail.VoteAverage,
		Description: detail.Overview,
	}, nil
}

// =====================================================
// HELPERS
// =====================================================

func moviePath(externalID int64) string {
	return "/movie/" + strconv.FormatInt(externalID, 10)
}

func creditsPath(externalID int64) string {
	return moviePath(externalID) + "/credits"
}

func joinGenreIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return utils.JoinNonEmpty(parts, ", ")
}

// parseReleaseYear lấy năm từ "YYYY-MM-DD", nil nếu thiếu hoặc sai format
func parseReleaseYear(date string) *int {
	if date == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil
	}
	year := t.Year()
	return &year
}

// toUpstreamError giữ status_message của TMDB làm message nếu có
func toUpstreamError(err error) error {
	var se *statusError
	if errors.As(err, &se) && se.Message != "" {
		return apperror.NewUpstreamError(se.Message, err)
	}
	if errors.Is(err, gobreaker.ErrOpenState) {
		return apperror.NewUpstreamError("movie metadata provider is temporarily unavailable", err)
	}
	return apperror.NewUpstreamError(fmt.Sprintf("movie metadata provider request failed: %v", err), err)
}
