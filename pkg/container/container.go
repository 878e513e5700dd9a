package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"movie-catalog-backend/internal/config"
	infraCache "movie-catalog-backend/internal/infrastructure/cache"
	"movie-catalog-backend/internal/infrastructure/database"
	"movie-catalog-backend/pkg/cache"

	"movie-catalog-backend/internal/domains/movie/gateway"
	"movie-catalog-backend/internal/domains/movie/gateway/tmdb"
	movieHandler "movie-catalog-backend/internal/domains/movie/handler"
	movieRepo "movie-catalog-backend/internal/domains/movie/repository"
	movieService "movie-catalog-backend/internal/domains/movie/service"

	curatedListHandler "movie-catalog-backend/internal/domains/curatedlist/handler"
	curatedListRepo "movie-catalog-backend/internal/domains/curatedlist/repository"
	curatedListService "movie-catalog-backend/internal/domains/curatedlist/service"

	membershipHandler "movie-catalog-backend/internal/domains/membership/handler"
	membershipRepo "movie-catalog-backend/internal/domains/membership/repository"
	membershipService "movie-catalog-backend/internal/domains/membership/service"

	reviewHandler "movie-catalog-backend/internal/domains/review/handler"
	reviewRepo "movie-catalog-backend/internal/domains/review/repository"
	reviewService "movie-catalog-backend/internal/domains/review/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Thứ tự khởi tạo: Config → Infrastructure → Repositories → Services → Handlers
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config   *config.Config
	DB       *database.PostgresDB
	Cache    cache.Cache // Redis, fallback in-memory khi Redis không kết nối được
	Provider gateway.MetadataProvider

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	MovieRepo       movieRepo.MovieRepository
	CuratedListRepo curatedListRepo.CuratedListRepository
	MembershipRepo  membershipRepo.MembershipRepository
	ReviewRepo      reviewRepo.ReviewRepository

	// ========================================
	// SERVICE LAYER
	// ========================================
	Reconciler         *movieService.Reconciler
	MovieService       movieService.ServiceInterface
	CuratedListService curatedListService.ServiceInterface
	MembershipService  membershipService.ServiceInterface
	ReviewService      reviewService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	MovieHandler       *movieHandler.MovieHandler
	CuratedListHandler *curatedListHandler.CuratedListHandler
	MembershipHandler  *membershipHandler.MembershipHandler
	ReviewHandler      *reviewHandler.ReviewHandler

	// bgCtx sống cùng container: pool monitor, cache janitor
	bgCtx          context.Context
	stopBackground context.CancelFunc
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
// Nếu thứ tự sai → nil pointer dereference
func NewContainer() (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{}
	c.bgCtx, c.stopBackground = context.WithCancel(context.Background())

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("✅ Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect chạy migrations nếu DB_AUTO_MIGRATE=true
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	go db.MonitorPoolHealth(c.bgCtx, 30*time.Second)

	log.Info().Msg("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	c.Cache = c.initCache(ctx)

	// ========================================
	// STEP 4: INITIALIZE METADATA PROVIDER
	// ========================================
	provider, err := tmdb.NewClient(tmdb.Config{
		APIKey:  cfg.TMDB.APIKey,
		BaseURL: cfg.TMDB.BaseURL,
		Timeout: cfg.TMDB.Timeout,
		Retry: tmdb.RetryPolicy{
			MaxRetries: cfg.TMDB.MaxRetries,
			BaseDelay:  cfg.TMDB.RetryBaseDelay,
			MaxDelay:   cfg.TMDB.RetryMaxDelay,
		},
		RateLimit:      cfg.TMDB.RateLimit,
		RateBurst:      cfg.TMDB.RateBurst,
		MaxConcurrency: cfg.TMDB.MaxConcurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init TMDB client: %w", err)
	}
	c.Provider = provider

	// ========================================
	// STEP 5-7: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

// initCache: Redis lỗi không critical, dùng in-memory cache thay thế
func (c *Container) initCache(ctx context.Context) cache.Cache {
	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis connection failed, falling back to in-memory cache")
		_ = redisCache.Close()

		memCache := cache.NewMemoryCache()
		go memCache.RunJanitor(c.bgCtx, c.Config.Cache.SweepInterval)
		return memCache
	}

	log.Info().Str("host", c.Config.Redis.Host).Msg("✅ Redis connected")
	return redisCache
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.MovieRepo = movieRepo.NewPostgresMovieRepository(pool, c.Cache, c.Config.Cache.MovieTTL)
	c.CuratedListRepo = curatedListRepo.NewPostgresCuratedListRepository(pool)
	c.MembershipRepo = membershipRepo.NewPostgresMembershipRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(pool)
}

func (c *Container) initServices() {
	c.Reconciler = movieService.NewReconciler(c.MovieRepo, c.Provider)
	c.MovieService = movieService.NewMovieService(c.MovieRepo, c.Provider)
	c.CuratedListService = curatedListService.NewCuratedListService(c.CuratedListRepo)

	// Cross-domain: membership cần reconciler, movie repo và curated list service
	c.MembershipService = membershipService.NewMembershipService(
		c.MembershipRepo,
		c.Reconciler,
		c.MovieRepo,
		c.CuratedListService,
	)

	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo)
}

func (c *Container) initHandlers() {
	c.MovieHandler = movieHandler.NewMovieHandler(c.MovieService)
	c.CuratedListHandler = curatedListHandler.NewCuratedListHandler(c.CuratedListService)
	c.MembershipHandler = membershipHandler.NewMembershipHandler(c.MembershipService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.stopBackground != nil {
		c.stopBackground()
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close database")
		} else {
			log.Info().Msg("✅ Database connections closed")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
		} else {
			log.Info().Msg("✅ Redis connections closed")
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
