package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/mlb-team-timeline/internal/config"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/dataset"
	"github.com/riskibarqy/mlb-team-timeline/internal/domain/franchise"
	cacherepo "github.com/riskibarqy/mlb-team-timeline/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/mlb-team-timeline/internal/infrastructure/repository/csvfile"
	"github.com/riskibarqy/mlb-team-timeline/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/mlb-team-timeline/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/mlb-team-timeline/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/mlb-team-timeline/internal/platform/cache"
	"github.com/riskibarqy/mlb-team-timeline/internal/platform/logging"
	"github.com/riskibarqy/mlb-team-timeline/internal/platform/resilience"
	"github.com/riskibarqy/mlb-team-timeline/internal/usecase"
)

const resolverCachePrefix = "mlbtimeline:resolve"

// App holds the HTTP server together with the resources it owns.
type App struct {
	Server *http.Server
	Stats  dataset.Stats

	closers []func() error
}

// New loads the snapshot, wires repositories and services, and builds the
// HTTP server. Any load failure aborts start-up.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{}

	snapshot, err := a.loadSnapshot(ctx, cfg, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Stats = snapshot.Stats()
	logger.Info("dataset loaded",
		"source", a.Stats.Source,
		"players", a.Stats.Players,
		"appearances", a.Stats.Appearances,
		"team_seasons", a.Stats.TeamSeasons,
	)

	directory, err := loadDirectory(cfg.FranchiseDirectoryPath)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	resolver, err := a.newResolver(ctx, cfg, directory, logger)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	timelineSvc := usecase.NewTimelineService(
		memory.NewPlayerRepository(snapshot.Players),
		memory.NewBattingRepository(snapshot.Appearances),
		memory.NewTeamSeasonRepository(snapshot.TeamSeasons),
		directory,
		resolver,
		logger.Named("usecase"),
		cfg.ExtractConcurrency,
	)

	handler := httpapi.NewHandler(timelineSvc, a.Stats, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	if cfg.HTTPAddr == "" {
		_ = a.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

// Close releases the database pool and cache connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) loadSnapshot(ctx context.Context, cfg config.Config, logger *logging.Logger) (dataset.Snapshot, error) {
	var loader dataset.Loader
	switch cfg.DataSource {
	case config.DataSourceSample:
		logger.Warn("serving built-in sample dataset", "reason", "DATA_SOURCE=sample")
		return memory.SeedSnapshot(), nil
	case config.DataSourcePostgres:
		db, dbName, err := OpenDB(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
		if err != nil {
			return dataset.Snapshot{}, err
		}
		a.closers = append(a.closers, db.Close)
		loader = postgres.NewSnapshotLoader(db, dbName)
	default:
		loader = csvfile.NewLoader(cfg.DataDir)
	}

	snapshot, err := loader.Load(ctx)
	if err != nil {
		return dataset.Snapshot{}, crerr.Wrapf(err, "load %s dataset", cfg.DataSource)
	}
	return snapshot, nil
}

func loadDirectory(path string) (*franchise.Directory, error) {
	if path == "" {
		return franchise.Default(), nil
	}
	directory, err := franchise.LoadFile(path)
	if err != nil {
		return nil, crerr.Wrap(err, "load franchise directory")
	}
	return directory, nil
}

func (a *App) newResolver(ctx context.Context, cfg config.Config, directory *franchise.Directory, logger *logging.Logger) (*cacherepo.FranchiseResolver, error) {
	matcher := franchise.NewResolver(directory, cfg.MatchThreshold)
	if !cfg.CacheEnabled {
		logger.Info("resolver cache disabled", "reason", "CACHE_ENABLED=false")
		return cacherepo.NewFranchiseResolver(matcher, nil), nil
	}

	store, err := a.newCacheStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("resolver cache enabled", "backend", cfg.CacheBackend, "ttl", cfg.CacheTTL.String())

	return cacherepo.NewFranchiseResolver(matcher, basecache.NewLoader(store, resolverCachePrefix)), nil
}

func (a *App) newCacheStore(ctx context.Context, cfg config.Config) (basecache.Store, error) {
	if cfg.CacheBackend != config.CacheBackendRedis {
		return basecache.NewMemoryStore(cfg.CacheTTL), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := basecache.NewRedisStore(client, cfg.CacheTTL)
	if err := store.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, crerr.WithHint(err, "check REDIS_ADDR or set CACHE_BACKEND=memory")
	}
	a.closers = append(a.closers, store.Close)
	return basecache.NewGuardedStore(store, resilience.NewCircuitBreaker(resilience.DefaultBreakerConfig())), nil
}
