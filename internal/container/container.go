package container

import (
	"context"
	"errors"
	"fmt"

	"animeapi/provider/internal/client"
	"animeapi/provider/internal/config"
	"animeapi/provider/internal/provider"
	"animeapi/provider/internal/proxy"
	"animeapi/provider/internal/repository"
	"animeapi/provider/internal/service"
	"animeapi/provider/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config   *config.Config
	Client   client.AnimeAPIClient
	Provider *provider.AnimeAPI

	// Set by ConnectStorage.
	Repository   repository.AnimeRepository
	StateManager state.StateManager
	Service      *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New builds the adapter. Storage is only connected on demand.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	probeURL := client.ProbeURL(cfg.AnimeAPI.URL[0], cfg.AnimeAPI.EdgeHost)
	proxySupplier, err := proxy.NewProxySupplier(ctx, cfg.AnimeAPI.Proxies, probeURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize proxy supplier: %w", err)
	}

	apiClient, err := client.NewAnimeAPIClient(cfg.AnimeAPI, proxySupplier)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AnimeApi client: %w", err)
	}
	container.Client = apiClient
	container.Provider = provider.NewAnimeAPI(cfg.AnimeAPI, apiClient)

	return container, nil
}

// ConnectStorage opens Postgres and Redis and wires the sync service.
func (c *Container) ConnectStorage(ctx context.Context) error {
	db, err := pgxpool.New(ctx, c.Config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to create database pool: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	c.db = db
	log.Info("✅ Connected to Postgres successfully")

	animeRepo := repository.NewAnimeRepository(db)
	if err := animeRepo.EnsureSchema(ctx); err != nil {
		return err
	}
	c.Repository = animeRepo

	rdb := redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr(),
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.Database,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	c.redis = rdb
	log.Info("✅ Connected to Redis successfully")

	c.StateManager = state.NewRedisStateManager(rdb)
	c.Service = service.NewService(
		c.Provider,
		c.Repository,
		c.StateManager,
		c.Config.Sync.Workers,
		c.Config.Sync.MaxPages,
	)

	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Debug("Shutting down container...")

	var errs []error
	if c.Client != nil {
		errs = append(errs, c.Client.Close())
	}
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		errs = append(errs, c.redis.Close())
	}

	return errors.Join(errs...)
}
