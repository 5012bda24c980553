package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"readerpeak-backend/internal/config"
	infraCache "readerpeak-backend/internal/infrastructure/cache"
	"readerpeak-backend/internal/infrastructure/database"
	"readerpeak-backend/internal/infrastructure/storage"
	"readerpeak-backend/pkg/cache"
	"readerpeak-backend/pkg/jwt"
	"readerpeak-backend/pkg/logger"

	authordomain "readerpeak-backend/internal/domains/author"
	authorHandler "readerpeak-backend/internal/domains/author/handler"
	authorRepo "readerpeak-backend/internal/domains/author/repository"
	authorService "readerpeak-backend/internal/domains/author/service"
	bookHandler "readerpeak-backend/internal/domains/book/handler"
	bookRepo "readerpeak-backend/internal/domains/book/repository"
	bookService "readerpeak-backend/internal/domains/book/service"
	catalogHandler "readerpeak-backend/internal/domains/catalog/handler"
	catalogService "readerpeak-backend/internal/domains/catalog/service"
	"readerpeak-backend/internal/domains/identity"
	identityHandler "readerpeak-backend/internal/domains/identity/handler"
	identityRepo "readerpeak-backend/internal/domains/identity/repository"
	identityService "readerpeak-backend/internal/domains/identity/service"
	searchHandler "readerpeak-backend/internal/domains/search/handler"
	searchService "readerpeak-backend/internal/domains/search/service"
	settingsdomain "readerpeak-backend/internal/domains/settings"
	settingsHandler "readerpeak-backend/internal/domains/settings/handler"
	settingsRepo "readerpeak-backend/internal/domains/settings/repository"
	settingsService "readerpeak-backend/internal/domains/settings/service"
)

// Container is the root of the dependency graph. Everything in it is
// a singleton built once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	UserRepo     identity.Repository
	TokenStore   identity.TokenStore
	AuthorRepo   authordomain.Repository
	BookRepo     bookRepo.RepositoryInterface
	SettingsRepo settingsdomain.Repository

	IdentityService identity.Service
	AuthorService   authorService.Service
	BookService     bookService.Service
	CatalogService  catalogService.Service
	SearchService   searchService.Service
	SettingsService settingsService.Service

	IdentityHandler *identityHandler.IdentityHandler
	AuthorHandler   *authorHandler.AuthorHandler
	BookHandler     *bookHandler.BookHandler
	CatalogHandler  *catalogHandler.CatalogHandler
	SearchHandler   *searchHandler.SearchHandler
	SettingsHandler *settingsHandler.SettingsHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db := database.New(cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	c.Storage = minioStorage

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.SessionExpiry)

	// Repositories
	c.UserRepo = identityRepo.NewPostgresRepository(db.Pool)
	c.TokenStore = identity.NewCacheTokenStore(c.Cache)
	c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool)
	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)
	c.SettingsRepo = settingsRepo.NewPostgresRepository(db.Pool)

	// Services
	c.IdentityService = identityService.NewIdentityService(c.UserRepo, c.TokenStore, c.JWTManager, c.Cache)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.BookRepo, c.Storage)
	c.BookService = bookService.NewBookService(c.BookRepo, c.Storage)
	c.CatalogService = catalogService.NewCatalogService(c.BookRepo, c.AuthorRepo, c.Cache)
	c.SearchService = searchService.NewSearchService(c.BookRepo)
	c.SettingsService = settingsService.NewSettingsService(c.SettingsRepo)

	// Handlers
	c.IdentityHandler = identityHandler.NewIdentityHandler(c.IdentityService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
	c.SearchHandler = searchHandler.NewSearchHandler(c.SearchService)
	c.SettingsHandler = settingsHandler.NewSettingsHandler(c.SettingsService)

	log.Info().
		Str("environment", cfg.App.Environment).
		Msg("container initialized")

	return c, nil
}

// Cleanup releases infrastructure connections. Call on shutdown.
func (c *Container) Cleanup() {
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

// HealthCheck pings the stateful dependencies.
func (c *Container) HealthCheck(ctx context.Context) error {
	if err := c.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Cache.Ping(ctx); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}
