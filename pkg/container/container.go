package container

import (
	"context"
	"fmt"
	"time"

	"bookcatalog-backend/internal/config"
	infraCache "bookcatalog-backend/internal/infrastructure/cache"
	"bookcatalog-backend/internal/infrastructure/database"
	"bookcatalog-backend/internal/infrastructure/queue"
	"bookcatalog-backend/internal/infrastructure/storage"
	"bookcatalog-backend/pkg/cache"
	"bookcatalog-backend/pkg/jwt"
	"bookcatalog-backend/pkg/logger"

	"bookcatalog-backend/internal/domains/author"
	authorHandler "bookcatalog-backend/internal/domains/author/handler"
	authorRepo "bookcatalog-backend/internal/domains/author/repository"
	authorService "bookcatalog-backend/internal/domains/author/service"

	"bookcatalog-backend/internal/domains/category"
	categoryHandler "bookcatalog-backend/internal/domains/category/handler"
	categoryRepo "bookcatalog-backend/internal/domains/category/repository"
	categoryService "bookcatalog-backend/internal/domains/category/service"

	"bookcatalog-backend/internal/domains/book"
	bookHandler "bookcatalog-backend/internal/domains/book/handler"
	bookRepo "bookcatalog-backend/internal/domains/book/repository"
	bookService "bookcatalog-backend/internal/domains/book/service"

	reviewHandler "bookcatalog-backend/internal/domains/review/handler"
	reviewRepo "bookcatalog-backend/internal/domains/review/repository"
	reviewService "bookcatalog-backend/internal/domains/review/service"

	"bookcatalog-backend/internal/domains/user"
	userHandler "bookcatalog-backend/internal/domains/user/handler"
	userRepo "bookcatalog-backend/internal/domains/user/repository"
	userService "bookcatalog-backend/internal/domains/user/service"
)

// Container holds every application dependency. It is the root of the
// dependency graph, built once at startup in dependency order.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Queue      *queue.Client
	Storage    *storage.MinIOStorage

	AuthorService   author.Service
	CategoryService category.Service
	BookService     book.ServiceInterface
	ReviewService   reviewService.Service
	UserService     user.Service

	AuthorHandler   *authorHandler.AuthorHandler
	CategoryHandler *categoryHandler.CategoryHandler
	BookHandler     *bookHandler.BookHandler
	ReviewHandler   *reviewHandler.ReviewHandler
	UserHandler     *userHandler.UserHandler

	redisCache *infraCache.RedisCache
}

// NewContainer builds the dependency graph: config, infrastructure,
// repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("config loaded", map[string]interface{}{"environment": cfg.App.Environment})

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	c.DB = db

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.redisCache = redisCache
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage

	pool := db.Pool

	authors := authorRepo.NewPostgresRepository(pool)
	categories := categoryRepo.NewPostgresRepository(pool)
	books := bookRepo.NewPostgresRepository(pool)
	reviews := reviewRepo.NewPostgresRepository(pool)
	users := userRepo.NewPostgresRepository(pool)

	c.AuthorService = authorService.NewAuthorService(authors)
	c.CategoryService = categoryService.NewCategoryService(categories)
	c.BookService = bookService.NewBookService(books, c.Cache, minioStorage)
	c.ReviewService = reviewService.NewReviewService(reviews, c.Cache, c.Queue, cfg.Review.ModerationEmail)
	c.UserService = userService.NewUserService(users, c.JWTManager, minioStorage)

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)

	logger.Info("container initialized", nil)
	return c, nil
}

// Cleanup closes infrastructure connections in reverse order.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Error("failed to close queue client", err)
		}
	}
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			logger.Error("failed to close redis connection", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
