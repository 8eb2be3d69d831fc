package database

import (
	"context"
	"fmt"
	"time"

	"appstore-notifications/internal/config"
	"appstore-notifications/internal/models"
	"appstore-notifications/pkg/logging"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Open connects to the database configured by cfg, runs migrations and
// returns a Store wrapping the connection. A postgres DSN in DATABASE_URL
// takes precedence; otherwise the sqlite file at DATABASE_PATH is used.
func Open(cfg *config.Config) (*Store, error) {
	var db *gorm.DB
	var err error

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	}

	if dsn := cfg.DatabaseURL; dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	} else {
		logging.Infof("DATABASE_URL not set, using SQLite at %s", cfg.DatabasePath)
		db, err = gorm.Open(sqlite.Open(cfg.DatabasePath), gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	store := &Store{db: db}

	if cfg.RedisURL != "" {
		cache, err := openRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		store.cache = cache
	}

	logging.Infof("Database connected successfully")
	return store, nil
}

// openRedis connects to the optional Redis cache
func openRedis(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.Infof("Redis connected successfully")
	return client, nil
}

// autoMigrate performs database migration
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Notification{},
		&models.UserSubscription{},
		&models.WebhookLog{},
	)
}

// Close closes the database and cache connections
func (s *Store) Close() error {
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logging.Errorf("Failed to close database: %v", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			logging.Errorf("Failed to close Redis: %v", err)
		}
	}

	return nil
}

// Ping checks that the database (and, when configured, the cache) is
// reachable. Used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}

	if s.cache != nil {
		if _, err := s.cache.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("redis unreachable: %w", err)
		}
	}

	return nil
}
