// Package store is the persistence gateway: it opens the relational database,
// hands out one transaction per request, and exposes the named queries the
// catalog runs against it.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ashendes/catalog-service/internal/config"
	"github.com/ashendes/catalog-service/internal/models"
	"github.com/ashendes/catalog-service/internal/patterns"
	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store owns the connection pool
type Store struct {
	db       *gorm.DB
	sessions *patterns.Bulkhead
}

// Open connects to the database named by cfg.URL
func Open(cfg config.DatabaseConfig) (*Store, error) {
	dialector, inMemory, err := dialectorFor(cfg.URL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log.StandardLogger(), logger.Config{
			SlowThreshold:             cfg.SlowQuery,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if inMemory {
		// every pooled connection would otherwise get its own empty database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxSessions)
		sqlDB.SetMaxIdleConns(cfg.MaxSessions)
	}

	wait := cfg.AcquireTimeout
	if wait <= 0 {
		wait = patterns.SessionWaitTimeout
	}

	return &Store{
		db:       db,
		sessions: patterns.NewBulkhead(cfg.MaxSessions, wait, "database"),
	}, nil
}

// dialectorFor picks the gorm driver from the URL scheme
func dialectorFor(url string) (gorm.Dialector, bool, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), false, nil
	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		return sqlite.Open(sqliteDSN(path)), path == ":memory:", nil
	case strings.HasPrefix(url, "file:"):
		return sqlite.Open(sqliteDSN(url)), strings.Contains(url, ":memory:"), nil
	default:
		return nil, false, fmt.Errorf("unsupported database url %q", url)
	}
}

// sqliteDSN turns on foreign key enforcement, which sqlite leaves off by default
func sqliteDSN(path string) string {
	if strings.Contains(path, "foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

// Migrate creates or updates the schema for every entity
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	log.Info("Database schema migrated")
	return nil
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ActiveSessions reports how many request sessions are open
func (s *Store) ActiveSessions() int {
	return s.sessions.InUse()
}
