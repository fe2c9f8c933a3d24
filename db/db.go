package db

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/uplink-social/uplink/config"
	"github.com/uplink-social/uplink/db/models"

	"github.com/go-gorm/caches/v4"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	gormMysql "gorm.io/driver/mysql"
)

// NewDatabase opens the configured database, installs the query cache
// plugin when one is configured, and migrates all registered models.
func NewDatabase(cm config.Manager, logger *zap.Logger) (*gorm.DB, error) {
	cfg := cm.Config().Core.DB

	var db *gorm.DB
	var err error

	gormCfg := &gorm.Config{
		Logger:         NewLogger(logger),
		TranslateError: true,
	}

	switch cfg.Type {
	case "", "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.File), gormCfg)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
			cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.Charset)
		db, err = gorm.Open(gormMysql.Open(dsn), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	if err != nil {
		return nil, err
	}

	if cfg.Cache != nil {
		cacher, err := newCacher(cfg.Cache)
		if err != nil {
			return nil, err
		}
		if cacher != nil {
			cachePlugin := &caches.Caches{Conf: &caches.Config{Cacher: cacher}}
			if err = db.Use(cachePlugin); err != nil {
				return nil, err
			}
		}
	}

	if err = db.AutoMigrate(models.GetModels()...); err != nil {
		return nil, err
	}

	return db, nil
}

func newCacher(cfg *config.CacheConfig) (caches.Cacher, error) {
	switch cfg.Mode {
	case "memory":
		return NewMemoryCacher(), nil
	case "redis":
		redisCfg, ok := cfg.Options.(*config.RedisConfig)
		if !ok {
			return nil, fmt.Errorf("invalid redis cache options")
		}
		return NewRedisCacher(redisCfg), nil
	case "", "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported cache mode: %s", cfg.Mode)
	}
}

const maxRetries = 10
const baseDelay = 10 * time.Millisecond
const maxDelay = 1 * time.Second

// RetryOnLock retries db operations that fail due to lock contention,
// backing off exponentially with jitter between attempts.
func RetryOnLock(db *gorm.DB, operation func(db *gorm.DB) *gorm.DB) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		tx := operation(db)
		err = tx.Error
		if err == nil {
			return nil
		}

		if !isLockError(err) {
			return err
		}

		delay := baseDelay * time.Duration(1<<uint(i))
		if delay > maxDelay {
			delay = maxDelay
		}
		jitter := time.Duration(rand.Int63n(int64(delay) / 2))

		time.Sleep(delay + jitter)
	}

	return err
}

// RetryableTransaction runs operation inside a transaction, retrying the
// whole transaction when it fails on lock contention.
func RetryableTransaction(ctx context.Context, db *gorm.DB, operation func(tx *gorm.DB) *gorm.DB) error {
	return RetryOnLock(db, func(db *gorm.DB) *gorm.DB {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return operation(tx).Error
		})

		return &gorm.DB{Error: err}
	})
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}

	return strings.Contains(err.Error(), "database is locked") ||
		strings.Contains(err.Error(), "database table is locked") ||
		strings.Contains(err.Error(), "Deadlock found")
}

// IsDuplicateKeyError reports whether err is a unique constraint
// violation from any of the supported drivers.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	if err == gorm.ErrDuplicatedKey {
		return true
	}

	if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
		return true
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
