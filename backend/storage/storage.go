// Package storage provides the key/value backends that hold the persisted
// JSON documents. The contract mirrors browser local storage: one string
// value per string key, read and written wholesale.
package storage

import (
	"context"
	"errors"
	"fmt"

	"pluain/backend/config"
	"pluain/backend/utils"
)

// ErrUnknownDriver is returned by Open for an unsupported STORAGE_DRIVER.
var ErrUnknownDriver = errors.New("unknown storage driver")

// KeyValue is a string-keyed document store.
type KeyValue interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written or was deleted.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the backend selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config, logger *utils.Logger) (KeyValue, error) {
	switch cfg.StorageDriver {
	case "memory":
		return NewMemory(), nil
	case "sqlite", "postgres":
		db, err := utils.InitDB(cfg)
		if err != nil {
			return nil, err
		}
		return NewGormKV(db)
	case "badger":
		return OpenBadgerKV(BadgerConfig{
			Path:       cfg.BadgerPath,
			SyncWrites: true,
			GCInterval: defaultGCInterval,
			Logger:     logger,
		})
	case "redis":
		return NewRedisKV(ctx, RedisConfig{Addr: cfg.RedisAddr, Prefix: cfg.RedisPrefix})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StorageDriver)
	}
}
