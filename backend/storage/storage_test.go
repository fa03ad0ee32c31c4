package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"pluain/backend/config"
	"pluain/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func backends(t *testing.T) map[string]KeyValue {
	t.Helper()

	badgerKV, err := OpenBadgerKV(BadgerConfig{InMemory: true})
	require.NoError(t, err)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	gormKV, err := NewGormKV(db)
	require.NoError(t, err)

	kvs := map[string]KeyValue{
		"memory": NewMemory(),
		"badger": badgerKV,
		"gorm":   gormKV,
	}

	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		redisKV, err := NewRedisKV(context.Background(), RedisConfig{
			Addr:   addr,
			Prefix: fmt.Sprintf("pluain-test-%d:", time.Now().UnixNano()),
		})
		require.NoError(t, err)
		kvs["redis"] = redisKV
	}

	t.Cleanup(func() {
		for _, kv := range kvs {
			_ = kv.Close()
		}
	})
	return kvs
}

func TestKeyValueContract(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := kv.Get(ctx, "pluainData")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, kv.Set(ctx, "pluainData", `{"notes":[]}`))
			v, found, err := kv.Get(ctx, "pluainData")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `{"notes":[]}`, v)

			// overwrite replaces the whole value
			require.NoError(t, kv.Set(ctx, "pluainData", `{}`))
			v, _, err = kv.Get(ctx, "pluainData")
			require.NoError(t, err)
			assert.Equal(t, `{}`, v)

			require.NoError(t, kv.Delete(ctx, "pluainData"))
			_, found, err = kv.Get(ctx, "pluainData")
			require.NoError(t, err)
			assert.False(t, found)

			assert.NoError(t, kv.Delete(ctx, "never-written"))
		})
	}
}

func TestKeysAreIndependent(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set(ctx, "pluainData", "a"))
			require.NoError(t, kv.Set(ctx, "fullstackProgress", "b"))
			require.NoError(t, kv.Delete(ctx, "pluainData"))

			v, found, err := kv.Get(ctx, "fullstackProgress")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "b", v)
		})
	}
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	kv, err := OpenBadgerKV(BadgerConfig{Path: dir, GCInterval: time.Hour})
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "pluainUser", `{"name":"ana"}`))
	require.NoError(t, kv.Close())

	kv, err = OpenBadgerKV(BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer kv.Close()

	v, found, err := kv.Get(ctx, "pluainUser")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"name":"ana"}`, v)
}

func TestBadgerRequiresPath(t *testing.T) {
	_, err := OpenBadgerKV(BadgerConfig{})
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	logger := utils.NewNopLogger()

	kv, err := Open(ctx, &config.Config{StorageDriver: "memory"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, kv)

	kv, err = Open(ctx, &config.Config{StorageDriver: "sqlite", SQLitePath: "file:open_test?mode=memory&cache=shared"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &GormKV{}, kv)
	assert.NoError(t, kv.Close())

	kv, err = Open(ctx, &config.Config{StorageDriver: "badger", BadgerPath: t.TempDir()}, logger)
	require.NoError(t, err)
	assert.IsType(t, &BadgerKV{}, kv)
	assert.NoError(t, kv.Close())

	_, err = Open(ctx, &config.Config{StorageDriver: "floppy"}, logger)
	assert.True(t, errors.Is(err, ErrUnknownDriver))
}
