// Package store owns the persisted JSON documents: the learning progress
// document, the gamified roadmap progress and the mocked login session.
// Every mutation rewrites the whole document under its fixed key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"pluain/backend/storage"
)

// ErrCorruptDocument means a stored value could not be decoded. The
// affected store starts over from defaults.
var ErrCorruptDocument = errors.New("stored document is not valid JSON")

const persistTimeout = 5 * time.Second

func readJSON(kv storage.KeyValue, key string, v interface{}) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	raw, found, err := kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, key, err)
	}
	return true, nil
}

func writeJSON(kv storage.KeyValue, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func removeKey(kv storage.KeyValue, key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// idSource hands out millisecond-timestamp ids that never repeat within
// the process, even when two are requested in the same millisecond.
type idSource struct {
	last int64
}

// next returns a fresh id. taken, if non-nil, reports ids already in use
// by persisted records.
func (g *idSource) next(now time.Time, taken func(string) bool) string {
	n := now.UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	for taken != nil && taken(strconv.FormatInt(n, 10)) {
		n++
	}
	g.last = n
	return strconv.FormatInt(n, 10)
}
