// Package cache is an encrypted key/value cache on top of a storage
// Repository. Each key holds one JSON-serialisable value sealed with a
// static passphrase.
//
// The passphrase ships with the client, so sealing only keeps the stored
// identity unreadable to someone casually opening the database file. It
// does not protect against anyone with access to the binary or its config.
//
// Failures never reach the caller: Set and Remove log and return, Get falls
// back to the supplied default.
package cache

import (
	"context"
	"encoding/base64"
	"errors"
	"reflect"

	"github.com/dmitrijs2005/trainingportal/internal/client/storage"
	"github.com/dmitrijs2005/trainingportal/internal/cryptox"
	"github.com/dmitrijs2005/trainingportal/internal/logging"
)

// ErrAbsentValue is logged when Set is asked to store a nil value.
var ErrAbsentValue = errors.New("cannot store absent value")

type Cache struct {
	store      storage.Repository
	passphrase []byte
	logger     logging.Logger
}

func New(store storage.Repository, passphrase string, logger logging.Logger) *Cache {
	return &Cache{store: store, passphrase: []byte(passphrase), logger: logger}
}

// Set seals value and writes it under key.
func Set[T any](ctx context.Context, c *Cache, key string, value T) {
	if isAbsent(value) {
		c.logger.Warn(ctx, "cache write skipped", "key", key, "error", ErrAbsentValue)
		return
	}

	blob, err := cryptox.SealWithPassphrase(value, c.passphrase)
	if err != nil {
		c.logger.Error(ctx, "cache encrypt failed", "key", key, "error", err)
		return
	}

	encoded := base64.StdEncoding.EncodeToString(blob)
	if err := c.store.Set(ctx, key, []byte(encoded)); err != nil {
		c.logger.Error(ctx, "cache write failed", "key", key, "error", err)
	}
}

// Get returns the value stored under key, or def when the key is absent or
// its content cannot be decoded, decrypted or deserialised.
func Get[T any](ctx context.Context, c *Cache, key string, def T) T {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Error(ctx, "cache read failed", "key", key, "error", err)
		return def
	}
	if len(raw) == 0 {
		return def
	}

	blob, err := base64.StdEncoding.DecodeString(string(raw))
	if err != nil {
		c.logger.Warn(ctx, "cache entry is not valid base64", "key", key, "error", err)
		return def
	}

	var value T
	if err := cryptox.OpenWithPassphrase(blob, c.passphrase, &value); err != nil {
		c.logger.Warn(ctx, "cache entry could not be decrypted", "key", key, "error", err)
		return def
	}
	if isAbsent(value) {
		return def
	}

	return value
}

// Remove deletes key. Removing an absent key is a no-op.
func (c *Cache) Remove(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Error(ctx, "cache remove failed", "key", key, "error", err)
	}
}

// isAbsent treats nil pointers, maps, slices and interfaces as "no value".
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
