// Package securestore provides namespaced, codec-protected key-value
// persistence over pluggable backends (memory, file, redis, postgres).
package securestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vietddude/walletd/internal/core/fault"
	"github.com/vietddude/walletd/internal/metrics"
)

// Store persists JSON-serialized values under a fixed namespace prefix,
// running every value through a Codec on the way in and out.
type Store struct {
	namespace string
	codec     Codec
	backend   Backend
}

// New creates a store. The namespace scopes every key this store touches;
// Clear never reaches outside it.
func New(namespace string, codec Codec, backend Backend) *Store {
	return &Store{
		namespace: namespace,
		codec:     codec,
		backend:   backend,
	}
}

func (s *Store) fullKey(key string) string {
	return fmt.Sprintf("%s_%s", s.namespace, key)
}

// Save serializes v, encodes it and writes it under the namespaced key.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	if err := s.save(ctx, key, v); err != nil {
		metrics.StoreOpsTotal.WithLabelValues("save", "error").Inc()
		return err
	}
	metrics.StoreOpsTotal.WithLabelValues("save", "ok").Inc()
	return nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	plain, err := json.Marshal(v)
	if err != nil {
		return fault.Wrap(fault.CodeStorage, "failed to serialize data", err)
	}

	encoded, err := s.codec.Encode(plain)
	if err != nil {
		return asStorageFault("failed to encode data", err)
	}

	if err := s.backend.Put(ctx, s.fullKey(key), encoded); err != nil {
		return fault.Wrap(fault.CodeStorage, "failed to persist data", err)
	}
	return nil
}

// Load reads and deserializes the value under key into out. It returns
// ok=false when the key is absent (not an error). A corrupted entry is a
// storage fault and propagates so the caller can decide to reset.
func (s *Store) Load(ctx context.Context, key string, out any) (bool, error) {
	ok, err := s.load(ctx, key, out)
	if err != nil {
		metrics.StoreOpsTotal.WithLabelValues("load", "error").Inc()
		return false, err
	}
	metrics.StoreOpsTotal.WithLabelValues("load", "ok").Inc()
	return ok, nil
}

func (s *Store) load(ctx context.Context, key string, out any) (bool, error) {
	stored, ok, err := s.backend.Get(ctx, s.fullKey(key))
	if err != nil {
		return false, fault.Wrap(fault.CodeStorage, "failed to read data", err)
	}
	if !ok {
		return false, nil
	}

	plain, err := s.codec.Decode(stored)
	if err != nil {
		return false, asStorageFault("failed to decode stored entry", err)
	}

	if err := json.Unmarshal(plain, out); err != nil {
		return false, fault.Wrap(fault.CodeStorage, "stored entry is corrupted", err)
	}
	return true, nil
}

// Remove deletes the value under key.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, s.fullKey(key)); err != nil {
		return fault.Wrap(fault.CodeStorage, "failed to remove data", err)
	}
	return nil
}

// Clear removes every key under this store's namespace.
func (s *Store) Clear(ctx context.Context) error {
	keys, err := s.backend.Keys(ctx, s.namespace+"_")
	if err != nil {
		return fault.Wrap(fault.CodeStorage, "failed to list stored keys", err)
	}
	for _, k := range keys {
		if err := s.backend.Delete(ctx, k); err != nil {
			return fault.Wrap(fault.CodeStorage, "failed to remove data", err)
		}
	}
	return nil
}

// Exists probes for the key without deserializing the value.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.backend.Get(ctx, s.fullKey(key))
	if err != nil {
		return false, fault.Wrap(fault.CodeStorage, "failed to read data", err)
	}
	return ok, nil
}

// asStorageFault keeps typed codec faults (e.g. encryption failures) intact
// and wraps everything else as a storage fault.
func asStorageFault(msg string, err error) error {
	var typed *fault.Error
	if errors.As(err, &typed) {
		return typed
	}
	return fault.Wrap(fault.CodeStorage, msg, err)
}
