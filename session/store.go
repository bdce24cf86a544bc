package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStoreUnavailable is returned when the backing Redis cannot be reached.
var ErrStoreUnavailable = errors.New("session store unavailable")

const defaultStorageKey = "record"

// Store persists a single session record as one JSON document under one
// fixed key. It owns the key layout; callers never see Redis details.
//
// Store instances are intended to be configured during initialization and
// then treated as immutable.
type Store struct {
	redis *redis.Client
	key   string
	ttl   time.Duration
}

// NewStore creates a store keyed at "<prefix>:<storageKey>". An empty
// storageKey falls back to "record"; ttl of zero persists the record until
// it is cleared.
func NewStore(client *redis.Client, prefix, storageKey string, ttl time.Duration) *Store {
	if storageKey == "" {
		storageKey = defaultStorageKey
	}
	if prefix != "" {
		storageKey = prefix + ":" + storageKey
	}
	return &Store{
		redis: client,
		key:   storageKey,
		ttl:   ttl,
	}
}

// Load reads the persisted record. A missing key means no session and
// returns (nil, nil). A stored value that fails to deserialize is treated
// the same way and logged: a corrupt session must never crash startup.
// Only transport failure is an error.
func (s *Store) Load(ctx context.Context) (*Record, error) {
	data, err := s.redis.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Print("sessionnav: discarding corrupt stored session record")
		return nil, nil
	}
	// The login key is the populated-record invariant; a document that
	// decodes but lacks it is as unusable as one that does not decode.
	if rec.LoginKey == "" {
		log.Print("sessionnav: discarding stored session record without identity")
		return nil, nil
	}

	return &rec, nil
}

// Save serializes the record and writes it under the fixed key.
func (s *Store) Save(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Clear removes the persisted record. Deleting an absent key is a success.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Ping measures round-trip time to the backing Redis.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return time.Since(start), nil
}
