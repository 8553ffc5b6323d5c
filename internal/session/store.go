// Package session holds the per-conversation safety state behind a
// narrow get-or-create / optimistic-update interface, with swappable
// backing drivers: in-memory for single-instance and tests, Redis for
// multi-instance deployments.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/apaise/internal/safety"
)

var (
	// ErrNotFound indicates the session does not exist (expired or deleted).
	ErrNotFound = errors.New("session not found")

	// ErrVersionConflict indicates a concurrent update won the race;
	// the caller should re-read and retry its read-modify-write.
	ErrVersionConflict = errors.New("session version conflict")

	// ErrInvalidConfig indicates a driver was created without its
	// required options.
	ErrInvalidConfig = errors.New("invalid store configuration")

	// ErrInvalidStoreType indicates an unknown driver name.
	ErrInvalidStoreType = errors.New("invalid store type")
)

// Session is the per-key safety-gate state. Conversation content is never
// stored here; only the protocol position survives between turns.
type Session struct {
	Key       string        `json:"key"`
	State     safety.State  `json:"state"`
	Reason    safety.Reason `json:"reason,omitempty"`
	Version   int64         `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Store is the session-state backing store. The mutation visible to the
// very next turn of the same key is guaranteed through the Version field:
// Update fails with ErrVersionConflict when the stored version moved.
type Store interface {
	// GetOrCreate returns the session for key, lazily creating it in
	// StateNormal on first use.
	GetOrCreate(ctx context.Context, key string) (*Session, error)

	// Update persists the session with optimistic locking: the stored
	// Version must match, then it is incremented along with UpdatedAt.
	Update(ctx context.Context, s *Session) error

	// Delete removes the session if present.
	Delete(ctx context.Context, key string) error

	// Close releases driver resources.
	Close() error
}

// StoreType selects a backing driver.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"
)

// NewStore creates a Store for the given driver type.
// Redis requires WithRedisClient.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	switch storeType {
	case StoreTypeMemory:
		return newMemoryStore(cfg), nil
	case StoreTypeRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return &redisStore{client: cfg.redisClient, ttl: cfg.ttl}, nil
	default:
		return nil, ErrInvalidStoreType
	}
}
