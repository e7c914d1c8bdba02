// Package kvstate holds the persisted state slots backing the session and
// cart stores: independent key→value entries, read once at startup and
// replaced wholesale on every mutation.
package kvstate

import (
	"context"
	"fmt"
	"sync"

	"github.com/rmedina/stockroom-backend/pkg/config"
	"github.com/rmedina/stockroom-backend/pkg/redis"
)

// Store is the slot surface. Writes replace the whole value; a missing key
// is reported through the boolean, never as an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Open boots the slot store selected by configuration.
func Open(ctx context.Context, cfg config.StateConfig, redisCfg config.RedisConfig) (Store, error) {
	switch cfg.Driver {
	case config.StateDriverMemory:
		return NewMemory(), nil
	case config.StateDriverSQLite, config.StateDriverPostgres:
		return OpenGorm(ctx, cfg)
	case config.StateDriverRedis:
		client, err := redis.New(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		return NewRedis(client), nil
	default:
		return nil, fmt.Errorf("unknown state driver %q", cfg.Driver)
	}
}

// Memory is the in-process slot store used by tests and throwaway runs.
type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, true, nil
}

func (m *Memory) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]byte, len(value))
	copy(copied, value)
	m.slots[key] = copied
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

func (m *Memory) Close() error {
	return nil
}
