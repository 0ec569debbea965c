package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const sessionPrefix = "session:" // String: session:{id}:selection -> last chosen class

// SelectionStore keeps the class each session last picked.
type SelectionStore interface {
	GetSelection(ctx context.Context, sessionID string) (string, error)
	SetSelection(ctx context.Context, sessionID, selection string) error
}

// Helper to generate the selection key of a session
func getSelectionKey(sessionID string) string {
	return sessionPrefix + sessionID + ":selection"
}

// RedisService stores session selections in Redis
type RedisService struct {
	Client *redis.Client
	TTL    time.Duration
	Log    *zap.Logger
}

// NewRedisService creates a new RedisService instance
func NewRedisService(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisService {
	return &RedisService{
		Client: client,
		TTL:    ttl,
		Log:    logger,
	}
}

// GetSelection returns "" when the session has not chosen anything yet.
func (s *RedisService) GetSelection(ctx context.Context, sessionID string) (string, error) {
	val, err := s.Client.Get(ctx, getSelectionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		s.Log.Warn("failed to read selection", zap.String("session", sessionID), zap.Error(err))
		return "", fmt.Errorf("failed to get selection from Redis: %w", err)
	}
	return val, nil
}

// SetSelection stores the selection and refreshes the session TTL.
func (s *RedisService) SetSelection(ctx context.Context, sessionID, selection string) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	if err := s.Client.Set(ctx, getSelectionKey(sessionID), selection, s.TTL).Err(); err != nil {
		s.Log.Warn("failed to store selection", zap.String("session", sessionID), zap.Error(err))
		return fmt.Errorf("failed to set selection in Redis: %w", err)
	}
	return nil
}

// MemoryStore is a process-local SelectionStore. Entries expire after TTL
// like their Redis counterparts; expired ones are swept on write.
type MemoryStore struct {
	mu         sync.Mutex
	selections map[string]memoryEntry
	ttl        time.Duration
	now        func() time.Time
}

type memoryEntry struct {
	value   string
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		selections: make(map[string]memoryEntry),
		ttl:        ttl,
		now:        time.Now,
	}
}

func (m *MemoryStore) GetSelection(_ context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.selections[sessionID]
	if !ok {
		return "", nil
	}
	if !m.now().Before(e.expires) {
		delete(m.selections, sessionID)
		return "", nil
	}
	return e.value, nil
}

func (m *MemoryStore) SetSelection(_ context.Context, sessionID, selection string) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, e := range m.selections {
		if !now.Before(e.expires) {
			delete(m.selections, id)
		}
	}
	m.selections[sessionID] = memoryEntry{value: selection, expires: now.Add(m.ttl)}
	return nil
}

// Len reports how many sessions are held, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.selections)
}

// --- Utility ---

// InitializeRedisClient creates a Redis client and pings it
func InitializeRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}
