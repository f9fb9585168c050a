package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

const (
	pendingKeyPrefix = "generation:pending:"
	resultKeyPrefix  = "generation:result:"
)

// RedisResultStore keeps pending markers and delivered results in Redis so
// correlation state survives restarts and is shared across instances.
type RedisResultStore struct {
	client *redis.Client
}

func NewRedisResultStore(client *redis.Client) *RedisResultStore {
	return &RedisResultStore{client: client}
}

func (s *RedisResultStore) MarkPending(ctx context.Context, correlationID string) error {
	return s.client.Set(ctx, pendingKeyPrefix+correlationID, "1", resultTTL).Err()
}

func (s *RedisResultStore) IsPending(ctx context.Context, correlationID string) (bool, error) {
	n, err := s.client.Exists(ctx, pendingKeyPrefix+correlationID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SaveResult writes with SETNX so only the first delivery for a correlation
// id is kept.
func (s *RedisResultStore) SaveResult(ctx context.Context, result *GenerationResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal generation result: %w", err)
	}
	return s.client.SetNX(ctx, resultKeyPrefix+result.CorrelationID, data, resultTTL).Err()
}

func (s *RedisResultStore) GetResult(ctx context.Context, correlationID string) (*GenerationResult, bool, error) {
	data, err := s.client.Get(ctx, resultKeyPrefix+correlationID).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var result GenerationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal generation result: %w", err)
	}
	return &result, true, nil
}

// MemoryResultStore is an in-process ResultStore used in tests and when no
// Redis instance is available.
type MemoryResultStore struct {
	mu      sync.Mutex
	pending map[string]bool
	results map[string]*GenerationResult
}

func NewMemoryResultStore() *MemoryResultStore {
	return &MemoryResultStore{
		pending: make(map[string]bool),
		results: make(map[string]*GenerationResult),
	}
}

func (s *MemoryResultStore) MarkPending(ctx context.Context, correlationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[correlationID] = true
	return nil
}

func (s *MemoryResultStore) IsPending(ctx context.Context, correlationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending[correlationID], nil
}

func (s *MemoryResultStore) SaveResult(ctx context.Context, result *GenerationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.results[result.CorrelationID]; exists {
		return nil
	}
	s.results[result.CorrelationID] = result
	return nil
}

func (s *MemoryResultStore) GetResult(ctx context.Context, correlationID string) (*GenerationResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[correlationID]
	return result, ok, nil
}
