package conversation

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"turnobot/models"

	"github.com/go-redis/redis/v8"
)

const conversationPrefix = "conv:"

// Store persists per-conversation scratch records. A nil conversation with a
// nil error means no active conversation for that phone.
type Store interface {
	Get(ctx context.Context, phone string) (*models.Conversation, error)
	Save(ctx context.Context, conv *models.Conversation) error
	Delete(ctx context.Context, phone string) error
}

// RedisStore keeps conversations as JSON with a TTL. The TTL doubles as the
// abandonment policy: a conversation nobody advances simply expires.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, phone string) (*models.Conversation, error) {
	data, err := s.client.Get(ctx, conversationPrefix+phone).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var conv models.Conversation
	if err := json.Unmarshal([]byte(data), &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (s *RedisStore) Save(ctx context.Context, conv *models.Conversation) error {
	conv.UpdatedAt = time.Now()
	b, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, conversationPrefix+conv.Phone, b, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, conversationPrefix+phone).Err()
}

// MemoryStore is an in-process Store for tests and single-node setups.
type MemoryStore struct {
	mu    sync.RWMutex
	convs map[string]models.Conversation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{convs: make(map[string]models.Conversation)}
}

func (s *MemoryStore) Get(_ context.Context, phone string) (*models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.convs[phone]
	if !ok {
		return nil, nil
	}
	return &conv, nil
}

func (s *MemoryStore) Save(_ context.Context, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv.UpdatedAt = time.Now()
	s.convs[conv.Phone] = *conv
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.convs, phone)
	return nil
}
