package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/forexflex/internal/core/domain"
	portsrepo "github.com/SscSPs/forexflex/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "forexflex:history:"

// RedisStore keeps each session's history in a redis list that expires with the session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a redis-backed history store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

// AppendRecord pushes a record to the tail of the session list and refreshes its expiry.
func (s *RedisStore) AppendRecord(ctx context.Context, sessionID string, record domain.ConversionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal conversion record: %w", err)
	}

	key := redisKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append history for session: %w", err)
	}
	return nil
}

// ListRecords returns the session's records in insertion order.
func (s *RedisStore) ListRecords(ctx context.Context, sessionID string) ([]domain.ConversionRecord, error) {
	values, err := s.client.LRange(ctx, redisKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history for session: %w", err)
	}

	records := make([]domain.ConversionRecord, 0, len(values))
	for _, v := range values {
		var record domain.ConversionRecord
		if err := json.Unmarshal([]byte(v), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal conversion record: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

var _ portsrepo.HistoryRepositoryFacade = (*RedisStore)(nil)
