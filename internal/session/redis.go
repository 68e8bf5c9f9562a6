package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"notch-chatbot/internal/common/errors"
)

const keyPrefix = "notch:session:"

// RedisStore keeps each conversation as a Redis list of JSON messages with
// a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

// Create only allocates an id; the list is created by the first Append.
func (s *RedisStore) Create(ctx context.Context) (string, error) {
	return NewID(), nil
}

func (s *RedisStore) Append(ctx context.Context, id string, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(msgs))
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			return errors.NewSessionFailedError("append", err)
		}
		values = append(values, data)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key(id), values...)
		if s.ttl > 0 {
			pipe.Expire(ctx, key(id), s.ttl)
		}
		return nil
	})
	if err != nil {
		return errors.NewSessionFailedError("append", err)
	}
	return nil
}

func (s *RedisStore) History(ctx context.Context, id string) ([]Message, error) {
	raw, err := s.client.LRange(ctx, key(id), 0, -1).Result()
	if err != nil {
		return nil, errors.NewSessionFailedError("history", err)
	}

	out := make([]Message, 0, len(raw))
	for _, item := range raw {
		var m Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			return nil, errors.NewSessionFailedError("history", err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return errors.NewSessionFailedError("delete", err)
	}
	return nil
}
