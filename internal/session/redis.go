package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alexanderramin/apaise/internal/safety"
)

const redisKeyPrefix = "apaise:session:"

// redisStore is the external driver for multi-instance deployments.
// Optimistic locking rides on WATCH; idle expiry on the key TTL, which
// is refreshed on every read.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (s *redisStore) GetOrCreate(ctx context.Context, key string) (*Session, error) {
	rkey := redisKeyPrefix + key

	val, err := s.client.Get(ctx, rkey).Result()
	if err == nil {
		var sess Session
		if err := json.Unmarshal([]byte(val), &sess); err != nil {
			return nil, err
		}
		_ = s.client.Expire(ctx, rkey, s.ttl).Err()
		return &sess, nil
	}
	if err != redis.Nil {
		return nil, err
	}

	now := time.Now()
	sess := Session{
		Key:       key,
		State:     safety.StateNormal,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	data, err := json.Marshal(&sess)
	if err != nil {
		return nil, err
	}

	created, err := s.client.SetNX(ctx, rkey, string(data), s.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !created {
		// Lost the creation race; the winner's session is authoritative.
		return s.GetOrCreate(ctx, key)
	}
	return &sess, nil
}

func (s *redisStore) Update(ctx context.Context, sess *Session) error {
	rkey := redisKeyPrefix + sess.Key

	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, rkey).Result()
		if err == redis.Nil {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var stored Session
		if err := json.Unmarshal([]byte(val), &stored); err != nil {
			return err
		}
		if stored.Version != sess.Version {
			return ErrVersionConflict
		}

		sess.Version++
		sess.UpdatedAt = time.Now()
		data, err := json.Marshal(sess)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, rkey, string(data), s.ttl)
			return nil
		})
		return err
	}, rkey)
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
