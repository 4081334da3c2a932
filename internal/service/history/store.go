// Package history keeps each doctor's recently searched patient IDs. It is
// a convenience feature: losing the list is harmless and recording failures
// must never fail the search that triggered them.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MaxEntries is the number of recent searches kept per doctor.
const MaxEntries = 5

const keyTTL = 30 * 24 * time.Hour

type Store interface {
	Record(ctx context.Context, doctorID uuid.UUID, uniqueID string) error
	Recent(ctx context.Context, doctorID uuid.UUID) ([]string, error)
	Clear(ctx context.Context, doctorID uuid.UUID) error
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func key(doctorID uuid.UUID) string {
	return "recent_searches:" + doctorID.String()
}

// Record moves uniqueID to the front of the doctor's list, de-duplicating
// and trimming to MaxEntries.
func (s *redisStore) Record(ctx context.Context, doctorID uuid.UUID, uniqueID string) error {
	k := key(doctorID)
	pipe := s.client.TxPipeline()
	pipe.LRem(ctx, k, 0, uniqueID)
	pipe.LPush(ctx, k, uniqueID)
	pipe.LTrim(ctx, k, 0, MaxEntries-1)
	pipe.Expire(ctx, k, keyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record search history: %w", err)
	}
	return nil
}

func (s *redisStore) Recent(ctx context.Context, doctorID uuid.UUID) ([]string, error) {
	ids, err := s.client.LRange(ctx, key(doctorID), 0, MaxEntries-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load search history: %w", err)
	}
	return ids, nil
}

func (s *redisStore) Clear(ctx context.Context, doctorID uuid.UUID) error {
	if err := s.client.Del(ctx, key(doctorID)).Err(); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}

// Push is the MRU update rule on a plain slice: most recent first,
// de-duplicated, capped at MaxEntries. The Redis pipeline in Record applies
// the same rule server-side.
func Push(ids []string, id string) []string {
	out := make([]string, 0, MaxEntries)
	out = append(out, id)
	for _, existing := range ids {
		if existing == id {
			continue
		}
		out = append(out, existing)
		if len(out) == MaxEntries {
			break
		}
	}
	return out
}
