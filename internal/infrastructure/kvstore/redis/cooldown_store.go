// Package redis keeps negotiation cooldowns in redis so they survive restarts
// and are shared between API replicas.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"

	"github.com/riskibarqy/transfer-market/internal/domain/cooldown"
)

const (
	defaultKeyPrefix = "transfer-market:cooldown:"
	scanBatch        = 200
	// expiryGrace keeps a record readable briefly after it expires so a
	// restarting watcher can still settle it.
	expiryGrace = time.Minute
)

type storedRecord struct {
	UserID    string    `json:"user_id"`
	PlayerID  int64     `json:"player_id"`
	Until     time.Time `json:"until"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CooldownStore struct {
	client goredis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewCooldownStore(client goredis.UniversalClient, prefix string) *CooldownStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	if !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &CooldownStore{client: client, prefix: prefix, now: time.Now}
}

func (s *CooldownStore) key(userID string, playerID int64) string {
	return s.prefix + userID + ":" + strconv.FormatInt(playerID, 10)
}

func (s *CooldownStore) Get(ctx context.Context, userID string, playerID int64) (cooldown.Record, bool, error) {
	raw, err := s.client.Get(ctx, s.key(userID, playerID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return cooldown.Record{}, false, nil
	}
	if err != nil {
		return cooldown.Record{}, false, fmt.Errorf("redis get cooldown: %w", err)
	}

	rec, err := decodeRecord(raw)
	if err != nil {
		return cooldown.Record{}, false, err
	}
	return rec, true, nil
}

func (s *CooldownStore) Upsert(ctx context.Context, record cooldown.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	ttl := record.Until.Sub(s.now()) + expiryGrace
	if ttl <= 0 {
		return s.Delete(ctx, record.UserID, record.PlayerID)
	}

	data, err := sonic.Marshal(storedRecord{
		UserID:    record.UserID,
		PlayerID:  record.PlayerID,
		Until:     record.Until.UTC(),
		Reason:    record.Reason,
		CreatedAt: record.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal cooldown: %w", err)
	}
	if err := s.client.Set(ctx, s.key(record.UserID, record.PlayerID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set cooldown: %w", err)
	}
	return nil
}

func (s *CooldownStore) Delete(ctx context.Context, userID string, playerID int64) error {
	if err := s.client.Del(ctx, s.key(userID, playerID)).Err(); err != nil {
		return fmt.Errorf("redis delete cooldown: %w", err)
	}
	return nil
}

// ListActive scans the prefix and returns the records that have not expired.
func (s *CooldownStore) ListActive(ctx context.Context, now time.Time) ([]cooldown.Record, error) {
	var (
		cursor uint64
		out    []cooldown.Record
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("redis scan cooldowns: %w", err)
		}
		if len(keys) > 0 {
			values, err := s.client.MGet(ctx, keys...).Result()
			if err != nil && !errors.Is(err, goredis.Nil) {
				return nil, fmt.Errorf("redis mget cooldowns: %w", err)
			}
			for _, v := range values {
				raw, ok := v.(string)
				if !ok {
					continue
				}
				rec, err := decodeRecord([]byte(raw))
				if err != nil {
					return nil, err
				}
				if !rec.Expired(now) {
					out = append(out, rec)
				}
			}
		}
		if next == 0 {
			return out, nil
		}
		cursor = next
	}
}

func decodeRecord(raw []byte) (cooldown.Record, error) {
	var stored storedRecord
	if err := sonic.Unmarshal(raw, &stored); err != nil {
		return cooldown.Record{}, fmt.Errorf("decode cooldown: %w", err)
	}
	return cooldown.Record{
		UserID:    stored.UserID,
		PlayerID:  stored.PlayerID,
		Until:     stored.Until,
		Reason:    stored.Reason,
		CreatedAt: stored.CreatedAt,
	}, nil
}
