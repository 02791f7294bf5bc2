package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gdugdh24/campus-match/internal/repository"
	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type sessionRepository struct {
	client *goredis.Client
}

func NewSessionRepository(client *goredis.Client) repository.SessionRepository {
	return &sessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return sessionKeyPrefix + tokenHash
}

func (r *sessionRepository) Create(ctx context.Context, tokenHash string, userID int64, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKey(tokenHash), strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Exists(ctx context.Context, tokenHash string) (bool, error) {
	n, err := r.client.Exists(ctx, sessionKey(tokenHash)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return n == 1, nil
}

func (r *sessionRepository) Delete(ctx context.Context, tokenHash string) error {
	if err := r.client.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
