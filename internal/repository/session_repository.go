package repository

import (
	"context"
	"time"
)

// SessionRepository tracks issued tokens by their hash.
type SessionRepository interface {
	Create(ctx context.Context, tokenHash string, userID int64, ttl time.Duration) error
	Exists(ctx context.Context, tokenHash string) (bool, error)
	Delete(ctx context.Context, tokenHash string) error
}
