package repository

import (
	"context"

	"github.com/gdugdh24/campus-match/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	// GetByMatch returns the match's messages sorted by CreatedAt ascending.
	GetByMatch(ctx context.Context, matchID int64) ([]*domain.Message, error)
	// GetLastByMatch returns nil, nil when the match has no messages.
	GetLastByMatch(ctx context.Context, matchID int64) (*domain.Message, error)
}
