package repository

import (
	"context"

	"github.com/gdugdh24/campus-match/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id int64) (*domain.Match, error)
	// GetByUsers finds the match for the unordered pair {user1ID, user2ID}.
	GetByUsers(ctx context.Context, user1ID, user2ID int64) (*domain.Match, error)
	// GetUserMatches returns the user's matches in creation order.
	GetUserMatches(ctx context.Context, userID int64) ([]*domain.Match, error)
	UpdateIcebreakers(ctx context.Context, matchID int64, icebreakers []string) error
}
