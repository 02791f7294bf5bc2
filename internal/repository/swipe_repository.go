package repository

import (
	"context"

	"github.com/gdugdh24/campus-match/internal/domain"
)

type SwipeRepository interface {
	Create(ctx context.Context, swipe *domain.Swipe) error
	// FindLike returns the first like from fromID to toID in storage order,
	// or nil, nil when there is none.
	FindLike(ctx context.Context, fromID, toID int64) (*domain.Swipe, error)
	// GetSwipedIDs returns every user id the given user has swiped on.
	GetSwipedIDs(ctx context.Context, fromID int64) ([]int64, error)
}
