package feed

import (
	"context"
	"fmt"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
)

type FeedUseCase struct {
	userRepo  repository.UserRepository
	swipeRepo repository.SwipeRepository
}

func NewFeedUseCase(
	userRepo repository.UserRepository,
	swipeRepo repository.SwipeRepository,
) *FeedUseCase {
	return &FeedUseCase{
		userRepo:  userRepo,
		swipeRepo: swipeRepo,
	}
}

// ListCandidates returns every user the caller has not swiped on yet, in
// registration order, excluding the caller.
func (uc *FeedUseCase) ListCandidates(ctx context.Context, userID int64) ([]domain.UserSummary, error) {
	swiped, err := uc.swipeRepo.GetSwipedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get swiped users: %w", err)
	}

	excluded := make(map[int64]struct{}, len(swiped)+1)
	excluded[userID] = struct{}{}
	for _, id := range swiped {
		excluded[id] = struct{}{}
	}

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	candidates := make([]domain.UserSummary, 0, len(users))
	for _, u := range users {
		if _, skip := excluded[u.ID]; skip {
			continue
		}
		candidates = append(candidates, u.Summary())
	}

	return candidates, nil
}
