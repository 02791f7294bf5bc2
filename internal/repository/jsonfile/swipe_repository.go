package jsonfile

import (
	"context"
	"time"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
)

type swipeRepository struct {
	store *Store
}

func NewSwipeRepository(store *Store) repository.SwipeRepository {
	return &swipeRepository{store: store}
}

// Create appends unconditionally; repeated swipes between the same pair are
// kept as history.
func (r *swipeRepository) Create(ctx context.Context, swipe *domain.Swipe) error {
	return r.store.Update(func(doc *Document) error {
		var lastID int64
		for _, s := range doc.Swipes {
			if s.ID > lastID {
				lastID = s.ID
			}
		}

		swipe.ID = nextID(lastID)
		if swipe.CreatedAt.IsZero() {
			swipe.CreatedAt = time.Now().UTC()
		}
		record := *swipe
		doc.Swipes = append(doc.Swipes, &record)
		return nil
	})
}

func (r *swipeRepository) FindLike(ctx context.Context, fromID, toID int64) (*domain.Swipe, error) {
	var found *domain.Swipe
	err := r.store.View(func(doc *Document) error {
		for _, s := range doc.Swipes {
			if s.From == fromID && s.To == toID && s.IsLike() {
				found = s
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *swipeRepository) GetSwipedIDs(ctx context.Context, fromID int64) ([]int64, error) {
	var ids []int64
	err := r.store.View(func(doc *Document) error {
		for _, s := range doc.Swipes {
			if s.From == fromID {
				ids = append(ids, s.To)
			}
		}
		return nil
	})
	return ids, err
}
