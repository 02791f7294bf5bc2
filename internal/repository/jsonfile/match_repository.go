package jsonfile

import (
	"context"
	"time"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
)

type matchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) repository.MatchRepository {
	return &matchRepository{store: store}
}

// Create keeps the user1/user2 order given by the caller. It fails with
// domain.ErrMatchExists when the unordered pair is already matched.
func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	return r.store.Update(func(doc *Document) error {
		var lastID int64
		for _, m := range doc.Matches {
			if m.IsPair(match.User1ID, match.User2ID) {
				return domain.ErrMatchExists
			}
			if m.ID > lastID {
				lastID = m.ID
			}
		}

		match.ID = nextID(lastID)
		if match.CreatedAt.IsZero() {
			match.CreatedAt = time.Now().UTC()
		}
		record := *match
		doc.Matches = append(doc.Matches, &record)
		return nil
	})
}

func (r *matchRepository) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	var match *domain.Match
	err := r.store.View(func(doc *Document) error {
		for _, m := range doc.Matches {
			if m.ID == id {
				match = m
				return nil
			}
		}
		return domain.ErrMatchNotFound
	})
	return match, err
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID int64) (*domain.Match, error) {
	var match *domain.Match
	err := r.store.View(func(doc *Document) error {
		for _, m := range doc.Matches {
			if m.IsPair(user1ID, user2ID) {
				match = m
				return nil
			}
		}
		return domain.ErrMatchNotFound
	})
	return match, err
}

func (r *matchRepository) GetUserMatches(ctx context.Context, userID int64) ([]*domain.Match, error) {
	matches := []*domain.Match{}
	err := r.store.View(func(doc *Document) error {
		for _, m := range doc.Matches {
			if m.HasUser(userID) {
				matches = append(matches, m)
			}
		}
		return nil
	})
	return matches, err
}

func (r *matchRepository) UpdateIcebreakers(ctx context.Context, matchID int64, icebreakers []string) error {
	return r.store.Update(func(doc *Document) error {
		for _, m := range doc.Matches {
			if m.ID == matchID {
				m.Icebreakers = icebreakers
				return nil
			}
		}
		return domain.ErrMatchNotFound
	})
}
