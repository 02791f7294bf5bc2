package jsonfile

import (
	"context"
	"sort"
	"time"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
)

type messageRepository struct {
	store *Store
}

func NewMessageRepository(store *Store) repository.MessageRepository {
	return &messageRepository{store: store}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	return r.store.Update(func(doc *Document) error {
		var lastID int64
		for _, m := range doc.Messages {
			if m.ID > lastID {
				lastID = m.ID
			}
		}

		message.ID = nextID(lastID)
		if message.CreatedAt.IsZero() {
			message.CreatedAt = time.Now().UTC()
		}
		record := *message
		doc.Messages = append(doc.Messages, &record)
		return nil
	})
}

func (r *messageRepository) GetByMatch(ctx context.Context, matchID int64) ([]*domain.Message, error) {
	messages := []*domain.Message{}
	err := r.store.View(func(doc *Document) error {
		for _, m := range doc.Messages {
			if m.MatchID == matchID {
				messages = append(messages, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *messageRepository) GetLastByMatch(ctx context.Context, matchID int64) (*domain.Message, error) {
	var last *domain.Message
	err := r.store.View(func(doc *Document) error {
		for _, m := range doc.Messages {
			if m.MatchID != matchID {
				continue
			}
			if last == nil || m.CreatedAt.After(last.CreatedAt) {
				last = m
			}
		}
		return nil
	})
	return last, err
}
