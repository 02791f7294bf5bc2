package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
	"github.com/jmoiron/sqlx"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (match_id, sender_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, message.MatchID, message.SenderID, message.Text).
		Scan(&message.ID, &message.CreatedAt)
}

func (r *messageRepository) GetByMatch(ctx context.Context, matchID int64) ([]*domain.Message, error) {
	messages := []*domain.Message{}
	query := `
		SELECT id, match_id, sender_id, text, created_at
		FROM messages
		WHERE match_id = $1
		ORDER BY created_at ASC, id ASC
	`
	err := r.db.SelectContext(ctx, &messages, query, matchID)
	return messages, err
}

func (r *messageRepository) GetLastByMatch(ctx context.Context, matchID int64) (*domain.Message, error) {
	var message domain.Message
	query := `
		SELECT id, match_id, sender_id, text, created_at
		FROM messages
		WHERE match_id = $1
		ORDER BY created_at DESC, id ASC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &message, query, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}
