package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
	"github.com/jmoiron/sqlx"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Create(ctx context.Context, swipe *domain.Swipe) error {
	query := `
		INSERT INTO swipes (from_user_id, to_user_id, swipe_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, swipe.From, swipe.To, swipe.Type).
		Scan(&swipe.ID, &swipe.CreatedAt)
}

func (r *swipeRepository) FindLike(ctx context.Context, fromID, toID int64) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `
		SELECT id, from_user_id, to_user_id, swipe_type, created_at
		FROM swipes
		WHERE from_user_id = $1 AND to_user_id = $2 AND swipe_type = $3
		ORDER BY id
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &swipe, query, fromID, toID, domain.SwipeLike)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) GetSwipedIDs(ctx context.Context, fromID int64) ([]int64, error) {
	var ids []int64
	query := `SELECT to_user_id FROM swipes WHERE from_user_id = $1 ORDER BY id`
	err := r.db.SelectContext(ctx, &ids, query, fromID)
	return ids, err
}
