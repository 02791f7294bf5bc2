package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

const matchColumns = `id, user1_id, user2_id, icebreakers, created_at`

func scanMatch(row interface{ Scan(...interface{}) error }) (*domain.Match, error) {
	var match domain.Match
	err := row.Scan(&match.ID, &match.User1ID, &match.User2ID, pq.Array(&match.Icebreakers), &match.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// Create keeps the caller's user1/user2 order; pair uniqueness is enforced by
// the idx_matches_pair unique index.
func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	icebreakers := match.Icebreakers
	if icebreakers == nil {
		icebreakers = []string{}
	}

	query := `
		INSERT INTO matches (user1_id, user2_id, icebreakers)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, match.User1ID, match.User2ID, pq.Array(icebreakers)).
		Scan(&match.ID, &match.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrMatchExists
	}
	return err
}

func (r *matchRepository) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID int64) (*domain.Match, error) {
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE (user1_id = $1 AND user2_id = $2) OR (user1_id = $2 AND user2_id = $1)
	`
	match, err := scanMatch(r.db.QueryRowContext(ctx, query, user1ID, user2ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *matchRepository) GetUserMatches(ctx context.Context, userID int64) ([]*domain.Match, error) {
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []*domain.Match{}
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *matchRepository) UpdateIcebreakers(ctx context.Context, matchID int64, icebreakers []string) error {
	query := `UPDATE matches SET icebreakers = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, pq.Array(icebreakers), matchID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}
