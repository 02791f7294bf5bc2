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

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, name, avatar, age, gender, faculty, course, interests, about`

func scanUser(row interface{ Scan(...interface{}) error }) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Avatar,
		&user.Age, &user.Gender, &user.Faculty, &user.Course,
		pq.Array(&user.Interests), &user.About,
	)
	if err != nil {
		return nil, err
	}
	if user.Interests == nil {
		user.Interests = []string{}
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Interests == nil {
		user.Interests = []string{}
	}

	query := `
		INSERT INTO users (email, password_hash, name, avatar, age, gender, faculty, course, interests, about)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Avatar, user.Age,
		user.Gender, user.Faculty, user.Course, pq.Array(user.Interests), user.About,
	).Scan(&user.ID)
	if isUniqueViolation(err) {
		return domain.ErrEmailExists
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

const updateUserQuery = `
	UPDATE users
	SET name = $1, avatar = $2, age = $3, gender = $4, faculty = $5,
	    course = $6, interests = $7, about = $8
	WHERE id = $9
`

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return updateUser(ctx, r.db, user)
}

func updateUser(ctx context.Context, db sqlx.ExecerContext, user *domain.User) error {
	result, err := db.ExecContext(
		ctx, updateUserQuery,
		user.Name, user.Avatar, user.Age, user.Gender, user.Faculty,
		user.Course, pq.Array(user.Interests), user.About,
		user.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Modify locks the row for the duration of fn.
func (r *userRepository) Modify(ctx context.Context, id int64, fn func(user *domain.User) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	user, err := scanUser(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := fn(user); err != nil {
		return err
	}
	user.ID = id
	if err := updateUser(ctx, tx, user); err != nil {
		return err
	}
	return tx.Commit()
}
