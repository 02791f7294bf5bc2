package repository

import (
	"context"

	"github.com/gdugdh24/campus-match/internal/domain"
)

type UserRepository interface {
	// Create assigns the id. Returns domain.ErrEmailExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns all users in insertion order.
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// Modify applies fn to the stored user and saves the result as one
	// atomic step. Nothing is written when fn returns an error.
	Modify(ctx context.Context, id int64, fn func(user *domain.User) error) error
}
