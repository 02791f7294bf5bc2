package jsonfile

import (
	"context"

	"github.com/gdugdh24/campus-match/internal/domain"
	"github.com/gdugdh24/campus-match/internal/repository"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.store.Update(func(doc *Document) error {
		var lastID int64
		for _, u := range doc.Users {
			if u.Email == user.Email {
				return domain.ErrEmailExists
			}
			if u.ID > lastID {
				lastID = u.ID
			}
		}

		user.ID = nextID(lastID)
		if user.Interests == nil {
			user.Interests = []string{}
		}
		doc.Users = append(doc.Users, newUserRecord(user))
		return nil
	})
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user *domain.User
	err := r.store.View(func(doc *Document) error {
		for _, u := range doc.Users {
			if u.ID == id {
				user = u.toDomain()
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	return user, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user *domain.User
	err := r.store.View(func(doc *Document) error {
		for _, u := range doc.Users {
			if u.Email == email {
				user = u.toDomain()
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	return user, err
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := r.store.View(func(doc *Document) error {
		users = make([]*domain.User, 0, len(doc.Users))
		for _, u := range doc.Users {
			users = append(users, u.toDomain())
		}
		return nil
	})
	return users, err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.store.Update(func(doc *Document) error {
		for i, u := range doc.Users {
			if u.ID == user.ID {
				doc.Users[i] = newUserRecord(user)
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
}

func (r *userRepository) Modify(ctx context.Context, id int64, fn func(user *domain.User) error) error {
	return r.store.Update(func(doc *Document) error {
		for i, u := range doc.Users {
			if u.ID != id {
				continue
			}
			user := u.toDomain()
			if err := fn(user); err != nil {
				return err
			}
			user.ID = id
			doc.Users[i] = newUserRecord(user)
			return nil
		}
		return domain.ErrUserNotFound
	})
}
