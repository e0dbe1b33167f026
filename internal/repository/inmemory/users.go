package inmemory

import (
	"context"
	"strings"
	"time"

	"movein-app-go/internal/domain/user"
)

type UsersRepository struct {
	store *Store
}

var _ user.Repository = (*UsersRepository)(nil)

func (r *UsersRepository) GetUserByID(ctx context.Context, id int64) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	found, ok := r.store.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *found
	return &copied, nil
}

func (r *UsersRepository) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, id := range sortedIDs(r.store.users) {
		found := r.store.users[id]
		if strings.EqualFold(found.Username, username) {
			copied := *found
			return &copied, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *UsersRepository) CreateUser(ctx context.Context, created *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.userSeq++
	created.ID = r.store.userSeq
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	stored := *created
	r.store.users[created.ID] = &stored
	return nil
}

func (r *UsersRepository) UpdateUser(ctx context.Context, updated *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[updated.ID]; !ok {
		return user.ErrUserNotFound
	}
	stored := *updated
	r.store.users[updated.ID] = &stored
	return nil
}

func (r *UsersRepository) CountUsers(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.users)), nil
}
