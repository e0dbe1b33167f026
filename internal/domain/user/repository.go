package user

import "context"

type Repository interface {
	GetUserByID(ctx context.Context, id int64) (*User, error)
	// GetUserByUsername matches case-insensitively.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
	CountUsers(ctx context.Context) (int64, error)
}
