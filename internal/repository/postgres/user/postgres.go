package user

import (
	"context"
	"errors"

	userdomain "movein-app-go/internal/domain/user"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ userdomain.Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) GetUserByID(ctx context.Context, id int64) (*userdomain.User, error) {
	var found userdomain.User
	if err := r.db.WithContext(ctx).First(&found, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &found, nil
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	var found userdomain.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) = LOWER(?)", username).
		First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &found, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, created *userdomain.User) error {
	return r.db.WithContext(ctx).Create(created).Error
}

func (r *PostgresRepository) UpdateUser(ctx context.Context, updated *userdomain.User) error {
	result := r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("id = ?", updated.ID).
		Updates(map[string]interface{}{
			"access_token":  updated.AccessToken,
			"refresh_token": updated.RefreshToken,
			"token_expiry":  updated.TokenExpiry,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userdomain.ErrUserNotFound
	}
	return nil
}

func (r *PostgresRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userdomain.User{}).Count(&count).Error
	return count, err
}
