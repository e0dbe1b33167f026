package push

import (
	"context"
	"errors"
	"time"

	pushdomain "movein-app-go/internal/domain/push"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var _ pushdomain.Repository = (*PostgresRepository)(nil)

func (r *PostgresRepository) ListSubscriptions(ctx context.Context) ([]pushdomain.Subscription, error) {
	var items []pushdomain.Subscription
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetSubscriptionByEndpoint(ctx context.Context, endpoint string) (*pushdomain.Subscription, error) {
	var subscription pushdomain.Subscription
	if err := r.db.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pushdomain.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &subscription, nil
}

func (r *PostgresRepository) CreateSubscription(ctx context.Context, subscription *pushdomain.Subscription) error {
	return r.db.WithContext(ctx).Create(subscription).Error
}

func (r *PostgresRepository) UpdateSubscription(ctx context.Context, subscription *pushdomain.Subscription) error {
	result := r.db.WithContext(ctx).
		Model(&pushdomain.Subscription{}).
		Where("id = ?", subscription.ID).
		Updates(map[string]interface{}{
			"user_id": subscription.UserID,
			"p256dh":  subscription.P256dh,
			"auth":    subscription.Auth,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pushdomain.ErrSubscriptionNotFound
	}
	return nil
}

func (r *PostgresRepository) SetLastNotified(ctx context.Context, id int64, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&pushdomain.Subscription{}).
		Where("id = ?", id).
		Update("last_notified", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pushdomain.ErrSubscriptionNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteSubscription(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&pushdomain.Subscription{}, id)
	return result.RowsAffected > 0, result.Error
}
