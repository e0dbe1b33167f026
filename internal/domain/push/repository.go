package push

import (
	"context"
	"time"
)

type Repository interface {
	ListSubscriptions(ctx context.Context) ([]Subscription, error)
	GetSubscriptionByEndpoint(ctx context.Context, endpoint string) (*Subscription, error)
	CreateSubscription(ctx context.Context, subscription *Subscription) error
	UpdateSubscription(ctx context.Context, subscription *Subscription) error
	SetLastNotified(ctx context.Context, id int64, at time.Time) error
	DeleteSubscription(ctx context.Context, id int64) (bool, error)
}
