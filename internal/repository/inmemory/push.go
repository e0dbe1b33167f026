package inmemory

import (
	"context"
	"time"

	"movein-app-go/internal/domain/push"
)

type PushRepository struct {
	store *Store
}

var _ push.Repository = (*PushRepository)(nil)

func (r *PushRepository) ListSubscriptions(ctx context.Context) ([]push.Subscription, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	items := make([]push.Subscription, 0, len(r.store.subscriptions))
	for _, id := range sortedIDs(r.store.subscriptions) {
		items = append(items, *r.store.subscriptions[id])
	}
	return items, nil
}

func (r *PushRepository) GetSubscriptionByEndpoint(ctx context.Context, endpoint string) (*push.Subscription, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, subscription := range r.store.subscriptions {
		if subscription.Endpoint == endpoint {
			copied := *subscription
			return &copied, nil
		}
	}
	return nil, push.ErrSubscriptionNotFound
}

func (r *PushRepository) CreateSubscription(ctx context.Context, subscription *push.Subscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.subscriptionSeq++
	subscription.ID = r.store.subscriptionSeq
	if subscription.CreatedAt.IsZero() {
		subscription.CreatedAt = time.Now().UTC()
	}
	stored := *subscription
	r.store.subscriptions[subscription.ID] = &stored
	return nil
}

func (r *PushRepository) UpdateSubscription(ctx context.Context, subscription *push.Subscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.subscriptions[subscription.ID]; !ok {
		return push.ErrSubscriptionNotFound
	}
	stored := *subscription
	r.store.subscriptions[subscription.ID] = &stored
	return nil
}

func (r *PushRepository) SetLastNotified(ctx context.Context, id int64, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	subscription, ok := r.store.subscriptions[id]
	if !ok {
		return push.ErrSubscriptionNotFound
	}
	notified := at
	subscription.LastNotified = &notified
	return nil
}

func (r *PushRepository) DeleteSubscription(ctx context.Context, id int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	_, ok := r.store.subscriptions[id]
	delete(r.store.subscriptions, id)
	return ok, nil
}
