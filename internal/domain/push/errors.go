package push

import "errors"

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrSubscriptionGone is returned by a Sender when the push endpoint
	// reports the subscription permanently invalid (HTTP 410).
	ErrSubscriptionGone = errors.New("subscription gone")
	ErrEndpointRequired = errors.New("endpoint is required")
	ErrKeysRequired     = errors.New("p256dh and auth keys are required")
)
