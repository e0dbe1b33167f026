// Package webpush delivers push domain messages over the Web Push protocol
// with VAPID authentication.
package webpush

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	wp "github.com/SherClockHolmes/webpush-go"
	"movein-app-go/internal/config"
	"movein-app-go/internal/domain/push"
)

type Sender struct {
	subject    string
	publicKey  string
	privateKey string
}

var _ push.Sender = (*Sender)(nil)

func NewSender(cfg config.PushConfig) *Sender {
	return &Sender{
		subject:    cfg.Subject,
		publicKey:  cfg.VAPIDPublicKey,
		privateKey: cfg.VAPIDPrivateKey,
	}
}

func (s *Sender) Send(ctx context.Context, subscription push.Subscription, message push.Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	resp, err := wp.SendNotificationWithContext(ctx, payload, &wp.Subscription{
		Endpoint: subscription.Endpoint,
		Keys: wp.Keys{
			P256dh: subscription.P256dh,
			Auth:   subscription.Auth,
		},
	}, &wp.Options{
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             3600,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound:
		return push.ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}
	return nil
}
