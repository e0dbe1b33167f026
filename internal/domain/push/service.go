package push

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movein-app-go/internal/domain/todos"
	"movein-app-go/pkg/logger"
)

const (
	DefaultDueHorizon  = 5 * 24 * time.Hour
	DefaultDedupWindow = 24 * time.Hour
)

// Sender delivers a message to one subscription endpoint.
type Sender interface {
	Send(ctx context.Context, subscription Subscription, message Message) error
}

// TaskSource lists the todos the sweep inspects. Satisfied by the todos
// repository.
type TaskSource interface {
	ListTodos(ctx context.Context, filter todos.ListFilter) ([]todos.Todo, error)
}

type Options struct {
	DueHorizon  time.Duration
	DedupWindow time.Duration
}

type Service struct {
	repo        Repository
	tasks       TaskSource
	sender      Sender
	log         logger.Logger
	dueHorizon  time.Duration
	dedupWindow time.Duration
}

func NewService(repo Repository, tasks TaskSource, sender Sender, log logger.Logger, options Options) *Service {
	if options.DueHorizon <= 0 {
		options.DueHorizon = DefaultDueHorizon
	}
	if options.DedupWindow <= 0 {
		options.DedupWindow = DefaultDedupWindow
	}
	return &Service{
		repo:        repo,
		tasks:       tasks,
		sender:      sender,
		log:         log,
		dueHorizon:  options.DueHorizon,
		dedupWindow: options.DedupWindow,
	}
}

// Subscribe registers a browser push subscription. Re-subscribing an
// existing endpoint refreshes its keys and owner without resetting the
// dedup state.
func (s *Service) Subscribe(ctx context.Context, input SubscribeInput) (*Subscription, error) {
	endpoint := strings.TrimSpace(input.Endpoint)
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}
	if strings.TrimSpace(input.P256dh) == "" || strings.TrimSpace(input.Auth) == "" {
		return nil, ErrKeysRequired
	}

	existing, err := s.repo.GetSubscriptionByEndpoint(ctx, endpoint)
	if err == nil {
		existing.UserID = input.UserID
		existing.P256dh = input.P256dh
		existing.Auth = input.Auth
		if err := s.repo.UpdateSubscription(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, ErrSubscriptionNotFound) {
		return nil, err
	}

	subscription := Subscription{
		UserID:   input.UserID,
		Endpoint: endpoint,
		P256dh:   input.P256dh,
		Auth:     input.Auth,
	}
	if err := s.repo.CreateSubscription(ctx, &subscription); err != nil {
		return nil, err
	}

	return &subscription, nil
}

// Sweep scans for todos due within the horizon (overdue included) and
// notifies every subscription at most once per dedup window. A failure to
// load state aborts the sweep; per-subscription and per-task send failures
// are isolated.
func (s *Service) Sweep(ctx context.Context, now time.Time) error {
	notCompleted := false
	horizon := now.Add(s.dueHorizon)
	due, err := s.tasks.ListTodos(ctx, todos.ListFilter{Completed: &notCompleted, DueBefore: &horizon})
	if err != nil {
		return fmt.Errorf("sweep: list due todos: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	subscriptions, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return fmt.Errorf("sweep: list subscriptions: %w", err)
	}

	for _, subscription := range subscriptions {
		if subscription.LastNotified != nil && now.Sub(*subscription.LastNotified) < s.dedupWindow {
			continue
		}
		s.notify(ctx, subscription, due, now)
	}

	return nil
}

func (s *Service) notify(ctx context.Context, subscription Subscription, due []todos.Todo, now time.Time) {
	delivered := false
	for _, todo := range due {
		err := s.sender.Send(ctx, subscription, messageFor(todo, now))
		if err == nil {
			delivered = true
			continue
		}
		if errors.Is(err, ErrSubscriptionGone) {
			s.log.Info("push: purging gone subscription", "subscription_id", subscription.ID, "user_id", subscription.UserID)
			if _, err := s.repo.DeleteSubscription(ctx, subscription.ID); err != nil {
				s.log.InternalError("push: purge subscription failed", err, "subscription_id", subscription.ID)
			}
			return
		}
		s.log.InternalError("push: send failed", err, "subscription_id", subscription.ID, "todo_id", todo.ID)
	}

	if !delivered {
		return
	}
	if err := s.repo.SetLastNotified(ctx, subscription.ID, now); err != nil {
		s.log.InternalError("push: record last notified failed", err, "subscription_id", subscription.ID)
	}
}

func messageFor(todo todos.Todo, now time.Time) Message {
	if todo.DueDate != nil && todo.DueDate.Before(now) {
		return Message{
			Title: "Task overdue",
			Body:  fmt.Sprintf("%q was due on %s", todo.Title, todo.DueDate.Format("Jan 2")),
		}
	}
	body := fmt.Sprintf("%q is due soon", todo.Title)
	if todo.DueDate != nil {
		body = fmt.Sprintf("%q is due on %s", todo.Title, todo.DueDate.Format("Jan 2"))
	}
	return Message{Title: "Task due soon", Body: body}
}
