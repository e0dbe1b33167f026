package push

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"movein-app-go/internal/domain/todos"
	"movein-app-go/pkg/logger"
)

type fakePushRepo struct {
	subscriptions map[int64]*Subscription
	seq           int64
}

func newFakePushRepo() *fakePushRepo {
	return &fakePushRepo{subscriptions: make(map[int64]*Subscription)}
}

func (r *fakePushRepo) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	items := make([]Subscription, 0)
	for _, subscription := range r.subscriptions {
		items = append(items, *subscription)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakePushRepo) GetSubscriptionByEndpoint(ctx context.Context, endpoint string) (*Subscription, error) {
	for _, subscription := range r.subscriptions {
		if subscription.Endpoint == endpoint {
			copied := *subscription
			return &copied, nil
		}
	}
	return nil, ErrSubscriptionNotFound
}

func (r *fakePushRepo) CreateSubscription(ctx context.Context, subscription *Subscription) error {
	r.seq++
	subscription.ID = r.seq
	stored := *subscription
	r.subscriptions[subscription.ID] = &stored
	return nil
}

func (r *fakePushRepo) UpdateSubscription(ctx context.Context, subscription *Subscription) error {
	if _, ok := r.subscriptions[subscription.ID]; !ok {
		return ErrSubscriptionNotFound
	}
	stored := *subscription
	r.subscriptions[subscription.ID] = &stored
	return nil
}

func (r *fakePushRepo) SetLastNotified(ctx context.Context, id int64, at time.Time) error {
	subscription, ok := r.subscriptions[id]
	if !ok {
		return ErrSubscriptionNotFound
	}
	stamped := at
	subscription.LastNotified = &stamped
	return nil
}

func (r *fakePushRepo) DeleteSubscription(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.subscriptions[id]; !ok {
		return false, nil
	}
	delete(r.subscriptions, id)
	return true, nil
}

type fakeTaskSource struct {
	todos []todos.Todo
	err   error
}

func (s *fakeTaskSource) ListTodos(ctx context.Context, filter todos.ListFilter) ([]todos.Todo, error) {
	if s.err != nil {
		return nil, s.err
	}
	items := make([]todos.Todo, 0)
	for _, todo := range s.todos {
		if filter.Completed != nil && todo.Completed != *filter.Completed {
			continue
		}
		if filter.DueBefore != nil {
			if todo.DueDate == nil || todo.DueDate.After(*filter.DueBefore) {
				continue
			}
		}
		items = append(items, todo)
	}
	return items, nil
}

type sentMessage struct {
	subscriptionID int64
	message        Message
}

type fakeSender struct {
	sent []sentMessage
	// errs maps endpoint to the error every send to it returns.
	errs map[string]error
}

func (s *fakeSender) Send(ctx context.Context, subscription Subscription, message Message) error {
	if err := s.errs[subscription.Endpoint]; err != nil {
		return err
	}
	s.sent = append(s.sent, sentMessage{subscriptionID: subscription.ID, message: message})
	return nil
}

func testLogger() logger.Logger {
	return logger.New(io.Discard, slog.LevelError, "text")
}

func newTestService(repo Repository, tasks TaskSource, sender Sender) *Service {
	return NewService(repo, tasks, sender, testLogger(), Options{})
}

func dueTodo(id int64, title string, due time.Time) todos.Todo {
	return todos.Todo{ID: id, Title: title, DueDate: &due}
}

func TestSubscribeUpsertsByEndpoint(t *testing.T) {
	repo := newFakePushRepo()
	svc := newTestService(repo, &fakeTaskSource{}, &fakeSender{})

	first, err := svc.Subscribe(context.Background(), SubscribeInput{
		UserID: 1, Endpoint: "https://push.example/abc", P256dh: "p1", Auth: "a1",
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	notified := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	repo.subscriptions[first.ID].LastNotified = &notified

	second, err := svc.Subscribe(context.Background(), SubscribeInput{
		UserID: 2, Endpoint: "https://push.example/abc", P256dh: "p2", Auth: "a2",
	})
	if err != nil {
		t.Fatalf("resubscribe: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same subscription, got %d and %d", first.ID, second.ID)
	}

	stored := repo.subscriptions[first.ID]
	if stored.UserID != 2 || stored.P256dh != "p2" {
		t.Fatalf("expected keys refreshed, got %+v", stored)
	}
	if stored.LastNotified == nil || !stored.LastNotified.Equal(notified) {
		t.Fatalf("resubscribe must not reset dedup state, got %v", stored.LastNotified)
	}
}

func TestSubscribeValidation(t *testing.T) {
	svc := newTestService(newFakePushRepo(), &fakeTaskSource{}, &fakeSender{})

	if _, err := svc.Subscribe(context.Background(), SubscribeInput{Endpoint: " ", P256dh: "p", Auth: "a"}); !errors.Is(err, ErrEndpointRequired) {
		t.Fatalf("expected ErrEndpointRequired, got %v", err)
	}
	if _, err := svc.Subscribe(context.Background(), SubscribeInput{Endpoint: "https://x", P256dh: "", Auth: "a"}); !errors.Is(err, ErrKeysRequired) {
		t.Fatalf("expected ErrKeysRequired, got %v", err)
	}
}

func TestSweepNoDueTasksIsNoop(t *testing.T) {
	repo := newFakePushRepo()
	sender := &fakeSender{}
	svc := newTestService(repo, &fakeTaskSource{}, sender)

	if _, err := svc.Subscribe(context.Background(), SubscribeInput{UserID: 1, Endpoint: "https://x", P256dh: "p", Auth: "a"}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := svc.Sweep(context.Background(), time.Now()); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no sends, got %d", len(sender.sent))
	}
}

func TestSweepSendsPerDueTask(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	tasks := &fakeTaskSource{todos: []todos.Todo{
		dueTodo(1, "Return keys", now.Add(-48*time.Hour)),
		dueTodo(2, "Meter reading", now.Add(24*time.Hour)),
		dueTodo(3, "Far future", now.Add(30*24*time.Hour)),
	}}
	repo := newFakePushRepo()
	sender := &fakeSender{}
	svc := newTestService(repo, tasks, sender)

	subscription, err := svc.Subscribe(context.Background(), SubscribeInput{UserID: 1, Endpoint: "https://x", P256dh: "p", Auth: "a"})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := svc.Sweep(context.Background(), now); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	// Task 3 is beyond the 5-day horizon.
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(sender.sent))
	}
	if sender.sent[0].message.Title != "Task overdue" {
		t.Fatalf("expected overdue wording, got %q", sender.sent[0].message.Title)
	}
	if sender.sent[1].message.Title != "Task due soon" {
		t.Fatalf("expected due-soon wording, got %q", sender.sent[1].message.Title)
	}

	stored := repo.subscriptions[subscription.ID]
	if stored.LastNotified == nil || !stored.LastNotified.Equal(now) {
		t.Fatalf("expected last notified stamped, got %v", stored.LastNotified)
	}
}

func TestSweepDedupWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	tasks := &fakeTaskSource{todos: []todos.Todo{dueTodo(1, "Return keys", now.Add(time.Hour))}}
	repo := newFakePushRepo()
	sender := &fakeSender{}
	svc := newTestService(repo, tasks, sender)

	subscription, err := svc.Subscribe(context.Background(), SubscribeInput{UserID: 1, Endpoint: "https://x", P256dh: "p", Auth: "a"})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	recent := now.Add(-23 * time.Hour)
	repo.subscriptions[subscription.ID].LastNotified = &recent

	if err := svc.Sweep(context.Background(), now); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected dedup skip at 23h, got %d sends", len(sender.sent))
	}

	stale := now.Add(-25 * time.Hour)
	repo.subscriptions[subscription.ID].LastNotified = &stale

	if err := svc.Sweep(context.Background(), now); err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected send at 25h, got %d", len(sender.sent))
	}
}

func TestSweepPurgesGoneSubscription(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	tasks := &fakeTaskSource{todos: []todos.Todo{dueTodo(1, "Return keys", now.Add(time.Hour))}}
	repo := newFakePushRepo()
	sender := &fakeSender{errs: map[string]error{"https://gone": ErrSubscriptionGone}}
	svc := newTestService(repo, tasks, sender)

	gone, err := svc.Subscribe(context.Background(), SubscribeInput{UserID: 1, Endpoint: "https://gone", P256dh: "p", Auth: "a"})
	if err != nil {
		t.Fatalf("subscribe gone: %v", err)
	}
	alive, err := svc.Subscribe(context.Background(), SubscribeInput{UserID: 2, Endpoint: "https://alive", P256dh: "p", Auth: "a"})
	if err != nil {
		t.Fatalf("subscribe alive: %v", err)
	}

	if err := svc.Sweep(context.Background(), now); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	if _, ok := repo.subscriptions[gone.ID]; ok {
		t.Fatalf("expected gone subscription purged")
	}
	if len(sender.sent) != 1 || sender.sent[0].subscriptionID != alive.ID {
		t.Fatalf("expected the healthy subscription still notified, got %+v", sender.sent)
	}
}

func TestSweepIsolatesSendFailures(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	tasks := &fakeTaskSource{todos: []todos.Todo{dueTodo(1, "Return keys", now.Add(time.Hour))}}
	repo := newFakePushRepo()
	sender := &fakeSender{errs: map[string]error{"https://flaky": errors.New("503")}}
	svc := newTestService(repo, tasks, sender)

	flaky, err := svc.Subscribe(context.Background(), SubscribeInput{UserID: 1, Endpoint: "https://flaky", P256dh: "p", Auth: "a"})
	if err != nil {
		t.Fatalf("subscribe flaky: %v", err)
	}
	if _, err := svc.Subscribe(context.Background(), SubscribeInput{UserID: 2, Endpoint: "https://ok", P256dh: "p", Auth: "a"}); err != nil {
		t.Fatalf("subscribe ok: %v", err)
	}

	if err := svc.Sweep(context.Background(), now); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected the healthy subscription notified, got %d sends", len(sender.sent))
	}
	// Nothing was delivered to the flaky endpoint, so its dedup stamp must
	// stay clear and the next sweep retries it.
	if repo.subscriptions[flaky.ID].LastNotified != nil {
		t.Fatalf("failed subscription must not be stamped")
	}
}

func TestSweepListFailureAborts(t *testing.T) {
	tasks := &fakeTaskSource{err: errors.New("db down")}
	svc := newTestService(newFakePushRepo(), tasks, &fakeSender{})

	if err := svc.Sweep(context.Background(), time.Now()); err == nil {
		t.Fatalf("expected sweep error")
	}
}
