package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeUsersRepo struct {
	users map[int64]*User
	seq   int64
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[int64]*User)}
}

func (r *fakeUsersRepo) GetUserByID(ctx context.Context, id int64) (*User, error) {
	found, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *found
	return &copied, nil
}

func (r *fakeUsersRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	for _, found := range r.users {
		if strings.EqualFold(found.Username, username) {
			copied := *found
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUsersRepo) CreateUser(ctx context.Context, created *User) error {
	r.seq++
	created.ID = r.seq
	created.CreatedAt = time.Now().UTC()
	stored := *created
	r.users[created.ID] = &stored
	return nil
}

func (r *fakeUsersRepo) UpdateUser(ctx context.Context, updated *User) error {
	if _, ok := r.users[updated.ID]; !ok {
		return ErrUserNotFound
	}
	stored := *updated
	r.users[updated.ID] = &stored
	return nil
}

func (r *fakeUsersRepo) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := NewService(repo)

	created, err := svc.Register(context.Background(), "sam", "hunter2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.PasswordHash == "hunter2" || created.PasswordHash == "" {
		t.Fatalf("password must be hashed")
	}

	authenticated, err := svc.Authenticate(context.Background(), "sam", "hunter2")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authenticated.ID != created.ID {
		t.Fatalf("expected user %d, got %d", created.ID, authenticated.ID)
	}

	if _, err := svc.Authenticate(context.Background(), "sam", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewService(newFakeUsersRepo())

	if _, err := svc.Register(context.Background(), "sam", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "SAM", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newFakeUsersRepo())

	if _, err := svc.Register(context.Background(), "  ", "x"); !errors.Is(err, ErrUsernameRequired) {
		t.Fatalf("expected ErrUsernameRequired, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "sam", ""); !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestAttachTokens(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := NewService(repo)

	created, err := svc.Register(context.Background(), "sam", "hunter2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.HasCalendarToken() {
		t.Fatalf("fresh user must not hold a token")
	}

	expiry := time.Now().Add(time.Hour).UTC()
	updated, err := svc.AttachTokens(context.Background(), created.ID, Tokens{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       &expiry,
	})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if !updated.HasCalendarToken() {
		t.Fatalf("expected token attached")
	}

	// A refreshed exchange may omit the refresh token; the stored one stays.
	second, err := svc.AttachTokens(context.Background(), created.ID, Tokens{AccessToken: "access2"})
	if err != nil {
		t.Fatalf("second attach: %v", err)
	}
	if second.RefreshToken == nil || *second.RefreshToken != "refresh" {
		t.Fatalf("expected refresh token preserved, got %v", second.RefreshToken)
	}
}

func TestEnsureSeedUser(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := NewService(repo)

	if err := svc.EnsureSeedUser(context.Background(), "admin", ""); err != nil {
		t.Fatalf("blank password must disable seeding, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("expected no users")
	}

	if err := svc.EnsureSeedUser(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected one user, got %d", len(repo.users))
	}

	// Second call with a populated store is a no-op.
	if err := svc.EnsureSeedUser(context.Background(), "admin2", "secret"); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected still one user, got %d", len(repo.users))
	}
}
