package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	if _, err := s.repo.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created := User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	found, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return found, nil
}

// AttachTokens stores the OAuth token pair obtained from the Google consent
// flow on the user record.
func (s *Service) AttachTokens(ctx context.Context, userID int64, tokens Tokens) (*User, error) {
	found, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	found.AccessToken = &tokens.AccessToken
	if tokens.RefreshToken != "" {
		found.RefreshToken = &tokens.RefreshToken
	}
	found.TokenExpiry = tokens.Expiry

	if err := s.repo.UpdateUser(ctx, found); err != nil {
		return nil, err
	}

	return found, nil
}

// EnsureSeedUser creates the bootstrap user when the store holds no users
// yet. A blank password disables seeding.
func (s *Service) EnsureSeedUser(ctx context.Context, username, password string) error {
	if password == "" {
		return nil
	}

	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = s.Register(ctx, username, password)
	return err
}
