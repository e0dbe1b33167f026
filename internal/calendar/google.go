// Package calendar bridges todos into Google Calendar. All calls are best
// effort from the caller's perspective: a failed sync never unwinds the todo
// that triggered it.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movein-app-go/internal/config"
	"movein-app-go/internal/domain/todos"
	userdomain "movein-app-go/internal/domain/user"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var ErrNoToken = errors.New("user has no calendar token")

type Client struct {
	oauth *oauth2.Config
}

func New(cfg config.GoogleConfig) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{gcal.CalendarEventsScope},
			Endpoint:     googleoauth.Endpoint,
		},
	}
}

// AuthCodeURL builds the consent-screen URL. Offline access so the refresh
// token survives past the first hour.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (c *Client) Exchange(ctx context.Context, code string) (userdomain.Tokens, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return userdomain.Tokens{}, fmt.Errorf("exchange code: %w", err)
	}

	tokens := userdomain.Tokens{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		tokens.Expiry = &expiry
	}
	return tokens, nil
}

// CreateEvent inserts an all-day event on the user's primary calendar for
// the todo's due date and returns the external event id.
func (c *Client) CreateEvent(ctx context.Context, owner *userdomain.User, todo todos.Todo) (string, error) {
	if owner == nil || !owner.HasCalendarToken() {
		return "", ErrNoToken
	}
	if todo.DueDate == nil {
		return "", errors.New("todo has no due date")
	}

	token := &oauth2.Token{AccessToken: *owner.AccessToken}
	if owner.RefreshToken != nil {
		token.RefreshToken = *owner.RefreshToken
	}
	if owner.TokenExpiry != nil {
		token.Expiry = *owner.TokenExpiry
	}

	service, err := gcal.NewService(ctx, option.WithTokenSource(c.oauth.TokenSource(ctx, token)))
	if err != nil {
		return "", fmt.Errorf("calendar service: %w", err)
	}

	day := todo.DueDate.Format("2006-01-02")
	nextDay := todo.DueDate.Add(24 * time.Hour).Format("2006-01-02")
	event := &gcal.Event{
		Summary:     todo.Title,
		Description: todo.Description,
		Start:       &gcal.EventDateTime{Date: day},
		End:         &gcal.EventDateTime{Date: nextDay},
	}

	created, err := service.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	return created.Id, nil
}
