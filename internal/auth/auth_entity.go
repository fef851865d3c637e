package auth

import (
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/shared/session"
)

// Session is a signed-in provider session.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         session.User
}

// SignUpResult carries a session only when the provider confirms the
// address immediately.
type SignUpResult struct {
	User    session.User
	Session *Session
}

type providerUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
}

func (u providerUser) toUser() session.User {
	return session.User{ID: u.ID, Email: u.Email, Name: u.UserMetadata.Name}
}

type providerSession struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	User         providerUser `json:"user"`
}

func (s providerSession) toSession(now time.Time) Session {
	expiresAt := now.Add(time.Duration(s.ExpiresIn) * time.Second)
	if s.ExpiresAt > 0 {
		expiresAt = time.Unix(s.ExpiresAt, 0)
	}
	return Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    expiresAt,
		User:         s.User.toUser(),
	}
}
