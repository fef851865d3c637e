package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	autherrors "github.com/kartikey1112/hrms-dashboard/internal/auth/errors"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/apperror"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/session"

	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_provider.go -destination=mock/auth_provider_mock.go -package=mock
type Provider interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignUp(ctx context.Context, email, password, name string) (SignUpResult, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	GetUser(ctx context.Context, accessToken string) (session.User, error)
	SignOut(ctx context.Context, accessToken string) error
	UpdateName(ctx context.Context, accessToken, name string) (session.User, error)
}

// goTrueProvider talks to a GoTrue compatible auth API mounted at
// <project url>/auth/v1.
type goTrueProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	now     func() time.Time
	logger  *zap.Logger
}

func NewProvider(projectURL, apiKey string, client *http.Client, logger ...*zap.Logger) Provider {
	l := zap.L().Named("auth.provider")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.provider")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &goTrueProvider{
		baseURL: strings.TrimRight(projectURL, "/") + "/auth/v1",
		apiKey:  apiKey,
		client:  client,
		now:     time.Now,
		logger:  l,
	}
}

func (p *goTrueProvider) SignIn(ctx context.Context, email, password string) (Session, error) {
	var out providerSession
	body := map[string]string{"email": email, "password": password}
	if err := p.do(ctx, http.MethodPost, "/token?grant_type=password", "", body, &out); err != nil {
		return Session{}, err
	}
	return out.toSession(p.now()), nil
}

func (p *goTrueProvider) SignUp(ctx context.Context, email, password, name string) (SignUpResult, error) {
	body := map[string]any{"email": email, "password": password}
	if name != "" {
		body["data"] = map[string]string{"name": name}
	}

	// With autoconfirm on the answer is a session, otherwise the bare user.
	var out struct {
		providerSession
		providerUser
	}
	if err := p.do(ctx, http.MethodPost, "/signup", "", body, &out); err != nil {
		return SignUpResult{}, err
	}

	if out.AccessToken != "" {
		s := out.providerSession.toSession(p.now())
		return SignUpResult{User: s.User, Session: &s}, nil
	}
	return SignUpResult{User: out.providerUser.toUser()}, nil
}

func (p *goTrueProvider) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	var out providerSession
	body := map[string]string{"refresh_token": refreshToken}
	if err := p.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", body, &out); err != nil {
		return Session{}, err
	}
	return out.toSession(p.now()), nil
}

func (p *goTrueProvider) GetUser(ctx context.Context, accessToken string) (session.User, error) {
	var out providerUser
	if err := p.do(ctx, http.MethodGet, "/user", accessToken, nil, &out); err != nil {
		return session.User{}, err
	}
	return out.toUser(), nil
}

func (p *goTrueProvider) SignOut(ctx context.Context, accessToken string) error {
	return p.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}

func (p *goTrueProvider) UpdateName(ctx context.Context, accessToken, name string) (session.User, error) {
	var out providerUser
	body := map[string]any{"data": map[string]string{"name": name}}
	if err := p.do(ctx, http.MethodPut, "/user", accessToken, body, &out); err != nil {
		return session.User{}, err
	}
	return out.toUser(), nil
}

func (p *goTrueProvider) do(ctx context.Context, method, path, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", p.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("auth provider request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return apperror.Wrap(err, autherrors.ErrProviderUnavailable.Code,
			autherrors.ErrProviderUnavailable.Message, autherrors.ErrProviderUnavailable.HTTPStatus)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg := providerMessage(resp.Body)
		p.logger.Warn("auth provider rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return autherrors.Provider(resp.StatusCode, msg)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode auth provider response: %w", err)
	}
	return nil
}

// providerMessage picks the human readable part of the error payload. GoTrue
// versions disagree on the field name.
func providerMessage(r io.Reader) string {
	var payload struct {
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Error            string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&payload); err != nil {
		return ""
	}
	for _, m := range []string{payload.ErrorDescription, payload.Msg, payload.Message, payload.Error} {
		if m != "" {
			return m
		}
	}
	return ""
}
