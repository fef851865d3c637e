package auth

import (
	"context"

	"github.com/kartikey1112/hrms-dashboard/internal/shared/contextutil"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/session"

	"go.uber.org/zap"
)

type Service interface {
	Login(ctx context.Context, email, password string) (Session, error)
	SignUp(ctx context.Context, req SignUpRequest) (SignUpResult, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	UpdateProfile(ctx context.Context, accessToken, name string) (session.User, error)
	SignOut(ctx context.Context, accessToken string)
}

type service struct {
	provider Provider
	store    SessionStore
	logger   *zap.Logger
}

func NewService(provider Provider, store SessionStore, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{provider: provider, store: store, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (Session, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	sess, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		log.Warn("login failed", zap.String("email", email), zap.Error(err))
		return Session{}, err
	}
	log.Info("login success", zap.String("user_id", sess.User.ID))
	return sess, nil
}

func (s *service) SignUp(ctx context.Context, req SignUpRequest) (SignUpResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	res, err := s.provider.SignUp(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		log.Warn("sign up failed", zap.String("email", req.Email), zap.Error(err))
		return SignUpResult{}, err
	}
	log.Info("sign up success",
		zap.String("user_id", res.User.ID),
		zap.Bool("confirmation_required", res.Session == nil),
	)
	return res, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	sess, err := s.provider.Refresh(ctx, refreshToken)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("refresh session failed", zap.Error(err))
		return Session{}, err
	}
	return sess, nil
}

func (s *service) UpdateProfile(ctx context.Context, accessToken, name string) (session.User, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	u, err := s.provider.UpdateName(ctx, accessToken, name)
	if err != nil {
		log.Error("update profile failed", zap.Error(err))
		return session.User{}, err
	}
	s.store.Forget(ctx, accessToken)
	log.Info("update profile success", zap.String("user_id", u.ID))
	return u, nil
}

// SignOut never fails from the caller's point of view: the token is revoked
// locally even when the provider cannot be reached.
func (s *service) SignOut(ctx context.Context, accessToken string) {
	log := contextutil.GetLogger(ctx, s.logger)
	if accessToken == "" {
		return
	}
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		log.Warn("provider sign out failed", zap.Error(err))
	}
	s.store.Revoke(ctx, accessToken)
	log.Info("sign out success")
}

func toProfile(u session.User) ProfileResponse {
	return ProfileResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func toSessionResponse(s Session) SessionResponse {
	return SessionResponse{
		User:         toProfile(s.User),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
	}
}
