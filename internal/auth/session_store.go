package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/shared/apperror"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	sessionKeyPrefix = "session:"
	revokedKeyPrefix = "session:revoked:"
	defaultRevokeTTL = time.Hour
	lookupTimeout    = 10 * time.Second
)

// SessionStore resolves access tokens to users and remembers signed-out tokens.
type SessionStore interface {
	session.Resolver
	Forget(ctx context.Context, accessToken string)
	Revoke(ctx context.Context, accessToken string)
}

type sessionStore struct {
	provider  Provider
	rdb       *redis.Client
	ttl       time.Duration
	jwtSecret []byte
	sf        singleflight.Group
	logger    *zap.Logger
}

// NewSessionStore verifies tokens locally when jwtSecret is set and asks the
// provider otherwise, caching answers in Redis for ttl. rdb may be nil.
func NewSessionStore(provider Provider, rdb *redis.Client, ttl time.Duration, jwtSecret string, logger ...*zap.Logger) SessionStore {
	l := zap.L().Named("auth.session")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.session")
	}
	return &sessionStore{
		provider:  provider,
		rdb:       rdb,
		ttl:       ttl,
		jwtSecret: []byte(jwtSecret),
		logger:    l,
	}
}

func SessionCacheKey(accessToken string) string {
	return sessionKeyPrefix + tokenHash(accessToken)
}

func RevokedKey(accessToken string) string {
	return revokedKeyPrefix + tokenHash(accessToken)
}

func tokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *sessionStore) Resolve(ctx context.Context, accessToken string) (session.User, error) {
	if accessToken == "" {
		return session.User{}, session.ErrNoSession
	}

	if s.rdb != nil {
		n, err := s.rdb.Exists(ctx, RevokedKey(accessToken)).Result()
		if err != nil {
			s.logger.Warn("session revocation check failed", zap.Error(err))
		} else if n > 0 {
			return session.User{}, session.ErrInvalidSession
		}
	}

	if len(s.jwtSecret) > 0 {
		return s.verifyLocally(accessToken)
	}

	key := SessionCacheKey(accessToken)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var u session.User
			if json.Unmarshal([]byte(cached), &u) == nil {
				return u, nil
			}
		}
	}

	// The lookup is shared by every caller collapsed onto key, so it must not
	// die with the first caller's request.
	ch := s.sf.DoChan(key, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()

		u, err := s.provider.GetUser(lookupCtx, accessToken)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil && s.ttl > 0 {
			if raw, err := json.Marshal(u); err == nil {
				if err := s.rdb.Set(lookupCtx, key, raw, s.ttl).Err(); err != nil {
					s.logger.Warn("session cache write failed", zap.Error(err))
				}
			}
		}
		return u, nil
	})

	var (
		v   any
		err error
	)
	select {
	case res := <-ch:
		v, err = res.Val, res.Err
	case <-ctx.Done():
		return session.User{}, ctx.Err()
	}
	if err != nil {
		if isAuthRejection(err) {
			return session.User{}, session.ErrInvalidSession
		}
		return session.User{}, err
	}
	return v.(session.User), nil
}

type accessClaims struct {
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

func (s *sessionStore) verifyLocally(accessToken string) (session.User, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(accessToken, claims, func(*jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.Subject == "" {
		return session.User{}, session.ErrInvalidSession
	}
	return session.User{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.UserMetadata.Name,
	}, nil
}

// Forget drops the cached lookup so the next Resolve sees fresh metadata.
func (s *sessionStore) Forget(ctx context.Context, accessToken string) {
	if s.rdb == nil || accessToken == "" {
		return
	}
	if err := s.rdb.Del(ctx, SessionCacheKey(accessToken)).Err(); err != nil {
		s.logger.Warn("session cache delete failed", zap.Error(err))
	}
}

// Revoke makes the token unusable here until it would have expired anyway.
func (s *sessionStore) Revoke(ctx context.Context, accessToken string) {
	if s.rdb == nil || accessToken == "" {
		return
	}
	s.Forget(ctx, accessToken)
	if err := s.rdb.Set(ctx, RevokedKey(accessToken), "1", s.revokeTTL(accessToken)).Err(); err != nil {
		s.logger.Warn("session revoke failed", zap.Error(err))
	}
}

func (s *sessionStore) revokeTTL(accessToken string) time.Duration {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err == nil && claims.ExpiresAt != nil {
		if d := time.Until(claims.ExpiresAt.Time); d > 0 {
			return d
		}
	}
	return defaultRevokeTTL
}

func isAuthRejection(err error) bool {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus == http.StatusUnauthorized || appErr.HTTPStatus == http.StatusBadRequest
	}
	return false
}
