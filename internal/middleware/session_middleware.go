package middleware

import (
	"errors"
	"net/http"
	"strings"

	autherrors "github.com/kartikey1112/hrms-dashboard/internal/auth/errors"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/apperror"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/contextutil"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/response"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	LoginPath     = "/"
	DashboardPath = "/Dashboard"
)

type PathKind int

const (
	PathOther PathKind = iota
	PathPublic
	PathProtected
)

// ClassifyPath sorts a request path into the areas SessionGate handles.
func ClassifyPath(path string) PathKind {
	switch {
	case strings.HasPrefix(path, "/dashboard"), strings.HasPrefix(path, "/Dashboard"):
		return PathProtected
	case path == "/", strings.HasPrefix(path, "/login"):
		return PathPublic
	default:
		return PathOther
	}
}

// RequireSession guards API routes: without a live session the request ends
// with 401 JSON.
func RequireSession(resolver session.Resolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := session.TokenFromRequest(c.Request, cookieName)
		u, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			appErr := sessionError(err)
			httpErr := apperror.ToHTTP(appErr)
			response.Abort(c, httpErr.Status, httpErr.Code, httpErr.Message)
			return
		}

		setUser(c, u)
		c.Next()
	}
}

// SessionGate redirects page requests: signed out users are sent from the
// dashboard to the login page and signed in users from the login page to the
// dashboard. Lookup failures count as signed out.
func SessionGate(resolver session.Resolver, cookieName string, logger ...*zap.Logger) gin.HandlerFunc {
	l := zap.L().Named("middleware.session_gate")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("middleware.session_gate")
	}

	return func(c *gin.Context) {
		kind := ClassifyPath(c.Request.URL.Path)
		if kind == PathOther {
			c.Next()
			return
		}

		signedIn := false
		if token := session.TokenFromRequest(c.Request, cookieName); token != "" {
			u, err := resolver.Resolve(c.Request.Context(), token)
			switch {
			case err == nil:
				signedIn = true
				setUser(c, u)
			case !errors.Is(err, session.ErrInvalidSession):
				l.Warn("session lookup failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
			}
		}

		switch {
		case kind == PathProtected && !signedIn:
			c.Redirect(http.StatusTemporaryRedirect, LoginPath)
			c.Abort()
		case kind == PathPublic && signedIn:
			c.Redirect(http.StatusTemporaryRedirect, DashboardPath)
			c.Abort()
		default:
			c.Next()
		}
	}
}

func setUser(c *gin.Context, u session.User) {
	c.Set("user_id", u.ID)
	ctx := session.WithUser(c.Request.Context(), u)
	ctx = contextutil.WithUserID(ctx, u.ID)
	c.Request = c.Request.WithContext(ctx)
}

func sessionError(err error) error {
	switch {
	case errors.Is(err, session.ErrNoSession):
		return autherrors.ErrNoSession
	case errors.Is(err, session.ErrInvalidSession):
		return autherrors.ErrInvalidSession
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Wrap(err, autherrors.ErrProviderUnavailable.Code,
		autherrors.ErrProviderUnavailable.Message, autherrors.ErrProviderUnavailable.HTTPStatus)
}
