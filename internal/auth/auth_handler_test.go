package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/auth"
	autherrors "github.com/kartikey1112/hrms-dashboard/internal/auth/errors"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	loginFn         func(ctx context.Context, email, password string) (auth.Session, error)
	signUpFn        func(ctx context.Context, req auth.SignUpRequest) (auth.SignUpResult, error)
	refreshFn       func(ctx context.Context, refreshToken string) (auth.Session, error)
	updateProfileFn func(ctx context.Context, accessToken, name string) (session.User, error)
	signedOut       []string
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (auth.Session, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) SignUp(ctx context.Context, req auth.SignUpRequest) (auth.SignUpResult, error) {
	return f.signUpFn(ctx, req)
}

func (f *fakeAuthService) Refresh(ctx context.Context, refreshToken string) (auth.Session, error) {
	return f.refreshFn(ctx, refreshToken)
}

func (f *fakeAuthService) UpdateProfile(ctx context.Context, accessToken, name string) (session.User, error) {
	return f.updateProfileFn(ctx, accessToken, name)
}

func (f *fakeAuthService) SignOut(_ context.Context, accessToken string) {
	f.signedOut = append(f.signedOut, accessToken)
}

const browserUA = "Mozilla/5.0 (X11; Linux x86_64)"

func newAuthRouter(svc auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := auth.NewHandler(svc, session.DefaultCookieName, false)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/signup", h.SignUp)
	r.POST("/api/auth/refresh", h.Refresh)
	r.POST("/api/auth/signout", h.SignOut)
	r.GET("/api/auth/me", func(c *gin.Context) {
		c.Request = c.Request.WithContext(session.WithUser(c.Request.Context(),
			session.User{ID: "u-1", Email: "a@acme.io", Name: "Ann"}))
	}, h.Me)
	r.PUT("/api/auth/profile", h.UpdateProfile)
	return r
}

func sampleSession() auth.Session {
	return auth.Session{
		AccessToken:  "at",
		RefreshToken: "rt",
		ExpiresAt:    time.Now().Add(time.Hour),
		User:         session.User{ID: "u-1", Email: "a@acme.io", Name: "Ann"},
	}
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHandler_Login(t *testing.T) {
	svc := &fakeAuthService{
		loginFn: func(ctx context.Context, email, password string) (auth.Session, error) {
			if password != "secret" {
				return auth.Session{}, autherrors.Provider(http.StatusBadRequest, "Invalid login credentials")
			}
			return sampleSession(), nil
		},
	}
	r := newAuthRouter(svc)

	t.Run("success - browser gets session cookies", func(t *testing.T) {
		body := []byte(`{"email":"a@acme.io","password":"secret"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", browserUA)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		c := cookieByName(w.Result(), session.DefaultCookieName)
		require.NotNil(t, c)
		assert.Equal(t, "at", c.Value)
		assert.True(t, c.HttpOnly)
		assert.NotNil(t, cookieByName(w.Result(), session.DefaultCookieName+"_refresh"))

		var got auth.SessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "Ann", got.User.Name)
	})

	t.Run("success - cli gets tokens only in body", func(t *testing.T) {
		body := []byte(`{"email":"a@acme.io","password":"secret"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-Type", "cli")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())

		var got auth.SessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "at", got.AccessToken)
		assert.Equal(t, "rt", got.RefreshToken)
	})

	t.Run("negative - wrong credentials", func(t *testing.T) {
		body := []byte(`{"email":"a@acme.io","password":"nope"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid login credentials")
	})

	t.Run("negative - invalid email", func(t *testing.T) {
		body := []byte(`{"email":"not-an-email","password":"secret"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_SignUp(t *testing.T) {
	t.Run("success - confirmation pending", func(t *testing.T) {
		svc := &fakeAuthService{
			signUpFn: func(ctx context.Context, req auth.SignUpRequest) (auth.SignUpResult, error) {
				return auth.SignUpResult{User: session.User{ID: "u-2", Email: req.Email, Name: req.Name}}, nil
			},
		}
		r := newAuthRouter(svc)

		body := []byte(`{"email":"b@acme.io","password":"secret","name":"Bo"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", browserUA)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var got auth.SignUpResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.True(t, got.ConfirmationRequired)
		assert.Equal(t, auth.ConfirmationMessage, got.Message)
		assert.Nil(t, got.Session)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("negative - short password", func(t *testing.T) {
		r := newAuthRouter(&fakeAuthService{})

		body := []byte(`{"email":"b@acme.io","password":"123"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Refresh_FromCookie(t *testing.T) {
	svc := &fakeAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (auth.Session, error) {
			assert.Equal(t, "rt-old", refreshToken)
			return sampleSession(), nil
		},
	}
	r := newAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("User-Agent", browserUA)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName + "_refresh", Value: "rt-old"})
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, cookieByName(w.Result(), session.DefaultCookieName))
}

func TestHandler_SignOut(t *testing.T) {
	svc := &fakeAuthService{}
	r := newAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
	req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: "at"})
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, []string{"at"}, svc.signedOut)

	c := cookieByName(w.Result(), session.DefaultCookieName)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
}

func TestHandler_SignOut_WithoutSessionStillRedirects(t *testing.T) {
	svc := &fakeAuthService{}
	r := newAuthRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []string{""}, svc.signedOut)
}

func TestHandler_MeAndProfile(t *testing.T) {
	svc := &fakeAuthService{
		updateProfileFn: func(ctx context.Context, accessToken, name string) (session.User, error) {
			assert.Equal(t, "at", accessToken)
			return session.User{ID: "u-1", Email: "a@acme.io", Name: name}, nil
		},
	}
	r := newAuthRouter(svc)

	t.Run("success - me", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var got auth.ProfileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "a@acme.io", got.Email)
	})

	t.Run("success - update name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/auth/profile", bytes.NewReader([]byte(`{"name":"Annie"}`)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer at")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Annie"`)
	})

	t.Run("negative - empty name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/auth/profile", bytes.NewReader([]byte(`{"name":""}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
