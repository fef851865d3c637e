package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	signedOut   bool
	refreshed   bool
	profileName string
}

func (f *fakeAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var req auth.LoginRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Password != "secret" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"Invalid login credentials"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(auth.SessionResponse{
				User:         auth.ProfileResponse{ID: "u1", Email: req.Email},
				AccessToken:  "at-1",
				RefreshToken: "rt-1",
				ExpiresAt:    time.Now().Add(time.Hour),
			})
		case "/api/auth/refresh":
			f.refreshed = true
			_ = json.NewEncoder(w).Encode(auth.SessionResponse{
				AccessToken:  "at-2",
				RefreshToken: "rt-2",
				ExpiresAt:    time.Now().Add(time.Hour),
			})
		case "/api/auth/me":
			if r.Header.Get("Authorization") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(auth.ProfileResponse{ID: "u1", Email: "a@b.co", Name: "Ada"})
		case "/api/auth/profile":
			var req auth.UpdateProfileRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			f.profileName = req.Name
			_ = json.NewEncoder(w).Encode(auth.ProfileResponse{ID: "u1", Email: "a@b.co", Name: req.Name})
		case "/api/employees/options":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"options unavailable"}`))
		case "/api/auth/signout":
			f.signedOut = true
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			http.NotFound(w, r)
		}
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLoginWhoamiLogout(t *testing.T) {
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := run(t, "secret\n", "--config", path, "--server", srv.URL, "login", "--email", "a@b.co")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as a@b.co")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "at-1", cfg.AccessToken)
	assert.Equal(t, srv.URL, cfg.Server)

	out, err = run(t, "", "--config", path, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Name:  Ada")

	out, err = run(t, "", "--config", path, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")
	assert.True(t, api.signedOut)

	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.signedIn())
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer((&fakeAPI{}).handler(t))
	t.Cleanup(srv.Close)
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := run(t, "", "--config", path, "--server", srv.URL, "login", "--email", "a@b.co", "--password", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid login credentials")

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.signedIn())
}

func TestWhoami_NotSignedIn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := run(t, "", "--config", path, "whoami")
	assert.ErrorIs(t, err, errNotSignedIn)
}

func TestWhoami_RefreshesExpiredToken(t *testing.T) {
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, saveConfig(path, cliConfig{
		Server:       srv.URL,
		AccessToken:  "old",
		RefreshToken: "rt-0",
		ExpiresAt:    time.Now().Add(-time.Minute),
	}))

	_, err := run(t, "", "--config", path, "whoami")
	require.NoError(t, err)
	assert.True(t, api.refreshed)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "at-2", cfg.AccessToken)
	assert.Equal(t, "rt-2", cfg.RefreshToken)
}

func signedInConfig(t *testing.T, server string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, saveConfig(path, cliConfig{
		Server:      server,
		AccessToken: "at-1",
		ExpiresAt:   time.Now().Add(time.Hour),
	}))
	return path
}

func TestProfile(t *testing.T) {
	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)
	path := signedInConfig(t, srv.URL)

	t.Run("success updates the name", func(t *testing.T) {
		out, err := run(t, "", "--config", path, "profile", "--name", " Ada Lovelace ")
		require.NoError(t, err)
		assert.Contains(t, out, "Name updated to Ada Lovelace")
		assert.Equal(t, "Ada Lovelace", api.profileName)
	})

	t.Run("negative missing name", func(t *testing.T) {
		_, err := run(t, "", "--config", path, "profile")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--name is required")
	})
}

func TestEmployees_OptionsFailureStopsBeforeTUI(t *testing.T) {
	srv := httptest.NewServer((&fakeAPI{}).handler(t))
	t.Cleanup(srv.Close)
	path := signedInConfig(t, srv.URL)

	_, err := run(t, "", "--config", path, "employees")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load employee options")
	assert.Contains(t, err.Error(), "options unavailable")
}
