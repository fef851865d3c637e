package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/config"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	apperror.Init()
	gin.SetMode(gin.TestMode)

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" || r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u-1","email":"a@acme.io","user_metadata":{"name":"Ann"}}`))
	}))
	t.Cleanup(provider.Close)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	cfg := config.Config{
		ServiceURL:      provider.URL,
		PublicKey:       "anon",
		SessionCookie:   "hrms_session",
		SessionCacheTTL: time.Minute,
	}

	r := gin.New()
	require.NoError(t, registerModules(r, cfg, db, gormDB, nil, prometheus.NewRegistry(), zap.NewNop()))
	return r
}

func TestRegisterModules_Routing(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		cookie   string
		status   int
		location string
	}{
		{"negative - api without session", http.MethodGet, "/api/employees", "", "", http.StatusUnauthorized, ""},
		{"negative - api with rejected token", http.MethodGet, "/api/leaves", "bad", "", http.StatusUnauthorized, ""},
		{"success - api with bearer token", http.MethodGet, "/api/employees/options", "good", "", http.StatusOK, ""},
		{"success - me with cookie", http.MethodGet, "/api/auth/me", "", "good", http.StatusOK, ""},
		{"negative - dashboard without session", http.MethodGet, "/Dashboard", "", "", http.StatusTemporaryRedirect, "/"},
		{"negative - unknown dashboard page without session", http.MethodGet, "/dashboard/anything", "", "", http.StatusTemporaryRedirect, "/"},
		{"success - login page with session", http.MethodGet, "/", "", "good", http.StatusTemporaryRedirect, "/Dashboard"},
		{"success - login page without session", http.MethodGet, "/", "", "", http.StatusOK, ""},
		{"success - signout always redirects", http.MethodPost, "/api/auth/signout", "", "", http.StatusSeeOther, "/"},
		{"success - metrics", http.MethodGet, "/metrics", "", "", http.StatusOK, ""},
		{"success - healthz", http.MethodGet, "/healthz", "", "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "hrms_session", Value: tt.cookie})
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			}
		})
	}
}
