package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kartikey1112/hrms-dashboard/internal/middleware"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/x",
		func(c *gin.Context) { c.Set("user_id", "u-1") },
		middleware.ContextLogger(zap.New(core)),
		func(c *gin.Context) {
			ctx := c.Request.Context()
			contextutil.GetLogger(ctx, zap.NewNop()).Info("handled")
			c.String(http.StatusOK, contextutil.GetRequestID(ctx))
		},
	)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "rid-42")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, "rid-42", w.Body.String())
	assert.Equal(t, "rid-42", w.Header().Get("X-Request-ID"))

	entries := logs.FilterMessage("handled").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "rid-42", fields["request_id"])
		assert.Equal(t, "u-1", fields["user_id"])
	}
}
