package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leavehub/internal/middleware"
	"go-leavehub/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/ping", func(c *gin.Context) {
		ctx := c.Request.Context()
		contextutil.GetLogger(ctx, nil).Info("handling ping")
		c.JSON(http.StatusOK, gin.H{"request_id": contextutil.GetRequestID(ctx)})
	})
	return r
}

func TestRequestID_HonorsIncomingHeader(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := zap.ReplaceGlobals(zap.New(core))
	defer prev()

	r := newRequestIDRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "rid-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rid-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, w.Body.String(), `"request_id":"rid-123"`)

	// The request-scoped logger carries the id on every entry.
	entries := logs.FilterMessage("handling ping").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "rid-123", entries[0].ContextMap()["request_id"])
	}
}

func TestRequestID_MintsWhenAbsent(t *testing.T) {
	r := newRequestIDRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
