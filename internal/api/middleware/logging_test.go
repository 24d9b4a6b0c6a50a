package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogging_AccessLoggerReceivesRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	accessLogger := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestID())
	r.Use(Logging(LoggingConfig{
		AccessLogger: &accessLogger,
		SkipPaths:    []string{"/health"},
	}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	logged := buf.String()
	assert.Contains(t, logged, `"path":"/ping"`)
	assert.Contains(t, logged, `"status":200`)
	assert.Contains(t, logged, "Request completed")
}

func TestLogging_SkipPathsStayQuiet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	accessLogger := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestID())
	r.Use(Logging(LoggingConfig{
		AccessLogger: &accessLogger,
		SkipPaths:    []string{"/health"},
	}))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, buf.String())
}
