package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/api/middleware"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/auth"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/domain/watchlist"
	watchlistservice "github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/service/watchlist"
)

// headerResolver treats the X-Test-User header as a signed-in user ID.
type headerResolver struct{}

func (headerResolver) GetSession(_ context.Context, headers http.Header) (*auth.Session, error) {
	userID := headers.Get("X-Test-User")
	if userID == "" {
		return nil, nil
	}
	return &auth.Session{
		Token:     "test-token",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      auth.User{ID: userID, Email: userID + "@example.com", Name: "Tester"},
	}, nil
}

type memRepo struct {
	items []watchlist.Item
}

func (r *memRepo) ListByUser(_ context.Context, userID string) ([]watchlist.Entry, error) {
	entries := []watchlist.Entry{}
	for _, it := range r.items {
		if it.UserID == userID {
			entries = append(entries, watchlist.Entry{Symbol: it.Symbol, Company: it.Company, AddedAt: it.AddedAt})
		}
	}
	return entries, nil
}

func (r *memRepo) ListSymbolsByUser(_ context.Context, userID string) ([]string, error) {
	symbols := []string{}
	for _, it := range r.items {
		if it.UserID == userID {
			symbols = append(symbols, it.Symbol)
		}
	}
	return symbols, nil
}

func (r *memRepo) Exists(_ context.Context, userID, symbol string) (bool, error) {
	for _, it := range r.items {
		if it.UserID == userID && it.Symbol == symbol {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) Insert(_ context.Context, item watchlist.Item) error {
	for _, it := range r.items {
		if it.UserID == item.UserID && it.Symbol == item.Symbol {
			return watchlist.ErrDuplicate
		}
	}
	r.items = append(r.items, item)
	return nil
}

func (r *memRepo) DeleteByUserSymbol(_ context.Context, userID, symbol string) error {
	kept := r.items[:0]
	for _, it := range r.items {
		if !(it.UserID == userID && it.Symbol == symbol) {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return nil
}

func newTestRouter(repo *memRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	resolver := headerResolver{}
	svc := watchlistservice.NewService(resolver, repo)
	h := NewWatchlistHandler(svc)

	r := gin.New()
	r.Use(middleware.RequestID())

	guarded := r.Group("/api/v1")
	guarded.Use(middleware.RequireSession(resolver))
	guarded.GET("/watchlist", h.List)
	guarded.POST("/watchlist", h.Add)
	guarded.DELETE("/watchlist/:symbol", h.Remove)

	return r
}

func TestWatchlistHandler_RequiresSession(t *testing.T) {
	r := newTestRouter(&memRepo{})

	t.Run("api client gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/watchlist", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Not authenticated")
	})

	t.Run("browser gets redirected to sign-in", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/watchlist", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, middleware.SignInPath, w.Header().Get("Location"))
	})
}

func TestWatchlistHandler_AddAndList(t *testing.T) {
	repo := &memRepo{}
	r := newTestRouter(repo)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/watchlist",
		strings.NewReader(`{"symbol":"aapl","company":"Apple Inc."}`))
	add.Header.Set("Content-Type", "application/json")
	add.Header.Set("X-Test-User", "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, add)
	require.Equal(t, http.StatusCreated, w.Code)

	list := httptest.NewRequest(http.MethodGet, "/api/v1/watchlist", nil)
	list.Header.Set("X-Test-User", "user-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, list)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"AAPL"`)
	assert.Contains(t, w.Body.String(), "Apple Inc.")
}

func TestWatchlistHandler_DuplicateAddConflicts(t *testing.T) {
	repo := &memRepo{}
	r := newTestRouter(repo)

	var last *httptest.ResponseRecorder
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/watchlist",
			strings.NewReader(`{"symbol":"TSLA","company":"Tesla"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-User", "user-1")
		last = httptest.NewRecorder()
		r.ServeHTTP(last, req)
		require.Equalf(t, want, last.Code, "attempt %d", i+1)
	}
	assert.Contains(t, last.Body.String(), "Already in watchlist")
}

func TestWatchlistHandler_InvalidBody(t *testing.T) {
	r := newTestRouter(&memRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/watchlist",
		strings.NewReader(`{"symbol":"AAPL"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWatchlistHandler_WhitespaceOnlyFieldsRejected(t *testing.T) {
	repo := &memRepo{}
	r := newTestRouter(repo)

	// Passes the required-field binding, fails normalization
	for _, body := range []string{
		`{"symbol":"   ","company":"Apple Inc."}`,
		`{"symbol":"AAPL","company":"   "}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/watchlist",
			strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Test-User", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equalf(t, http.StatusBadRequest, w.Code, "body %s", body)
	}
	assert.Empty(t, repo.items)
}

func TestWatchlistHandler_RemoveIsIdempotent(t *testing.T) {
	repo := &memRepo{items: []watchlist.Item{
		{ID: "1", UserID: "user-1", Symbol: "NVDA", Company: "NVIDIA", AddedAt: time.Now()},
	}}
	r := newTestRouter(repo)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/watchlist/NVDA", nil)
		req.Header.Set("X-Test-User", "user-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.Empty(t, repo.items)
}
