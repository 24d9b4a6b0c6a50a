package watchlist_test

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/auth"
	domain "github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/domain/watchlist"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/service/watchlist"
)

// fakeResolver maps a header value to a session, standing in for the
// auth engine.
type fakeResolver struct {
	sessions map[string]*auth.Session
	err      error
}

func (f *fakeResolver) GetSession(_ context.Context, headers http.Header) (*auth.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[headers.Get("X-Test-User")], nil
}

// fakeRepo is an in-memory watchlist.Repository enforcing the
// (user_id, symbol) uniqueness invariant.
type fakeRepo struct {
	mu    sync.Mutex
	items map[string][]domain.Item // by user id
	fail  error                    // when set, every call fails
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string][]domain.Item)}
}

func (r *fakeRepo) ListByUser(_ context.Context, userID string) ([]domain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	entries := []domain.Entry{}
	for _, it := range r.items[userID] {
		entries = append(entries, domain.Entry{Symbol: it.Symbol, Company: it.Company, AddedAt: it.AddedAt})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].AddedAt.Before(entries[j].AddedAt) })
	return entries, nil
}

func (r *fakeRepo) ListSymbolsByUser(_ context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return nil, r.fail
	}
	symbols := []string{}
	for _, it := range r.items[userID] {
		symbols = append(symbols, it.Symbol)
	}
	return symbols, nil
}

func (r *fakeRepo) Exists(_ context.Context, userID, symbol string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return false, r.fail
	}
	for _, it := range r.items[userID] {
		if it.Symbol == symbol {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Insert(_ context.Context, item domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	for _, it := range r.items[item.UserID] {
		if it.Symbol == item.Symbol {
			return domain.ErrDuplicate
		}
	}
	r.items[item.UserID] = append(r.items[item.UserID], item)
	return nil
}

func (r *fakeRepo) DeleteByUserSymbol(_ context.Context, userID, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	kept := r.items[userID][:0]
	for _, it := range r.items[userID] {
		if it.Symbol != symbol {
			kept = append(kept, it)
		}
	}
	r.items[userID] = kept
	return nil
}

func sessionFor(id, name, email string) *auth.Session {
	return &auth.Session{User: auth.User{ID: id, Name: name, Email: email}}
}

func headersFor(user string) http.Header {
	h := http.Header{}
	h.Set("X-Test-User", user)
	return h
}

func newTestService() (*watchlist.Service, *fakeRepo) {
	repo := newFakeRepo()
	resolver := &fakeResolver{sessions: map[string]*auth.Session{
		"alice": sessionFor("u-alice", "Alice", "alice@example.com"),
		"bob":   sessionFor("u-bob", "Bob", "bob@example.com"),
	}}
	return watchlist.NewService(resolver, repo), repo
}

func TestService_AddThenList(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	res := svc.Add(ctx, headersFor("alice"), "aapl", " Apple Inc. ")
	require.True(t, res.Success, res.Error)

	items := svc.ListItems(ctx, headersFor("alice"))
	require.Len(t, items, 1)
	assert.Equal(t, "AAPL", items[0].Symbol)
	assert.Equal(t, "Apple Inc.", items[0].Company)
}

func TestService_DuplicateAdd(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	res := svc.Add(ctx, headersFor("alice"), "aapl", "Apple Inc.")
	require.True(t, res.Success)

	res = svc.Add(ctx, headersFor("alice"), "AAPL", "Apple Inc.")
	assert.False(t, res.Success)
	assert.Equal(t, "Already in watchlist", res.Error)

	assert.Len(t, svc.ListItems(ctx, headersFor("alice")), 1)
}

// A racing insert that slips past the existence pre-check surfaces the
// constraint violation, which must map to the same friendly message.
func TestService_DuplicateAddViaConstraint(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	resolver := &fakeResolver{sessions: map[string]*auth.Session{
		"alice": sessionFor("u-alice", "Alice", "alice@example.com"),
	}}
	svc := watchlist.NewService(resolver, &racingRepo{fakeRepo: repo})

	res := svc.Add(ctx, headersFor("alice"), "AAPL", "Apple Inc.")
	assert.False(t, res.Success)
	assert.Equal(t, "Already in watchlist", res.Error)
}

// racingRepo reports the row as absent but fails the insert with
// ErrDuplicate, simulating a concurrent add between check and insert.
type racingRepo struct {
	*fakeRepo
}

func (r *racingRepo) Exists(context.Context, string, string) (bool, error) {
	return false, nil
}

func (r *racingRepo) Insert(context.Context, domain.Item) error {
	return domain.ErrDuplicate
}

func TestService_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	res := svc.Remove(ctx, headersFor("alice"), "AAPL")
	assert.True(t, res.Success)
	assert.Empty(t, res.Error)

	svc.Add(ctx, headersFor("alice"), "AAPL", "Apple Inc.")
	res = svc.Remove(ctx, headersFor("alice"), "aapl")
	assert.True(t, res.Success)
	assert.Empty(t, svc.ListItems(ctx, headersFor("alice")))
}

func TestService_CrossUserIsolation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	require.True(t, svc.Add(ctx, headersFor("alice"), "AAPL", "Apple Inc.").Success)
	require.True(t, svc.Add(ctx, headersFor("bob"), "MSFT", "Microsoft").Success)

	aliceItems := svc.ListItems(ctx, headersFor("alice"))
	require.Len(t, aliceItems, 1)
	assert.Equal(t, "AAPL", aliceItems[0].Symbol)

	// Bob removing Alice's symbol must not touch her row
	svc.Remove(ctx, headersFor("bob"), "AAPL")
	assert.Len(t, svc.ListItems(ctx, headersFor("alice")), 1)

	// Bob adding the same symbol is not a duplicate
	assert.True(t, svc.Add(ctx, headersFor("bob"), "AAPL", "Apple Inc.").Success)
}

func TestService_Unauthenticated(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	anon := http.Header{}

	res := svc.Add(ctx, anon, "AAPL", "Apple Inc.")
	assert.False(t, res.Success)
	assert.Equal(t, "Not authenticated", res.Error)

	res = svc.Remove(ctx, anon, "AAPL")
	assert.False(t, res.Success)
	assert.Equal(t, "Not authenticated", res.Error)

	assert.Empty(t, svc.ListItems(ctx, anon))
	assert.Empty(t, svc.ListSymbolsByEmail(ctx, anon, "alice@example.com"))
}

func TestService_SessionFaultDegrades(t *testing.T) {
	ctx := context.Background()
	resolver := &fakeResolver{err: errors.New("database unreachable")}
	svc := watchlist.NewService(resolver, newFakeRepo())

	res := svc.Add(ctx, headersFor("alice"), "AAPL", "Apple Inc.")
	assert.False(t, res.Success)
	assert.Equal(t, "Not authenticated", res.Error)

	assert.Empty(t, svc.ListItems(ctx, headersFor("alice")))
}

func TestService_ListSymbolsByEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	require.True(t, svc.Add(ctx, headersFor("alice"), "AAPL", "Apple Inc.").Success)
	require.True(t, svc.Add(ctx, headersFor("alice"), "MSFT", "Microsoft").Success)

	t.Run("matching email", func(t *testing.T) {
		symbols := svc.ListSymbolsByEmail(ctx, headersFor("alice"), "alice@example.com")
		assert.ElementsMatch(t, []string{"AAPL", "MSFT"}, symbols)
	})

	t.Run("mismatched email", func(t *testing.T) {
		// Bob's email belongs to a real user, but the session is Alice's
		symbols := svc.ListSymbolsByEmail(ctx, headersFor("alice"), "bob@example.com")
		assert.Empty(t, symbols)
	})

	t.Run("empty email", func(t *testing.T) {
		assert.Empty(t, svc.ListSymbolsByEmail(ctx, headersFor("alice"), ""))
	})
}

func TestService_RepoFaultDegrades(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.fail = errors.New("connection reset")
	resolver := &fakeResolver{sessions: map[string]*auth.Session{
		"alice": sessionFor("u-alice", "Alice", "alice@example.com"),
	}}
	svc := watchlist.NewService(resolver, repo)

	assert.Empty(t, svc.ListItems(ctx, headersFor("alice")))
	assert.Empty(t, svc.ListSymbolsByEmail(ctx, headersFor("alice"), "alice@example.com"))

	res := svc.Add(ctx, headersFor("alice"), "AAPL", "Apple Inc.")
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to add to watchlist", res.Error)

	res = svc.Remove(ctx, headersFor("alice"), "AAPL")
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to remove from watchlist", res.Error)
}
