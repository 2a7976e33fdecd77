package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revtrack/internal/ledger"
)

type testServer struct {
	*httptest.Server
	ledgerHits int64
	statsHits  int64
}

// newTestServer serves just enough of the API for the client to exercise
// login, ledger reads, mutations and stats. The signed-in user's role comes
// from the login payload's username ("admin" opens an admin session).
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{}
	mux := http.NewServeMux()

	// Go 1.21's ServeMux has no method or {wildcard} patterns, so routes are
	// registered as plain paths with an explicit method check.
	handle := func(method, pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h(w, r)
		})
	}

	handle("POST", "/users/google-auth", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Email    string `json:"email"`
			Username string `json:"username"`
			GoogleID string `json:"google_id"`
		}
		json.NewDecoder(r.Body).Decode(&payload)

		role := "user"
		id := int64(7)
		if payload.Username == "admin" {
			role = "admin"
			id = 1
		}

		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"user":          map[string]any{"id": id, "email": payload.Email, "username": payload.Username, "role": role, "is_active": true},
				"token":         "access-" + role,
				"refresh_token": "refresh-" + role,
			},
		})
	})

	handle("GET", "/reviews/user/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&ts.ledgerHits, 1)
		json.NewEncoder(w).Encode(map[string]any{
			"data":               []any{},
			"total_business":     2,
			"total_review_count": 30,
			"page":               1,
			"limit":              20,
		})
	})

	handle("POST", "/reviews", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"id": 99, "business_id": 1, "user_id": 7, "review_count": 5},
		})
	})

	handle("GET", "/reviews/stats/all", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&ts.statsHits, 1)
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"total_users": 3, "total_entries": 12},
		})
	})

	handle("GET", "/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-admin" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "unauthorized", "status": 401})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}, "total": 0, "page": 1, "limit": 20})
	})

	handle("POST", "/users/logout", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"message": "logged out"}})
	})

	ts.Server = httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func login(t *testing.T, c *Client, username string) *User {
	t.Helper()
	user, err := c.Login(context.Background(), username+"@example.com", username, "google-"+username)
	require.NoError(t, err)
	return user
}

func TestForeignScopeRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)
	login(t, c, "worker")

	_, err := c.Ledger(context.Background(), ForUser(42), Filter{}, 0, 20)

	assert.True(t, IsKind(err, KindValidation))
	assert.EqualValues(t, 0, atomic.LoadInt64(&ts.ledgerHits), "rejected scope must not hit the server")
}

func TestAdminReadsForeignScope(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)
	login(t, c, "admin")

	page, err := c.Ledger(context.Background(), ForUser(42), Filter{}, 0, 20)

	require.NoError(t, err)
	assert.EqualValues(t, 30, page.TotalReviewCount)
	assert.EqualValues(t, 1, atomic.LoadInt64(&ts.ledgerHits))
}

func TestReversedBulkRangeNeverDispatches(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)
	login(t, c, "admin")

	_, err := c.MarkPaidRange(context.Background(), "2025-03-10", "2025-03-01")

	assert.True(t, IsKind(err, KindValidation))

	_, err = c.MarkPaidRange(context.Background(), "2025-03-01", "")
	assert.True(t, IsKind(err, KindValidation))
}

func TestCustomFilterRequiresBothBounds(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)
	login(t, c, "worker")

	_, err := c.Ledger(context.Background(), Self(), Filter{Type: "custom", StartDate: "2025-01-01"}, 0, 20)

	assert.True(t, IsKind(err, KindValidation))
	assert.EqualValues(t, 0, atomic.LoadInt64(&ts.ledgerHits))
}

func TestLedgerPagesAreCached(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)
	login(t, c, "worker")

	for i := 0; i < 3; i++ {
		_, err := c.Ledger(context.Background(), Self(), Filter{Type: "weekly"}, 0, 20)
		require.NoError(t, err)
	}

	assert.EqualValues(t, 1, atomic.LoadInt64(&ts.ledgerHits), "repeat reads should come from cache")
}

func TestMutationInvalidatesScope(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)
	login(t, c, "worker")

	_, err := c.Ledger(context.Background(), Self(), Filter{}, 0, 20)
	require.NoError(t, err)

	_, err = c.CreateReview(context.Background(), ReviewInput{BusinessID: 1, ReviewDate: "2025-06-01", ReviewCount: 5})
	require.NoError(t, err)

	_, err = c.Ledger(context.Background(), Self(), Filter{}, 0, 20)
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt64(&ts.ledgerHits), "mutation should force a fresh read")
}

func TestStatsCached(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)
	login(t, c, "admin")

	for i := 0; i < 2; i++ {
		stats, err := c.Stats(context.Background())
		require.NoError(t, err)
		assert.EqualValues(t, 3, stats.TotalUsers)
	}

	assert.EqualValues(t, 1, atomic.LoadInt64(&ts.statsHits))
}

func TestUnauthorizedClearsSession(t *testing.T) {
	ts := newTestServer(t)
	c := New(ts.URL)
	login(t, c, "worker")
	require.NotNil(t, c.CurrentUser())

	_, _, err := c.Users(context.Background(), 0, 20)

	assert.True(t, IsKind(err, KindUnauthorized))
	assert.Nil(t, c.CurrentUser(), "a 401 must close the session")
}

func TestPageTranslation(t *testing.T) {
	var gotPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		json.NewEncoder(w).Encode(map[string]any{"data": []any{}, "total": 0})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, _, err := c.Businesses(context.Background(), 0, 20)

	require.NoError(t, err)
	assert.Equal(t, "1", gotPage, "client page 0 is wire page 1")
}

// flakyTransport fails the first call, then hands off to the real transport.
type flakyTransport struct {
	failures int64
	next     http.RoundTripper
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if atomic.AddInt64(&f.failures, -1) >= 0 {
		return nil, errors.New("connection reset")
	}
	return f.next.RoundTrip(req)
}

func TestNetworkFailureRetriesOnce(t *testing.T) {
	ts := newTestServer(t)

	c := New(ts.URL, WithHTTPClient(&http.Client{
		Transport: &flakyTransport{failures: 1, next: http.DefaultTransport},
	}))
	login(t, c, "worker")

	_, err := c.Ledger(context.Background(), Self(), Filter{}, 0, 20)
	assert.NoError(t, err, "a single transient failure should be absorbed")
}

func TestTwoNetworkFailuresSurface(t *testing.T) {
	ts := newTestServer(t)

	c := New(ts.URL, WithHTTPClient(&http.Client{
		Transport: &flakyTransport{failures: 2, next: http.DefaultTransport},
	}))

	_, err := c.Login(context.Background(), "w@example.com", "worker", "google-w")
	assert.True(t, IsKind(err, KindNetwork))
}

func TestNoSettlementActionsFabricatedLocally(t *testing.T) {
	// The client must pass server-derived actions through untouched.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": 1, "review_count": 10, "is_paid": true, "paid_review_count": 7, "settlement_action": "pay_adjustment", "adjustment_delta": 3},
			},
			"total_review_count": 10,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.session.set(&User{ID: 7, Role: "user"}, "tok", "ref")

	page, err := c.Ledger(context.Background(), Self(), Filter{}, 0, 20)

	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, ledger.ActionPayAdjustment, page.Data[0].SettlementAction)
	assert.EqualValues(t, 3, page.Data[0].AdjustmentDelta)
}
