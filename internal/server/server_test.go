package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrelay/internal/docs"
	"docrelay/internal/oauth"
)

// fakeGoogle serves a token endpoint and a documents endpoint.
type fakeGoogle struct {
	*httptest.Server

	tokenCalls atomic.Int32
	grants     []string

	mu            sync.Mutex
	docTokens     []string
	refreshStatus int
	refreshResp   string
}

func newFakeGoogle(t *testing.T) *fakeGoogle {
	t.Helper()
	g := &fakeGoogle{
		refreshStatus: http.StatusOK,
		refreshResp:   `{"access_token":"AT2","expires_in":3600}`,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		g.tokenCalls.Add(1)
		_ = r.ParseForm()
		g.mu.Lock()
		g.grants = append(g.grants, r.PostForm.Get("grant_type"))
		refreshStatus, refreshResp := g.refreshStatus, g.refreshResp
		g.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.PostForm.Get("grant_type") {
		case "authorization_code":
			if r.PostForm.Get("code") != "C1" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, `{"error":"invalid_grant","error_description":"Bad Request"}`)
				return
			}
			_, _ = io.WriteString(w, `{"access_token":"AT1","refresh_token":"RT1","expires_in":3600}`)
		case "refresh_token":
			if r.PostForm.Get("refresh_token") != "RT1" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, `{"error":"invalid_grant"}`)
				return
			}
			w.WriteHeader(refreshStatus)
			_, _ = io.WriteString(w, refreshResp)
		}
	})
	mux.HandleFunc("/v1/documents/", func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		g.docTokens = append(g.docTokens, r.Header.Get("Authorization"))
		g.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"documentId":%q}`, r.URL.Path[len("/v1/documents/"):])
	})
	g.Server = httptest.NewServer(mux)
	t.Cleanup(g.Close)
	return g
}

// answerRefreshWith changes the response to subsequent refresh grants.
func (g *fakeGoogle) answerRefreshWith(status int, body string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refreshStatus = status
	g.refreshResp = body
}

func (g *fakeGoogle) grantTypes() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.grants...)
}

func (g *fakeGoogle) docCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.docTokens)
}

func (g *fakeGoogle) lastDocToken() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.docTokens) == 0 {
		return ""
	}
	return g.docTokens[len(g.docTokens)-1]
}

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newRelay(t *testing.T, google *fakeGoogle, clock *stepClock) (http.Handler, *oauth.TokenStore) {
	t.Helper()
	client := oauth.NewClient(oauth.ClientConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:5173/auth/google/callback",
		TokenURL:     google.URL + "/token",
		Now:          clock.Now,
	})
	store := oauth.NewTokenStore()
	manager := oauth.NewManager(store, client, oauth.WithClock(clock.Now))
	documents := docs.NewClient(google.URL+"/v1", nil)

	return NewRouter(RouterConfig{Tokens: manager, Documents: documents, Users: store}), store
}

func TestRelay_EndToEnd(t *testing.T) {
	google := newFakeGoogle(t)
	clock := &stepClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	router, store := newRelay(t, google, clock)

	// Authenticate: one exchange.
	rec := doRequest(t, router, "POST", "/auth/google", `{"code":"C1","userId":"u1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{
		"message": "Authentication successful",
		"tokens": {"accessToken":"AT1","refreshToken":"RT1","expiresAt":"2026-03-01T11:00:00Z"}
	}`, rec.Body.String())
	assert.Equal(t, int32(1), google.tokenCalls.Load())

	// Cheap path: no token call, AT1 used downstream.
	rec = doRequest(t, router, "GET", "/google-doc?documentId=D1&userId=u1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Google Doc fetched successfully","data":{"documentId":"D1"}}`, rec.Body.String())
	assert.Equal(t, "Bearer AT1", google.lastDocToken())
	assert.Equal(t, int32(1), google.tokenCalls.Load())

	// Expired: exactly one refresh, AT2 used, RT1 preserved.
	clock.Advance(time.Hour + time.Second)
	rec = doRequest(t, router, "GET", "/google-doc?documentId=D1&userId=u1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Bearer AT2", google.lastDocToken())
	assert.Equal(t, int32(2), google.tokenCalls.Load())
	assert.Equal(t, []string{"authorization_code", "refresh_token"}, google.grantTypes())

	record, ok := store.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "AT2", record.AccessToken)
	assert.Equal(t, "RT1", record.RefreshToken)
	assert.Equal(t, clock.Now().Add(time.Hour), record.ExpiresAt)

	// Expired again, refresh rejected: provider status and payload are
	// relayed, the stored record is kept and no document call is made.
	rejection := `{"error":"invalid_grant","error_description":"Token has been expired or revoked."}`
	google.answerRefreshWith(http.StatusForbidden, rejection)
	docCalls := google.docCalls()
	clock.Advance(time.Hour + time.Second)
	rec = doRequest(t, router, "GET", "/google-doc?documentId=D1&userId=u1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_grant","details":`+rejection+`}`, rec.Body.String())
	assert.Equal(t, int32(3), google.tokenCalls.Load())
	assert.Equal(t, docCalls, google.docCalls())

	unchanged, ok := store.Get("u1")
	require.True(t, ok)
	assert.Equal(t, record, unchanged)

	rec = doRequest(t, router, "GET", "/health", "")
	assert.JSONEq(t, `{"status":"ok","users":1}`, rec.Body.String())
}

func TestRelay_UnknownUser(t *testing.T) {
	google := newFakeGoogle(t)
	clock := &stepClock{now: time.Now()}
	router, _ := newRelay(t, google, clock)

	rec := doRequest(t, router, "GET", "/google-doc?documentId=D1&userId=nobody", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, int32(0), google.tokenCalls.Load())
	assert.Empty(t, google.lastDocToken())
}

func TestRelay_ExchangeRejected(t *testing.T) {
	google := newFakeGoogle(t)
	clock := &stepClock{now: time.Now()}
	router, store := newRelay(t, google, clock)

	rec := doRequest(t, router, "POST", "/auth/google", `{"code":"wrong","userId":"u1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_grant"}`, rec.Body.String())
	assert.Equal(t, 0, store.Count())
}

func TestRelay_RefreshRejected(t *testing.T) {
	google := newFakeGoogle(t)
	clock := &stepClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	router, store := newRelay(t, google, clock)

	prior := oauth.TokenRecord{AccessToken: "AT0", RefreshToken: "revoked", ExpiresAt: clock.Now().Add(-time.Minute)}
	store.Set("u1", prior)

	rec := doRequest(t, router, "GET", "/google-doc?documentId=D1&userId=u1", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_grant","details":{"error":"invalid_grant"}}`, rec.Body.String())
	record, _ := store.Get("u1")
	assert.Equal(t, prior, record)
	assert.Empty(t, google.lastDocToken())
}

func TestHTTPServer_ServeAndShutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewHTTPServer(newTestRouter(&fakeTokens{}, &fakeDocuments{}))
	done := make(chan error, 1)
	go func() { done <- srv.Serve(listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.NoError(t, <-done)
}
