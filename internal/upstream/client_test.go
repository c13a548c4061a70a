package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoAttachesBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"u1","display_name":"Sam"}}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	user, err := c.Me(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if user.ID != "u1" || user.DisplayName != "Sam" {
		t.Fatalf("user = %+v", user)
	}
}

func TestDoPrefixesAPIPath(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := New(ts.URL + "/") // trailing slash must not double up
	_, err := c.Meals(context.Background(), "tok", "7d")
	if err != nil {
		t.Fatalf("meals: %v", err)
	}
	if gotPath != "/api/meals" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotQuery != "range=7d" {
		t.Fatalf("query = %q", gotQuery)
	}
}

func TestDoUnauthorizedFiresHook(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := New(ts.URL)
		hookCalled := false
		c.OnUnauthorized = func(ctx context.Context) { hookCalled = true }

		_, err := c.Kpis(context.Background(), "stale", "7d")
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("status %d: err = %v, want ErrUnauthorized", status, err)
		}
		if !hookCalled {
			t.Fatalf("status %d: hook not called", status)
		}
		ts.Close()
	}
}

func TestDoOtherStatusIsAPIError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := New(ts.URL)
	hookCalled := false
	c.OnUnauthorized = func(ctx context.Context) { hookCalled = true }

	_, err := c.Goals(context.Background(), "tok")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d", apiErr.Status)
	}
	if hookCalled {
		t.Fatal("non-auth failure must not fire the unauthorized hook")
	}
}

func TestVerifyTokenIsUnauthenticated(t *testing.T) {
	t.Parallel()

	var gotAuth, gotMethod string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"session_token":"sess-tok","user":{"id":"u1","display_name":"Sam"}}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	token, user, err := c.VerifyToken(context.Background(), "one-time")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("verify must not send Authorization, got %q", gotAuth)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("method = %q", gotMethod)
	}
	if token != "sess-tok" || user.ID != "u1" {
		t.Fatalf("token=%q user=%+v", token, user)
	}
}

func TestUpdateLogEscapesID(t *testing.T) {
	t.Parallel()

	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := New(ts.URL)
	err := c.UpdateLog(context.Background(), "tok", "meal", "id with space", map[string]int{"calories": 1})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotPath != "/api/log/meal/id%20with%20space" {
		t.Fatalf("path = %q", gotPath)
	}
}

func TestDoHonorsContextCancel(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	c := New(ts.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Dates(ctx, "tok", "7d")
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
