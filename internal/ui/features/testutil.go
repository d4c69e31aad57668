// Package features provides shared test utilities for UI feature tests.
package features

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/quarterdeck-labs/quarterdeck/internal/console/fixtures"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for UI handler tests.
type TestFixture struct {
	Source       console.Source
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	PageSize     int
}

// SetupTestFixture creates a complete test fixture backed by the embedded
// demo fixtures (25 players, 12 storage objects).
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	provider, err := fixtures.New("")
	require.NoError(t, err)

	return &TestFixture{
		Source:       provider,
		Notifier:     notifier.New(),
		SessionStore: NewTestSessionStore(),
		PageSize:     10,
	}
}

// NewTestSessionStore creates a session store for testing.
func NewTestSessionStore() *sessions.CookieStore {
	return sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!"))
}

// RequestWithPathParam wraps a request with chi URL params.
func RequestWithPathParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
