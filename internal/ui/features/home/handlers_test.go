package home

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarterdeck-labs/quarterdeck/internal/ui/features"
)

func setupTestHandlers(t *testing.T) (*Handlers, *features.TestFixture) {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	handlers := NewHandlers(fixture.Source, fixture.SessionStore, fixture.Notifier, true)
	return handlers, fixture
}

func TestHomePage(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.HomePage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<title>Dashboard - Quarterdeck</title>")
	assert.Contains(t, body, `id="dashboard"`)
	// 25 fixture players, 2 banned, 12 objects
	assert.Contains(t, body, `<div class="value">25</div><div class="label">Players</div>`)
	assert.Contains(t, body, `<div class="value">2</div><div class="label">Banned</div>`)
	assert.Contains(t, body, `<div class="value">12</div><div class="label">Storage objects</div>`)
	assert.Contains(t, body, "Connected source:")
}

func TestBuildStats_CountsCollections(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	ctx := context.Background()

	stats, err := h.buildStats(ctx)
	require.NoError(t, err)

	objects, err := fixture.Source.ListObjects(ctx)
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for _, o := range objects {
		seen[o.Collection] = struct{}{}
	}
	assert.Equal(t, len(seen), stats.Collections)
	assert.Equal(t, len(objects), stats.ObjectCount)
}

func TestHomePageUpdates_PatchesOnBroadcast(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/updates", nil)

	ctx, cancel := context.WithTimeout(req.Context(), 300*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.HomePageUpdates(rec, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	fixture.Notifier.Broadcast()

	<-done

	body := rec.Body.String()
	assert.Contains(t, body, `id="dashboard"`)
	assert.GreaterOrEqual(t, strings.Count(body, "event:"), 1)
}

func TestHomePageUpdates_NoInitialSend(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/updates", nil)

	ctx, cancel := context.WithTimeout(req.Context(), 100*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.HomePageUpdates(rec, req)

	assert.NotContains(t, rec.Body.String(), "dashboard")
}
