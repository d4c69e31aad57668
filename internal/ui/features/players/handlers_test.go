package players

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

	handlers := NewHandlers(
		fixture.Source,
		fixture.SessionStore,
		fixture.Notifier,
		fixture.PageSize,
		true, // isDev
	)

	return handlers, fixture
}

func TestPage(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/players", nil)
	rec := httptest.NewRecorder()

	h.Page(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, "<title>Players - Quarterdeck</title>")
	assert.Contains(t, body, `id="players-grid"`)
	assert.Contains(t, body, `id="player-detail"`)
	assert.Contains(t, body, "/players/updates")

	// First page of the demo fixtures, creation order
	assert.Contains(t, body, "frostbyte")
	// Fixture 25 players, page size 10: page 2+ content absent
	assert.Contains(t, body, "Page 1 of 3")
}

func TestGridFragment_Search(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/players/grid",
		strings.NewReader(`{"query": "admin", "page": 1, "selected": ""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.GridFragment(rec, req)

	body := rec.Body.String()
	// Case-insensitive substring match across username and display name
	assert.Contains(t, body, "admin")
	assert.Contains(t, body, "adminbot")
	assert.Contains(t, body, "superadmin")
	assert.NotContains(t, body, "frostbyte")
	assert.Contains(t, body, "Page 1 of 1")
}

func TestGridFragment_QueryMatchingNothing(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/players/grid",
		strings.NewReader(`{"query": "zzzz-no-such-player", "page": 1, "selected": ""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.GridFragment(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "No players found")
	assert.NotContains(t, body, "<tbody>")
}

func TestGridFragment_PageClamped(t *testing.T) {
	h, _ := setupTestHandlers(t)

	// 25 players, page size 10: page 999 clamps to 3
	req := httptest.NewRequest(http.MethodPost, "/api/players/grid",
		strings.NewReader(`{"query": "", "page": 999, "selected": ""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.GridFragment(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "Page 3 of 3")
	// The clamped page is synced back into the signals
	assert.Contains(t, body, `"page":3`)
}

func TestOpen_RendersDetailAndSelection(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	players, err := fixture.Source.ListPlayers(context.Background())
	require.NoError(t, err)
	target := players[1] // "admin"

	req := httptest.NewRequest(http.MethodGet, "/api/players/"+target.ID, nil)
	req = features.RequestWithPathParam(req, "id", target.ID)
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, `id="player-detail"`)
	assert.Contains(t, body, target.Username)
	assert.Contains(t, body, `class="selected"`)
	assert.Contains(t, body, `"selected":"`+target.ID+`"`)
}

func TestOpen_UnknownIDReportsError(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/players/nope", nil)
	req = features.RequestWithPathParam(req, "id", "nope")
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "console.error")
	assert.NotContains(t, body, `id="player-detail"`)
}

func TestOpen_RespectsActiveFilter(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	players, err := fixture.Source.ListPlayers(context.Background())
	require.NoError(t, err)
	target := players[0] // "frostbyte", filtered out by the query below

	req := httptest.NewRequest(http.MethodGet,
		"/api/players/"+target.ID+"?datastar="+`{"query":"admin","page":1,"selected":""}`, nil)
	req = features.RequestWithPathParam(req, "id", target.ID)
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	assert.Contains(t, rec.Body.String(), "console.error")
}

func TestBanUnban(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	ctx := context.Background()

	players, err := fixture.Source.ListPlayers(ctx)
	require.NoError(t, err)
	target := players[0]
	require.False(t, target.Banned)

	// Ban
	req := httptest.NewRequest(http.MethodPost, "/api/players/"+target.ID+"/ban",
		strings.NewReader(`{"query": "", "page": 1, "selected": ""}`))
	req.Header.Set("Content-Type", "application/json")
	req = features.RequestWithPathParam(req, "id", target.ID)
	rec := httptest.NewRecorder()

	h.Ban(rec, req)

	updated, err := fixture.Source.GetPlayer(ctx, target.ID)
	require.NoError(t, err)
	assert.True(t, updated.Banned)
	assert.Contains(t, rec.Body.String(), "Banned", "detail should show the new status")

	// Unban
	req = httptest.NewRequest(http.MethodPost, "/api/players/"+target.ID+"/unban",
		strings.NewReader(`{"query": "", "page": 1, "selected": ""}`))
	req.Header.Set("Content-Type", "application/json")
	req = features.RequestWithPathParam(req, "id", target.ID)
	rec = httptest.NewRecorder()

	h.Unban(rec, req)

	updated, err = fixture.Source.GetPlayer(ctx, target.ID)
	require.NoError(t, err)
	assert.False(t, updated.Banned)
}

func TestDelete_RemovesPlayerAndBroadcasts(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	ctx := context.Background()

	updates := fixture.Notifier.Subscribe()
	defer fixture.Notifier.Unsubscribe(updates)

	players, err := fixture.Source.ListPlayers(ctx)
	require.NoError(t, err)
	target := players[0]

	req := httptest.NewRequest(http.MethodDelete, "/api/players/"+target.ID,
		strings.NewReader(`{"query": "", "page": 1, "selected": "`+target.ID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req = features.RequestWithPathParam(req, "id", target.ID)
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	_, err = fixture.Source.GetPlayer(ctx, target.ID)
	assert.Error(t, err, "deleted player should be gone")

	remaining, err := fixture.Source.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 24)

	// Other browsers are notified
	select {
	case <-updates:
		// OK
	case <-time.After(100 * time.Millisecond):
		t.Error("delete should broadcast a data change")
	}

	// Detail panel is cleared
	assert.Contains(t, rec.Body.String(), "Select a player")
}

func TestUpdates_PatchesOnBroadcast(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/players/updates", nil)

	ctx, cancel := context.WithTimeout(req.Context(), 300*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.Updates(rec, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	fixture.Notifier.Broadcast()

	<-done

	body := rec.Body.String()
	assert.GreaterOrEqual(t, strings.Count(body, "event:"), 1, "broadcast should produce an SSE event")
	assert.Contains(t, body, "players-grid")
}

func TestUpdates_NoInitialSend(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/players/updates", nil)

	ctx, cancel := context.WithTimeout(req.Context(), 50*time.Millisecond)
	defer cancel()
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.Updates(rec, req)

	assert.Equal(t, 0, strings.Count(rec.Body.String(), "event:"),
		"should have no SSE events without broadcast")
}
