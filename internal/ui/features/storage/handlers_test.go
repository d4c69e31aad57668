package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
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

	req := httptest.NewRequest(http.MethodGet, "/storage", nil)
	rec := httptest.NewRecorder()

	h.Page(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "<title>Storage - Quarterdeck</title>")
	assert.Contains(t, body, `id="storage-grid"`)
	assert.Contains(t, body, `id="object-detail"`)
	assert.Contains(t, body, "saves")
	// 12 fixture objects, page size 10
	assert.Contains(t, body, "Page 1 of 2")
}

func TestGridFragment_SearchByCollection(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodPost, "/api/storage/grid",
		strings.NewReader(`{"query": "leaderboards", "page": 1, "selected": ""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.GridFragment(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "leaderboards")
	assert.NotContains(t, body, "settings")
	assert.Contains(t, body, "Page 1 of 1")
}

func TestOpen_RendersValue(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	objects, err := fixture.Source.ListObjects(context.Background())
	require.NoError(t, err)
	target := objects[0]

	req := httptest.NewRequest(http.MethodGet,
		"/api/storage/object?id="+url.QueryEscape(target.RecordID()), nil)
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, `id="object-detail"`)
	assert.Contains(t, body, target.Key)
	assert.Contains(t, body, target.Version)
	assert.Contains(t, body, "<pre>")
}

func TestOpen_UnknownIDReportsError(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet,
		"/api/storage/object?id="+url.QueryEscape("no/such/object"), nil)
	rec := httptest.NewRecorder()

	h.Open(rec, req)

	assert.Contains(t, rec.Body.String(), "console.error")
}

func TestDelete_RemovesObjectAndBroadcasts(t *testing.T) {
	h, fixture := setupTestHandlers(t)
	ctx := context.Background()

	updates := fixture.Notifier.Subscribe()
	defer fixture.Notifier.Unsubscribe(updates)

	objects, err := fixture.Source.ListObjects(ctx)
	require.NoError(t, err)
	target := objects[0]

	req := httptest.NewRequest(http.MethodDelete,
		"/api/storage/object?id="+url.QueryEscape(target.RecordID()),
		strings.NewReader(`{"query": "", "page": 1, "selected": ""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	_, err = fixture.Source.GetObject(ctx, target.Collection, target.Key, target.UserID)
	assert.Error(t, err, "deleted object should be gone")

	remaining, err := fixture.Source.ListObjects(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 11)

	select {
	case <-updates:
		// OK
	case <-time.After(100 * time.Millisecond):
		t.Error("delete should broadcast a data change")
	}
}

func TestDelete_MalformedID(t *testing.T) {
	h, _ := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/storage/object?id=not-a-record-id",
		strings.NewReader(`{"query": "", "page": 1, "selected": ""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	assert.Contains(t, rec.Body.String(), "console.error")
}

func TestSplitRecordID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid", id: "saves/slot1/user-1", wantErr: false},
		{name: "missing parts", id: "saves/slot1", wantErr: true},
		{name: "empty part", id: "saves//user-1", wantErr: true},
		{name: "empty", id: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collection, key, userID, err := splitRecordID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "saves", collection)
			assert.Equal(t, "slot1", key)
			assert.Equal(t, "user-1", userID)
		})
	}
}

func TestPrettyValue(t *testing.T) {
	assert.Equal(t, "{\n  \"hp\": 10\n}", prettyValue(`{"hp":10}`))
	assert.Equal(t, "not json", prettyValue("not json"))
}

func TestUpdates_PatchesOnBroadcast(t *testing.T) {
	h, fixture := setupTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/storage/updates", nil)

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
	assert.GreaterOrEqual(t, strings.Count(body, "event:"), 1)
	assert.Contains(t, body, "storage-grid")
}
