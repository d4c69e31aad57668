package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/quarterdeck-labs/quarterdeck/internal/grid"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/features/common"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/notifier"
	"github.com/starfederation/datastar-go/datastar"
)

// Handlers provides HTTP handlers for the storage browser feature.
type Handlers struct {
	source       console.Source
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	pageSize     int
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(source console.Source, sessionStore sessions.Store, notify *notifier.Notifier, pageSize int, isDev bool) *Handlers {
	return &Handlers{
		source:       source,
		sessionStore: sessionStore,
		notifier:     notify,
		pageSize:     pageSize,
		isDev:        isDev,
	}
}

// Page renders the full storage page with the first grid page.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	g, err := h.buildGrid(r.Context(), GridSignals{Page: 1})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	page := common.PageData{Title: "Storage", CurrentPath: "/storage", IsDev: h.isDev}
	content := Content(h.gridView(g), EmptyDetail())
	if err := common.Layout(page, content).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GridFragment re-renders the grid fragment from the current signals.
func (h *Handlers) GridFragment(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals GridSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := h.patchGrid(r.Context(), sse, signals); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Open handles a row activation: it renders the detail panel for the
// clicked object and re-renders the grid with the selection applied.
// The object's composite id arrives as a query parameter because record
// ids contain slashes.
func (h *Handlers) Open(w http.ResponseWriter, r *http.Request) {
	var signals GridSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}
	signals.Selected = r.URL.Query().Get("id")

	sse := datastar.NewSSE(w, r)

	g, err := h.buildGrid(r.Context(), signals)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	obj, ok := g.ActivateRow(signals.Selected)
	if !ok {
		_ = sse.ConsoleError(fmt.Errorf("no object %q in the current result set", signals.Selected))
		return
	}

	if err := sse.MarshalAndPatchSignals(map[string]any{"selected": signals.Selected}); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(common.GridTable(h.gridView(g))); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(Detail(obj)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Delete removes the object, clears the detail panel, and notifies other
// connected browsers.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	var signals GridSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}
	id := r.URL.Query().Get("id")

	sse := datastar.NewSSE(w, r)

	collection, key, userID, err := splitRecordID(id)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	if err := h.source.DeleteObject(r.Context(), collection, key, userID); err != nil {
		if errors.Is(err, console.ErrNotFound) {
			_ = sse.ConsoleError(fmt.Errorf("object %q not found", id))
			return
		}
		_ = sse.ConsoleError(err)
		return
	}

	signals.Selected = ""
	if err := sse.MarshalAndPatchSignals(map[string]any{"selected": ""}); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := h.patchGrid(r.Context(), sse, signals); err != nil {
		_ = sse.ConsoleError(err)
		return
	}
	if err := sse.PatchElementTempl(EmptyDetail()); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	h.notifier.Broadcast()
}

// Updates is the long-lived SSE endpoint: it re-renders the grid from
// the subscriber's signals whenever the console data changes.
func (h *Handlers) Updates(w http.ResponseWriter, r *http.Request) {
	var signals GridSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := h.patchGrid(ctx, sse, signals); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// patchGrid builds the grid from signals and morphs the fragment, then
// syncs the (possibly clamped) page back into the signals.
func (h *Handlers) patchGrid(ctx context.Context, sse *datastar.ServerSentEventGenerator, signals GridSignals) error {
	g, err := h.buildGrid(ctx, signals)
	if err != nil {
		return err
	}
	if err := sse.PatchElementTempl(common.GridTable(h.gridView(g))); err != nil {
		return err
	}
	return sse.MarshalAndPatchSignals(map[string]any{"page": g.Page()})
}

// buildGrid loads the objects and applies the signals: query first, then
// the requested page, then the selection.
func (h *Handlers) buildGrid(ctx context.Context, signals GridSignals) (*grid.Grid[console.StorageObject], error) {
	objects, err := h.source.ListObjects(ctx)
	if err != nil {
		return nil, err
	}

	g, err := newGrid(objects, h.pageSize)
	if err != nil {
		return nil, err
	}
	g.SetSearchQuery(signals.Query)
	if signals.Page > 0 {
		g.SetPage(signals.Page)
	}
	if signals.Selected != "" {
		g.Select(signals.Selected)
	}
	return g, nil
}

func (h *Handlers) gridView(g *grid.Grid[console.StorageObject]) common.GridView {
	return common.BuildGridView(g, common.GridViewOptions[console.StorageObject]{
		ID:           "storage-grid",
		FragmentPath: "/api/storage/grid",
		ActivatePath: func(key string) string {
			return "/api/storage/object?id=" + url.QueryEscape(key)
		},
	})
}

// splitRecordID parses the composite "collection/key/userID" record id.
func splitRecordID(id string) (collection, key, userID string, err error) {
	parts := strings.SplitN(id, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("malformed record id %q", id)
	}
	return parts[0], parts[1], parts[2], nil
}

// newGrid builds the storage grid: searchable across collection, key,
// and owning user, keyed by the composite record id.
func newGrid(objects []console.StorageObject, pageSize int) (*grid.Grid[console.StorageObject], error) {
	return grid.New(grid.Config[console.StorageObject]{
		Records:  objects,
		KeyField: "record_id",
		Fields: map[string]grid.Field[console.StorageObject]{
			"record_id":  func(o console.StorageObject) any { return o.RecordID() },
			"collection": func(o console.StorageObject) any { return o.Collection },
			"key":        func(o console.StorageObject) any { return o.Key },
			"user_id":    func(o console.StorageObject) any { return o.UserID },
			"version":    func(o console.StorageObject) any { return o.Version },
			"permission": func(o console.StorageObject) any { return o.Permission() },
			"updated_at": func(o console.StorageObject) any { return o.UpdatedAt.Format("2006-01-02 15:04") },
		},
		Columns: []grid.Column[console.StorageObject]{
			{Key: "collection", Header: "Collection"},
			{Key: "key", Header: "Key"},
			{Key: "user_id", Header: "Owner"},
			{Key: "version", Header: "Version"},
			{Key: "permission", Header: "Permission"},
			{Key: "updated_at", Header: "Updated"},
		},
		Searchable:   true,
		SearchFields: []string{"collection", "key", "user_id"},
		Pagination:   true,
		PageSize:     pageSize,
		EmptyMessage: "No storage objects found",
	})
}
