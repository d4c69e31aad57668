package players

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/quarterdeck-labs/quarterdeck/internal/grid"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/features/common"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/notifier"
	"github.com/starfederation/datastar-go/datastar"
)

// Handlers provides HTTP handlers for the player browser feature.
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

// Page renders the full players page with the first grid page.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	g, err := h.buildGrid(r.Context(), GridSignals{Page: 1})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	page := common.PageData{Title: "Players", CurrentPath: "/players", IsDev: h.isDev}
	content := Content(h.gridView(g), EmptyDetail())
	if err := common.Layout(page, content).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GridFragment re-renders the grid fragment from the current signals.
// Search and paging both land here: the client resets $page to 1 when the
// query changes, and the grid clamps out-of-range pages.
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
// clicked player and re-renders the grid with the selection applied.
func (h *Handlers) Open(w http.ResponseWriter, r *http.Request) {
	var signals GridSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}
	signals.Selected = chi.URLParam(r, "id")

	sse := datastar.NewSSE(w, r)

	g, err := h.buildGrid(r.Context(), signals)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	p, ok := g.ActivateRow(signals.Selected)
	if !ok {
		_ = sse.ConsoleError(fmt.Errorf("no player %q in the current result set", signals.Selected))
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
	if err := sse.PatchElementTempl(Detail(p)); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Ban flags the player as banned and pushes the updated views.
func (h *Handlers) Ban(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, func(ctx context.Context, id string) error {
		return h.source.SetBanned(ctx, id, true)
	}, true)
}

// Unban clears the player's ban and pushes the updated views.
func (h *Handlers) Unban(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, func(ctx context.Context, id string) error {
		return h.source.SetBanned(ctx, id, false)
	}, true)
}

// Delete removes the player and their storage, then pushes the updated
// grid with an empty detail panel.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.source.DeletePlayer, false)
}

// moderate runs one moderation action against the player in the URL,
// re-renders the grid from the current signals, and notifies other
// connected browsers. keepDetail controls whether the detail panel shows
// the (updated) player afterwards.
func (h *Handlers) moderate(w http.ResponseWriter, r *http.Request, action func(context.Context, string) error, keepDetail bool) {
	var signals GridSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")

	sse := datastar.NewSSE(w, r)

	if err := action(r.Context(), id); err != nil {
		if errors.Is(err, console.ErrNotFound) {
			_ = sse.ConsoleError(fmt.Errorf("player %q not found", id))
			return
		}
		_ = sse.ConsoleError(err)
		return
	}

	if !keepDetail {
		signals.Selected = ""
		if err := sse.MarshalAndPatchSignals(map[string]any{"selected": ""}); err != nil {
			_ = sse.ConsoleError(err)
			return
		}
	}

	if err := h.patchGrid(r.Context(), sse, signals); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	if keepDetail {
		p, err := h.source.GetPlayer(r.Context(), id)
		if err != nil {
			_ = sse.ConsoleError(err)
			return
		}
		if err := sse.PatchElementTempl(Detail(p)); err != nil {
			_ = sse.ConsoleError(err)
			return
		}
	} else {
		if err := sse.PatchElementTempl(EmptyDetail()); err != nil {
			_ = sse.ConsoleError(err)
			return
		}
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

// buildGrid loads the players and applies the signals: query first (which
// resets paging), then the requested page, then the selection.
func (h *Handlers) buildGrid(ctx context.Context, signals GridSignals) (*grid.Grid[console.Player], error) {
	players, err := h.source.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	g, err := newGrid(players, h.pageSize)
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

func (h *Handlers) gridView(g *grid.Grid[console.Player]) common.GridView {
	return common.BuildGridView(g, common.GridViewOptions[console.Player]{
		ID:           "players-grid",
		FragmentPath: "/api/players/grid",
		ActivatePath: func(key string) string { return "/api/players/" + key },
		Overrides: map[string]common.CellRenderer[console.Player]{
			"status": statusBadge,
		},
	})
}

// newGrid builds the player grid: searchable across username and display
// name, keyed by player ID.
func newGrid(players []console.Player, pageSize int) (*grid.Grid[console.Player], error) {
	return grid.New(grid.Config[console.Player]{
		Records:  players,
		KeyField: "id",
		Fields: map[string]grid.Field[console.Player]{
			"id":           func(p console.Player) any { return p.ID },
			"username":     func(p console.Player) any { return p.Username },
			"display_name": func(p console.Player) any { return p.DisplayName },
			"level":        func(p console.Player) any { return p.Level },
			"status":       func(p console.Player) any { return p.Status() },
			"win_loss":     func(p console.Player) any { return p.WinLoss() },
			"last_seen":    func(p console.Player) any { return p.LastSeen.Format("2006-01-02 15:04") },
		},
		Columns: []grid.Column[console.Player]{
			{Key: "username", Header: "Username"},
			{Key: "display_name", Header: "Display Name"},
			{Key: "level", Header: "Level"},
			{Key: "win_loss", Header: "W/L"},
			{Key: "status", Header: "Status"},
			{Key: "last_seen", Header: "Last Seen"},
		},
		Searchable:   true,
		SearchFields: []string{"username", "display_name"},
		Pagination:   true,
		PageSize:     pageSize,
		EmptyMessage: "No players found",
	})
}
