package home

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/features/common"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/notifier"
	"github.com/starfederation/datastar-go/datastar"
)

// Handlers provides HTTP handlers for the dashboard feature.
type Handlers struct {
	source       console.Source
	sessionStore sessions.Store
	notifier     *notifier.Notifier
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(source console.Source, sessionStore sessions.Store, notify *notifier.Notifier, isDev bool) *Handlers {
	return &Handlers{
		source:       source,
		sessionStore: sessionStore,
		notifier:     notify,
		isDev:        isDev,
	}
}

// HomePage renders the dashboard with full content.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	stats, err := h.buildStats(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	page := common.PageData{Title: "Dashboard", CurrentPath: "/", IsDev: h.isDev}
	if err := common.Layout(page, Dashboard(stats)).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HomePageUpdates is the long-lived SSE endpoint for the dashboard. It
// pushes fresh stats whenever the console data changes. No initial send:
// the content is already server-rendered by HomePage.
func (h *Handlers) HomePageUpdates(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			stats, err := h.buildStats(ctx)
			if err != nil {
				_ = sse.ConsoleError(err)
				continue
			}
			if err := sse.PatchElementTempl(Dashboard(stats)); err != nil {
				_ = sse.ConsoleError(err)
			}
		}
	}
}

// buildStats assembles the dashboard counts from the source.
func (h *Handlers) buildStats(ctx context.Context) (DashboardStats, error) {
	stats := DashboardStats{SourceName: h.source.Name()}

	players, err := h.source.ListPlayers(ctx)
	if err != nil {
		return stats, err
	}
	stats.PlayerCount = len(players)
	for _, p := range players {
		if p.Banned {
			stats.BannedCount++
		}
	}

	objects, err := h.source.ListObjects(ctx)
	if err != nil {
		return stats, err
	}
	stats.ObjectCount = len(objects)

	collections := make(map[string]struct{})
	for _, o := range objects {
		collections[o.Collection] = struct{}{}
	}
	stats.Collections = len(collections)

	return stats, nil
}
