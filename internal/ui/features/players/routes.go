// Package players provides the player browser feature for the UI.
package players

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/notifier"
)

// SetupRoutes configures routes for the player browser feature.
func SetupRoutes(
	router chi.Router,
	source console.Source,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	pageSize int,
	isDev bool,
) error {
	handlers := NewHandlers(source, sessionStore, notify, pageSize, isDev)

	router.Get("/players", handlers.Page)
	router.Get("/players/updates", handlers.Updates)

	router.Route("/api/players", func(r chi.Router) {
		r.Post("/grid", handlers.GridFragment)
		r.Get("/{id}", handlers.Open)
		r.Post("/{id}/ban", handlers.Ban)
		r.Post("/{id}/unban", handlers.Unban)
		r.Delete("/{id}", handlers.Delete)
	})

	return nil
}
