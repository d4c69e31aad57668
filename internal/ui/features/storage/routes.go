// Package storage provides the key-value storage browser feature for the UI.
package storage

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/notifier"
)

// SetupRoutes configures routes for the storage browser feature.
func SetupRoutes(
	router chi.Router,
	source console.Source,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	pageSize int,
	isDev bool,
) error {
	handlers := NewHandlers(source, sessionStore, notify, pageSize, isDev)

	router.Get("/storage", handlers.Page)
	router.Get("/storage/updates", handlers.Updates)

	router.Route("/api/storage", func(r chi.Router) {
		r.Post("/grid", handlers.GridFragment)
		r.Get("/object", handlers.Open)
		r.Delete("/object", handlers.Delete)
	})

	return nil
}
