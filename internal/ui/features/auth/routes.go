// Package auth provides the authentication testing feature for the UI.
package auth

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
)

// SetupRoutes configures routes for the authentication testing feature.
func SetupRoutes(
	router chi.Router,
	source console.Source,
	sessionStore sessions.Store,
	isDev bool,
) error {
	handlers := NewHandlers(source, sessionStore, isDev)

	router.Get("/auth", handlers.Page)
	router.Post("/api/auth/test", handlers.Test)

	return nil
}
