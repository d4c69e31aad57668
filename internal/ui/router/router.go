// Package router sets up HTTP routes for the UI server.
package router

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	authFeature "github.com/quarterdeck-labs/quarterdeck/internal/ui/features/auth"
	homeFeature "github.com/quarterdeck-labs/quarterdeck/internal/ui/features/home"
	playersFeature "github.com/quarterdeck-labs/quarterdeck/internal/ui/features/players"
	storageFeature "github.com/quarterdeck-labs/quarterdeck/internal/ui/features/storage"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/notifier"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/resources"
	"github.com/starfederation/datastar-go/datastar"
)

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(
	router chi.Router,
	source console.Source,
	sessionStore *sessions.CookieStore,
	notify *notifier.Notifier,
	pageSize int,
	isDev bool,
) error {
	// Hot reload endpoint for dev mode
	if isDev {
		setupReload(router)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := homeFeature.SetupRoutes(router, source, sessionStore, notify, isDev); err != nil {
		return err
	}

	if err := playersFeature.SetupRoutes(router, source, sessionStore, notify, pageSize, isDev); err != nil {
		return err
	}

	if err := storageFeature.SetupRoutes(router, source, sessionStore, notify, pageSize, isDev); err != nil {
		return err
	}

	if err := authFeature.SetupRoutes(router, source, sessionStore, isDev); err != nil {
		return err
	}

	return nil
}

func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
