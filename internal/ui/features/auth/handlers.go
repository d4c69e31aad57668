package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/features/common"
	"github.com/starfederation/datastar-go/datastar"
)

// cookieName is the browser session holding the last issued token.
const cookieName = "quarterdeck"

// Handlers provides HTTP handlers for the authentication testing feature.
type Handlers struct {
	source       console.Source
	sessionStore sessions.Store
	isDev        bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(source console.Source, sessionStore sessions.Store, isDev bool) *Handlers {
	return &Handlers{
		source:       source,
		sessionStore: sessionStore,
		isDev:        isDev,
	}
}

// Page renders the authentication testing page.
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	page := common.PageData{Title: "Authentication", CurrentPath: "/auth", IsDev: h.isDev}
	if err := common.Layout(page, Content()).Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Test runs one authentication attempt against the source and renders
// the issued session (or the failure).
func (h *Handlers) Test(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals TestSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		http.Error(w, "failed to read signals: "+err.Error(), http.StatusBadRequest)
		return
	}

	id := strings.TrimSpace(signals.ID)
	if id == "" {
		sse := datastar.NewSSE(w, r)
		_ = sse.PatchElementTempl(AuthError("Identifier is required"))
		return
	}

	var (
		session console.Session
		err     error
	)
	switch signals.Provider {
	case "device":
		session, err = h.source.AuthenticateDevice(r.Context(), id, signals.Create)
	case "email":
		session, err = h.source.AuthenticateEmail(r.Context(), id, signals.Password, signals.Create)
	case "custom":
		session, err = h.source.AuthenticateCustom(r.Context(), id, signals.Create)
	default:
		sse := datastar.NewSSE(w, r)
		_ = sse.PatchElementTempl(AuthError("Unknown provider: " + signals.Provider))
		return
	}

	if err != nil {
		sse := datastar.NewSSE(w, r)
		if errors.Is(err, console.ErrAuthFailed) || errors.Is(err, console.ErrNotFound) {
			_ = sse.PatchElementTempl(AuthError("Authentication failed: " + err.Error()))
			return
		}
		_ = sse.ConsoleError(err)
		return
	}

	// Remember the last issued token in the browser session so a page
	// reload can show who was authenticated last. Must happen before the
	// SSE stream starts writing the response.
	if cookie, cerr := h.sessionStore.Get(r, cookieName); cerr == nil {
		cookie.Values["token"] = session.Token
		cookie.Values["username"] = session.Username
		_ = cookie.Save(r, w)
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(SessionResult(session)); err != nil {
		_ = sse.ConsoleError(err)
	}
}
