package auth

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
)

// Content renders the authentication testing form and the result area.
func Content() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div data-signals="{provider: 'device', id: '', password: '', create: false}">
<h1 class="page-title">Authentication</h1>
<div class="auth-form">
<label>Provider
<select data-bind-provider>
<option value="device">Device</option>
<option value="email">Email</option>
<option value="custom">Custom</option>
</select>
</label>
<label>Identifier
<input type="text" data-bind-id placeholder="device id, email, or custom id"/>
</label>
<label data-show="$provider == 'email'">Password
<input type="password" data-bind-password/>
</label>
<label><input type="checkbox" data-bind-create/> Create account if missing</label>
<button data-on-click="@post('/api/auth/test')">Authenticate</button>
</div>
<div id="session-result" class="session-result"></div>
</div>
`)
		return err
	})
}

// SessionResult renders the outcome of an authentication attempt.
func SessionResult(s console.Session) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="session-result" class="session-result detail-panel">
<dl>
<dt>Token</dt><dd>%s</dd>
<dt>User ID</dt><dd>%s</dd>
<dt>Username</dt><dd>%s</dd>
<dt>Provider</dt><dd>%s</dd>
<dt>Issued</dt><dd>%s</dd>
<dt>Expires</dt><dd>%s</dd>
</dl>
</div>
`,
			templ.EscapeString(s.Token),
			templ.EscapeString(s.UserID),
			templ.EscapeString(s.Username),
			templ.EscapeString(s.Provider),
			s.CreatedAt.Format("2006-01-02 15:04:05"),
			s.ExpiresAt.Format("2006-01-02 15:04:05"))
		return err
	})
}

// AuthError renders a failed authentication attempt.
func AuthError(msg string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="session-result" class="session-result detail-panel"><p class="error-text">%s</p></div>`+"\n",
			templ.EscapeString(msg))
		return err
	})
}
