package players

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/features/common"
)

// Content renders the full players page body: signal scope, grid
// fragment, and the detail panel.
func Content(view common.GridView, detail templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div data-signals="{query: '', page: 1, selected: ''}" data-init="@get('/players/updates')">
<h1 class="page-title">Players</h1>
`); err != nil {
			return err
		}
		if err := common.GridTable(view).Render(ctx, w); err != nil {
			return err
		}
		if err := detail.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</div>\n")
		return err
	})
}

// Detail renders the detail panel for one player, including the
// moderation actions.
func Detail(p console.Player) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		banAction := fmt.Sprintf(`@post('/api/players/%s/ban')`, p.ID)
		banLabel := "Ban"
		if p.Banned {
			banAction = fmt.Sprintf(`@post('/api/players/%s/unban')`, p.ID)
			banLabel = "Unban"
		}

		_, err := fmt.Fprintf(w, `<div id="player-detail" class="detail-panel">
<dl>
<dt>ID</dt><dd>%s</dd>
<dt>Username</dt><dd>%s</dd>
<dt>Display name</dt><dd>%s</dd>
<dt>Level</dt><dd>%d</dd>
<dt>Games</dt><dd>%d (%d won, %d lost)</dd>
<dt>Status</dt><dd>%s</dd>
<dt>Last seen</dt><dd>%s</dd>
<dt>Created</dt><dd>%s</dd>
</dl>
<div class="toolbar">
<button data-on-click="%s">%s</button>
<button class="btn-danger" data-on-click="@delete('/api/players/%s')">Delete</button>
</div>
</div>
`,
			templ.EscapeString(p.ID),
			templ.EscapeString(p.Username),
			templ.EscapeString(p.DisplayName),
			p.Level,
			p.GamesPlayed, p.Wins, p.Losses,
			statusBadge(p),
			p.LastSeen.Format("2006-01-02 15:04:05"),
			p.CreatedAt.Format("2006-01-02 15:04:05"),
			banAction, banLabel,
			templ.EscapeString(p.ID))
		return err
	})
}

// EmptyDetail renders the detail panel placeholder.
func EmptyDetail() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="player-detail" class="detail-panel"><p>Select a player to see details.</p></div>`+"\n")
		return err
	})
}

func statusBadge(p console.Player) string {
	if p.Banned {
		return common.Badge("Banned", "danger")
	}
	return common.Badge("Active", "ok")
}
