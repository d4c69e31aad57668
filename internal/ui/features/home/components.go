package home

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Dashboard renders the stat cards fragment. The root id lets SSE updates
// morph it in place when the data changes.
func Dashboard(stats DashboardStats) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="dashboard">
<h1 class="page-title">Dashboard</h1>
<div class="stat-cards">
%s%s%s%s</div>
<p>Connected source: <strong>%s</strong></p>
</div>
`,
			statCard(stats.PlayerCount, "Players"),
			statCard(stats.BannedCount, "Banned"),
			statCard(stats.ObjectCount, "Storage objects"),
			statCard(stats.Collections, "Collections"),
			templ.EscapeString(stats.SourceName))
		return err
	})
}

func statCard(value int, label string) string {
	return fmt.Sprintf(`<div class="stat-card"><div class="value">%d</div><div class="label">%s</div></div>`+"\n",
		value, templ.EscapeString(label))
}
