package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/a-h/templ"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/features/common"
)

// Content renders the full storage page body: signal scope, grid
// fragment, and the detail panel.
func Content(view common.GridView, detail templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div data-signals="{query: '', page: 1, selected: ''}" data-init="@get('/storage/updates')">
<h1 class="page-title">Storage</h1>
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

// Detail renders the detail panel for one storage object, with the value
// pretty-printed when it is valid JSON.
func Detail(o console.StorageObject) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		deletePath := "/api/storage/object?id=" + url.QueryEscape(o.RecordID())

		_, err := fmt.Fprintf(w, `<div id="object-detail" class="detail-panel">
<dl>
<dt>Collection</dt><dd>%s</dd>
<dt>Key</dt><dd>%s</dd>
<dt>Owner</dt><dd>%s</dd>
<dt>Version</dt><dd>%s</dd>
<dt>Permission</dt><dd>%s</dd>
<dt>Updated</dt><dd>%s</dd>
</dl>
<pre>%s</pre>
<div class="toolbar">
<button class="btn-danger" data-on-click="@delete('%s')">Delete</button>
</div>
</div>
`,
			templ.EscapeString(o.Collection),
			templ.EscapeString(o.Key),
			templ.EscapeString(o.UserID),
			templ.EscapeString(o.Version),
			templ.EscapeString(o.Permission()),
			o.UpdatedAt.Format("2006-01-02 15:04:05"),
			templ.EscapeString(prettyValue(o.Value)),
			deletePath)
		return err
	})
}

// EmptyDetail renders the detail panel placeholder.
func EmptyDetail() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="object-detail" class="detail-panel"><p>Select an object to see its value.</p></div>`+"\n")
		return err
	})
}

// prettyValue re-indents JSON values for the detail panel. Anything that
// is not valid JSON is shown verbatim.
func prettyValue(value string) string {
	var decoded any
	if err := json.Unmarshal([]byte(value), &decoded); err != nil {
		return value
	}
	pretty, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return value
	}
	return string(pretty)
}
