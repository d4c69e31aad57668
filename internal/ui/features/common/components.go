package common

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// datastarSrc is the client runtime used for signals, SSE patches, and
// element morphing.
const datastarSrc = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

// Layout renders the full page shell: head, sidebar navigation, and the
// given content component inside the main column.
func Layout(page PageData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := templ.EscapeString(page.Title)
		if _, err := fmt.Fprintf(w, `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>%s - Quarterdeck</title>
<link rel="stylesheet" href="/static/app.css"/>
<script type="module" src="%s"></script>
</head>
<body>
<div class="app">
`, title, datastarSrc); err != nil {
			return err
		}

		if err := sidebar(w, page.CurrentPath); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<main class="content">`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</main>\n</div>\n"); err != nil {
			return err
		}

		// Dev-mode hot reload: reconnecting to /reload after a server
		// restart reloads the page.
		if page.IsDev {
			if _, err := io.WriteString(w, `<div data-init="@get('/reload', {retryMaxCount: 1000, retryInterval: 200, retryMaxWaitMs: 500})"></div>`+"\n"); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

func sidebar(w io.Writer, currentPath string) error {
	if _, err := io.WriteString(w, `<aside class="sidebar">
<div class="brand">Quarterdeck</div>
<nav>
`); err != nil {
		return err
	}
	for _, item := range Nav() {
		class := ""
		if item.Path == currentPath {
			class = ` class="active"`
		}
		if _, err := fmt.Fprintf(w, `<a href="%s"%s>%s</a>`+"\n",
			item.Path, class, templ.EscapeString(item.Label)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</nav>\n</aside>\n")
	return err
}

// GridTable renders one data-grid fragment: search box, table, and pager.
// The fragment root carries the view's DOM id so SSE patches can morph it
// in place.
func GridTable(view GridView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="%s">`+"\n", view.ID); err != nil {
			return err
		}

		if view.Searchable {
			if _, err := fmt.Fprintf(w, `<div class="toolbar">
<input type="text" placeholder="Search" data-bind-query data-on-input__debounce.300ms="$page = 1; @post('%s')"/>
</div>
`, view.FragmentPath); err != nil {
				return err
			}
		}

		if view.Empty {
			if _, err := fmt.Fprintf(w, `<div class="grid-empty">%s</div>`+"\n",
				templ.EscapeString(view.EmptyMessage)); err != nil {
				return err
			}
		} else {
			if err := gridRows(w, view); err != nil {
				return err
			}
		}

		if err := pager(w, view); err != nil {
			return err
		}

		_, err := io.WriteString(w, "</div>\n")
		return err
	})
}

func gridRows(w io.Writer, view GridView) error {
	if _, err := io.WriteString(w, `<table class="data-grid" data-class-loading="$_fetching">
<thead><tr>`); err != nil {
		return err
	}
	for _, col := range view.Columns {
		if _, err := fmt.Fprintf(w, "<th>%s</th>", templ.EscapeString(col)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</tr></thead>\n<tbody>\n"); err != nil {
		return err
	}

	for _, row := range view.Rows {
		class := ""
		if row.Selected {
			class = ` class="selected"`
		}
		onClick := ""
		if row.ActivatePath != "" {
			onClick = fmt.Sprintf(` data-on-click="@get('%s')"`, row.ActivatePath)
		}
		if _, err := fmt.Fprintf(w, `<tr%s%s>`, class, onClick); err != nil {
			return err
		}
		for _, cell := range row.Cells {
			if cell.HTML != "" {
				if _, err := fmt.Fprintf(w, "<td>%s</td>", cell.HTML); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "<td>%s</td>", templ.EscapeString(cell.Text)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</tr>\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</tbody>\n</table>\n")
	return err
}

func pager(w io.Writer, view GridView) error {
	_, err := fmt.Fprintf(w, `<div class="pager">
<button data-on-click="$page = $page - 1; @post('%[1]s')">Prev</button>
<span>Page %[2]d of %[3]d</span>
<button data-on-click="$page = $page + 1; @post('%[1]s')">Next</button>
<span>%[4]d of %[5]d rows</span>
</div>
`, view.FragmentPath, view.Page, view.TotalPages, view.FilteredLen, view.TotalLen)
	return err
}

// Badge renders a small status pill. kind selects the color class:
// "ok", "danger", or empty for neutral.
func Badge(label, kind string) string {
	class := "badge"
	switch kind {
	case "ok":
		class += " badge-ok"
	case "danger":
		class += " badge-danger"
	}
	return fmt.Sprintf(`<span class="%s">%s</span>`, class, templ.EscapeString(label))
}
