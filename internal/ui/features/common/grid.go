package common

import (
	"github.com/quarterdeck-labs/quarterdeck/internal/grid"
)

// CellRenderer produces the HTML for one cell, overriding the grid's
// plain-text rendering for that column.
type CellRenderer[T any] func(T) string

// GridViewOptions configures the grid-to-view conversion.
type GridViewOptions[T any] struct {
	ID           string
	FragmentPath string
	// ActivatePath maps a row key to the endpoint hit on row click.
	ActivatePath func(key string) string
	// Overrides maps column keys to HTML cell renderers. Columns without
	// an override fall back to the grid's text rendering.
	Overrides map[string]CellRenderer[T]
}

// BuildGridView converts the grid's current visible state into the render
// model consumed by GridTable.
func BuildGridView[T any](g *grid.Grid[T], opts GridViewOptions[T]) GridView {
	cols := g.Columns()

	view := GridView{
		ID:           opts.ID,
		Columns:      make([]string, len(cols)),
		Page:         g.Page(),
		TotalPages:   g.TotalPages(),
		FilteredLen:  g.FilteredLen(),
		TotalLen:     g.TotalLen(),
		Query:        g.Query(),
		Searchable:   g.Searchable(),
		Empty:        g.Empty(),
		EmptyMessage: g.EmptyMessage(),
		FragmentPath: opts.FragmentPath,
	}
	for i, col := range cols {
		view.Columns[i] = col.Header
	}

	for _, rec := range g.VisibleRows() {
		key := g.KeyOf(rec)
		row := GridRow{
			Key:      key,
			Selected: g.IsSelected(rec),
			Cells:    make([]Cell, len(cols)),
		}
		if opts.ActivatePath != nil {
			row.ActivatePath = opts.ActivatePath(key)
		}
		for i, col := range cols {
			if render, ok := opts.Overrides[col.Key]; ok {
				row.Cells[i] = Cell{HTML: render(rec)}
				continue
			}
			row.Cells[i] = Cell{Text: g.Cell(rec, col)}
		}
		view.Rows = append(view.Rows, row)
	}

	return view
}
