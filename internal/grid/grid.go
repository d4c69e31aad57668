package grid

import (
	"fmt"
	"strings"
)

// Grid presents an ordered record collection as a searchable, paginated
// table. All operations are synchronous and cheap (linear scans), so
// derived state is always consistent with the most recently applied input.
// A Grid is not safe for concurrent use; confine each instance to one
// logical owner.
type Grid[T any] struct {
	cfg Config[T]

	records []T
	// filtered is the derived subset matching the active query, in input
	// order. Recomputed, never cached across record swaps.
	filtered []T

	query    string // as supplied by the caller, trimmed
	folded   string // case-folded form used for matching
	page     int
	pageSize int

	selected string
	loading  bool
	dirty    bool
}

// New validates the configuration and builds a grid over cfg.Records.
// The only error returned is *ConfigurationError; all run-time input
// conditions degrade to an empty or default presentation.
func New[T any](cfg Config[T]) (*Grid[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	pageSize := cfg.PageSize
	if cfg.Pagination && pageSize == 0 {
		pageSize = DefaultPageSize
	}

	g := &Grid[T]{
		cfg:      cfg,
		records:  cfg.Records,
		page:     1,
		pageSize: pageSize,
		loading:  cfg.Loading,
	}
	if g.loading {
		g.dirty = true
	} else {
		g.recompute()
	}
	return g, nil
}

// SetRecords swaps in a fresh record collection, e.g. after a mutation
// round-trip completes. The active query and page are preserved; the page
// is re-clamped against the new filtered length.
func (g *Grid[T]) SetRecords(records []T) {
	g.records = records
	g.refresh()
}

// SetSearchQuery updates the free-text query, recomputes the filtered
// collection, and resets the page cursor to 1. Empty or whitespace-only
// input is equivalent to no filter.
func (g *Grid[T]) SetSearchQuery(query string) {
	g.query = strings.TrimSpace(query)
	g.folded = strings.ToLower(g.query)
	g.page = 1
	g.refresh()
}

// SetPage moves the pagination cursor. Out-of-range values are clamped,
// never rejected.
func (g *Grid[T]) SetPage(n int) {
	g.page = n
	g.refresh()
}

// SetLoading toggles the loading state. While loading, filter and cursor
// changes are recorded but derived state is not recomputed; clearing the
// flag applies any pending recomputation at once.
func (g *Grid[T]) SetLoading(loading bool) {
	g.loading = loading
	if !loading && g.dirty {
		g.recompute()
	}
}

// Loading reports whether the grid is in its loading state.
func (g *Grid[T]) Loading() bool {
	return g.loading
}

// refresh recomputes derived state, or defers it while loading.
func (g *Grid[T]) refresh() {
	if g.loading {
		g.dirty = true
		return
	}
	g.recompute()
}

// recompute derives the filtered collection and clamps the page cursor.
// Single linear pass over the input collection; filtering never reorders.
func (g *Grid[T]) recompute() {
	g.dirty = false

	if !g.cfg.Searchable || g.folded == "" {
		g.filtered = g.records
	} else {
		filtered := make([]T, 0, len(g.records))
		for _, rec := range g.records {
			if g.matches(rec) {
				filtered = append(filtered, rec)
			}
		}
		g.filtered = filtered
	}

	if g.page < 1 {
		g.page = 1
	}
	if total := g.TotalPages(); g.page > total {
		g.page = total
	}
}

// matches reports whether any configured search field of rec contains the
// folded query. Missing field values never match.
func (g *Grid[T]) matches(rec T) bool {
	for _, name := range g.cfg.SearchFields {
		accessor := g.cfg.Fields[name]
		if accessor == nil {
			continue
		}
		value := stringify(accessor(rec))
		if value == "" {
			continue
		}
		if strings.Contains(strings.ToLower(value), g.folded) {
			return true
		}
	}
	return false
}

// VisibleRows returns the current page's slice of the filtered collection,
// in input order. The slice aliases the grid's derived state and must not
// be mutated.
func (g *Grid[T]) VisibleRows() []T {
	if !g.cfg.Pagination {
		return g.filtered
	}
	start := (g.page - 1) * g.pageSize
	if start >= len(g.filtered) {
		return nil
	}
	end := start + g.pageSize
	if end > len(g.filtered) {
		end = len(g.filtered)
	}
	return g.filtered[start:end]
}

// Page returns the 1-indexed current page.
func (g *Grid[T]) Page() int {
	return g.page
}

// TotalPages returns max(1, ceil(filtered/pageSize)).
func (g *Grid[T]) TotalPages() int {
	if !g.cfg.Pagination {
		return 1
	}
	pages := (len(g.filtered) + g.pageSize - 1) / g.pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// PageSize returns the effective page size.
func (g *Grid[T]) PageSize() int {
	return g.pageSize
}

// FilteredLen returns the size of the filtered collection.
func (g *Grid[T]) FilteredLen() int {
	return len(g.filtered)
}

// TotalLen returns the size of the full input collection.
func (g *Grid[T]) TotalLen() int {
	return len(g.records)
}

// Query returns the active search query for controlled-input binding.
func (g *Grid[T]) Query() string {
	return g.query
}

// Searchable reports whether the grid was configured with search enabled.
func (g *Grid[T]) Searchable() bool {
	return g.cfg.Searchable
}

// Empty reports whether the filtered collection is empty. It is false
// while loading, so hosts render the loading indicator instead of the
// empty message.
func (g *Grid[T]) Empty() bool {
	return !g.loading && len(g.filtered) == 0
}

// EmptyMessage returns the configured empty-state text.
func (g *Grid[T]) EmptyMessage() string {
	return g.cfg.EmptyMessage
}

// Columns returns the column schema in display order.
func (g *Grid[T]) Columns() []Column[T] {
	return g.cfg.Columns
}

// Cell renders one cell. Columns without a renderer fall back to
// stringifying the field accessor registered under the column key; a key
// with no accessor renders empty rather than erroring.
func (g *Grid[T]) Cell(rec T, col Column[T]) string {
	if col.Render != nil {
		return col.Render(rec)
	}
	accessor := g.cfg.Fields[col.Key]
	if accessor == nil {
		return ""
	}
	return stringify(accessor(rec))
}

// KeyOf returns the record's key-field value in string form.
func (g *Grid[T]) KeyOf(rec T) string {
	return stringify(g.cfg.Fields[g.cfg.KeyField](rec))
}

// Select marks the record with the given key value as selected. The
// selection is purely presentational and may reference a record that is
// filtered out or off the visible page. An empty id clears the selection.
func (g *Grid[T]) Select(id string) {
	g.selected = id
}

// Selected returns the selected key value, or "" when nothing is selected.
func (g *Grid[T]) Selected() string {
	return g.selected
}

// IsSelected reports whether rec is the selected record.
func (g *Grid[T]) IsSelected(rec T) bool {
	return g.selected != "" && g.selected == g.KeyOf(rec)
}

// ActivateRow resolves a row activation to its record by key value within
// the filtered collection, invokes the configured callback with that exact
// record, and returns it. Unknown ids are reported, not raised.
func (g *Grid[T]) ActivateRow(id string) (T, bool) {
	for _, rec := range g.filtered {
		if g.KeyOf(rec) == id {
			if g.cfg.OnRowActivate != nil {
				g.cfg.OnRowActivate(rec)
			}
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// stringify converts an accessor value to its display/search string form.
// Nil values become the empty string so missing fields degrade silently.
func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}
