// Package grid implements the generic tabular data-presentation engine that
// backs every list view in the console. It turns an in-memory record
// collection plus a column schema into a searchable, paginated table with
// row selection and activation dispatch. The engine performs no I/O and
// never inspects record types via reflection: all field access is mediated
// by caller-supplied accessor functions.
package grid

import "fmt"

// DefaultPageSize is used when pagination is enabled and no page size is
// configured.
const DefaultPageSize = 10

// Field is a pure accessor returning one named field of a record.
type Field[T any] func(T) any

// Column describes one presented attribute of a record.
//
// Key identifies the column for render override lookups; it does not have
// to correspond 1:1 to a record field, since a column may be a computed or
// composite view. When Render is nil, the cell falls back to stringifying
// the field accessor registered under Key.
type Column[T any] struct {
	Key    string
	Header string
	// Width is a presentational sizing hint (e.g. "12rem"). May be empty.
	Width string
	// Render produces the cell text for a record. Optional.
	Render func(T) string
}

// Config establishes a rendering session for a Grid.
type Config[T any] struct {
	// Records is the full input collection. The grid never mutates it.
	Records []T
	// Columns define left-to-right display order; the slice order is
	// significant.
	Columns []Column[T]
	// KeyField names the accessor whose value uniquely identifies a record.
	KeyField string
	// Fields maps field names to accessors. KeyField, every search field,
	// and every column key without a custom renderer must appear here.
	Fields map[string]Field[T]

	// Searchable enables the free-text filter over SearchFields.
	Searchable bool
	// SearchFields lists the fields participating in the filter. A record
	// matches when the query substring appears in any listed field's string
	// form, case-insensitively.
	SearchFields []string

	// Pagination slices the filtered collection into pages of PageSize.
	// When false the whole filtered collection is a single page.
	Pagination bool
	// PageSize must be positive when set; zero selects DefaultPageSize.
	PageSize int

	// EmptyMessage is shown verbatim when the filtered collection is empty.
	EmptyMessage string
	// Loading suppresses derived-state recomputation until cleared, so a
	// page can avoid flashing stale content while fresh records load.
	Loading bool

	// OnRowActivate is invoked with the exact record a row activation
	// resolved to. Optional.
	OnRowActivate func(T)
}

// ConfigurationError reports an invalid options combination. It is a
// programmer error surfaced at configuration time, so a misconfigured table
// fails fast instead of silently rendering empty.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string {
	return "grid: " + e.msg
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// validate checks the options combinations enumerated in the package
// contract. Run-time input conditions (empty collections, missing record
// values) are not errors and degrade gracefully instead.
func (c Config[T]) validate() error {
	if c.KeyField == "" {
		return configErrorf("key field is required")
	}
	if _, ok := c.Fields[c.KeyField]; !ok {
		return configErrorf("no accessor registered for key field %q", c.KeyField)
	}
	if c.Searchable {
		if len(c.SearchFields) == 0 {
			return configErrorf("searchable grid requires at least one search field")
		}
		for _, f := range c.SearchFields {
			if _, ok := c.Fields[f]; !ok {
				return configErrorf("no such search field %q", f)
			}
		}
	}
	if c.Pagination && c.PageSize < 0 {
		return configErrorf("page size must be positive, got %d", c.PageSize)
	}
	return nil
}
