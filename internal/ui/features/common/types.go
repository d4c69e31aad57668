// Package common provides shared types and components for UI features.
package common

// NavItem is one entry in the sidebar navigation.
type NavItem struct {
	Label string
	Path  string
}

// PageData holds data needed for the page shell rendering.
type PageData struct {
	Title       string
	CurrentPath string
	IsDev       bool
}

// Nav returns the sidebar navigation entries in display order.
func Nav() []NavItem {
	return []NavItem{
		{Label: "Dashboard", Path: "/"},
		{Label: "Players", Path: "/players"},
		{Label: "Storage", Path: "/storage"},
		{Label: "Authentication", Path: "/auth"},
	}
}

// GridView is the render model for one data-grid fragment. Features build
// it from their grid instance; the shared GridTable component renders it.
type GridView struct {
	ID           string // DOM id of the fragment root
	Columns      []string
	Rows         []GridRow
	Page         int
	TotalPages   int
	FilteredLen  int
	TotalLen     int
	Query        string
	Searchable   bool
	Empty        bool
	EmptyMessage string

	// FragmentPath is the endpoint that re-renders this fragment from the
	// current signals (query, page).
	FragmentPath string
}

// GridRow is one rendered row of a grid fragment.
type GridRow struct {
	Key          string
	Selected     bool
	Cells        []Cell
	ActivatePath string // endpoint hit when the row is clicked
}

// Cell is one rendered cell. Text is used unless HTML is set; HTML carries
// a column render override and is written as-is.
type Cell struct {
	Text string
	HTML string
}
