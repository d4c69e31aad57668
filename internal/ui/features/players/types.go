// Package players provides the player browser feature for the UI.
package players

// GridSignals are the datastar signals driving the player grid: the
// search query, the requested page, and the selected row key.
type GridSignals struct {
	Query    string `json:"query"`
	Page     int    `json:"page"`
	Selected string `json:"selected"`
}
