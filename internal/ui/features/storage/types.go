// Package storage provides the key-value storage browser feature for the UI.
package storage

// GridSignals are the datastar signals driving the storage grid.
type GridSignals struct {
	Query    string `json:"query"`
	Page     int    `json:"page"`
	Selected string `json:"selected"`
}
