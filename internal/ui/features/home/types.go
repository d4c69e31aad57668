// Package home provides the dashboard feature for the UI.
package home

// DashboardStats holds the counts shown on the dashboard.
type DashboardStats struct {
	PlayerCount int
	BannedCount int
	ObjectCount int
	Collections int
	SourceName  string
}
