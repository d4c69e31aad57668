// Package auth provides the authentication testing feature for the UI.
package auth

// TestSignals are the datastar signals for the authentication form.
type TestSignals struct {
	Provider string `json:"provider"` // "device", "email", or "custom"
	ID       string `json:"id"`       // device id, email address, or custom id
	Password string `json:"password"` // email provider only
	Create   bool   `json:"create"`   // register the account if missing
}
