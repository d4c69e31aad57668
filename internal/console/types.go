// Package console defines the domain records the admin console presents and
// the narrow source interfaces it fetches them through. Pages consume
// record snapshots from a source, feed them to the grid engine, and route
// every mutation back through the source before re-listing.
package console

import (
	"fmt"
	"time"
)

// Player is one account on the backend platform.
type Player struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name,omitempty"`
	Level       int       `json:"level"`
	GamesPlayed int       `json:"games_played"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	LastSeen    time.Time `json:"last_seen"`
	CreatedAt   time.Time `json:"created_at"`
	Banned      bool      `json:"banned"`
}

// WinLoss formats the player's win/loss record for display.
func (p Player) WinLoss() string {
	return fmt.Sprintf("%d / %d", p.Wins, p.Losses)
}

// Status returns the moderation status label.
func (p Player) Status() string {
	if p.Banned {
		return "Banned"
	}
	return "Active"
}

// Storage object permission values, matching the platform's read/write
// permission integers.
const (
	// PermissionNoRead / PermissionNoWrite deny all access.
	PermissionNoRead  = 0
	PermissionNoWrite = 0
	// PermissionOwnerRead / PermissionOwnerWrite restrict access to the
	// owning user.
	PermissionOwnerRead  = 1
	PermissionOwnerWrite = 1
	// PermissionPublicRead allows any user to read.
	PermissionPublicRead = 2
)

// StorageObject is one entry in the platform's key-value storage service.
// An object is addressed by (Collection, Key, UserID).
type StorageObject struct {
	Collection      string    `json:"collection"`
	Key             string    `json:"key"`
	UserID          string    `json:"user_id"`
	Value           string    `json:"value"`
	Version         string    `json:"version"`
	PermissionRead  int       `json:"permission_read"`
	PermissionWrite int       `json:"permission_write"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RecordID returns the composite identity used as the grid key field.
func (o StorageObject) RecordID() string {
	return o.Collection + "/" + o.Key + "/" + o.UserID
}

// Permission renders the read/write permission pair as a single label,
// e.g. "owner read, owner write" or "public read, no write".
func (o StorageObject) Permission() string {
	return permissionReadLabel(o.PermissionRead) + ", " + permissionWriteLabel(o.PermissionWrite)
}

func permissionReadLabel(p int) string {
	switch p {
	case PermissionNoRead:
		return "no read"
	case PermissionOwnerRead:
		return "owner read"
	case PermissionPublicRead:
		return "public read"
	default:
		return fmt.Sprintf("read(%d)", p)
	}
}

func permissionWriteLabel(p int) string {
	switch p {
	case PermissionNoWrite:
		return "no write"
	case PermissionOwnerWrite:
		return "owner write"
	default:
		return fmt.Sprintf("write(%d)", p)
	}
}

// Session is an authenticated session issued by the backend.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
