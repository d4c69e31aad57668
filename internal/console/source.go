package console

import (
	"context"
	"errors"
)

// ErrNotFound is returned by sources when a record does not exist.
var ErrNotFound = errors.New("console: record not found")

// ErrAuthFailed is returned by authenticators when credentials are
// rejected without a transport-level failure.
var ErrAuthFailed = errors.New("console: authentication failed")

// PlayerSource lists and moderates players. List returns a fresh snapshot
// in the backend's canonical order; the console never mutates records in
// place, it calls a mutation and re-lists.
type PlayerSource interface {
	ListPlayers(ctx context.Context) ([]Player, error)
	GetPlayer(ctx context.Context, id string) (Player, error)
	SetBanned(ctx context.Context, id string, banned bool) error
	DeletePlayer(ctx context.Context, id string) error
}

// StorageSource lists and inspects key-value storage objects.
type StorageSource interface {
	ListObjects(ctx context.Context) ([]StorageObject, error)
	GetObject(ctx context.Context, collection, key, userID string) (StorageObject, error)
	DeleteObject(ctx context.Context, collection, key, userID string) error
}

// Authenticator exercises the backend's authentication flows on behalf of
// the auth test page. When create is true a missing account is registered
// on the fly, mirroring the backend's authenticate-or-create semantics.
type Authenticator interface {
	AuthenticateDevice(ctx context.Context, deviceID string, create bool) (Session, error)
	AuthenticateEmail(ctx context.Context, email, password string, create bool) (Session, error)
	AuthenticateCustom(ctx context.Context, customID string, create bool) (Session, error)
}

// Source bundles everything a fully wired console needs from its backend.
type Source interface {
	PlayerSource
	StorageSource
	Authenticator

	// Name identifies the source in the UI, e.g. "sqlite" or "demo".
	Name() string
}
