// Package fixtures provides the demo-mode record source: players and
// storage objects loaded from JSON files, falling back to an embedded
// sample set when no fixtures directory is configured. It exists so pages
// can be developed against stable data without a live backend; the
// provider is injected like any other source, never toggled inside the
// presentation layer.
package fixtures

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
)

//go:embed samples/*.json
var samples embed.FS

const (
	playersFile = "players.json"
	storageFile = "storage.json"

	sessionTTL = time.Hour
)

// Provider is an in-memory console.Source backed by fixture files.
// Mutations (ban, delete) apply to the in-memory copy only; Reload
// restores the on-disk state.
type Provider struct {
	mu      sync.RWMutex
	dir     string
	players []console.Player
	objects []console.StorageObject
}

// New loads fixtures from dir, or from the embedded sample set when dir is
// empty.
func New(dir string) (*Provider, error) {
	p := &Provider{dir: dir}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Name implements console.Source.
func (p *Provider) Name() string {
	return "demo"
}

// Dir returns the fixtures directory, or "" when serving embedded samples.
func (p *Provider) Dir() string {
	return p.dir
}

// Reload re-reads the fixture files, discarding in-memory mutations.
// Missing files fall back to the embedded samples so a partially
// populated fixtures directory still yields a usable console.
func (p *Provider) Reload() error {
	players, err := loadFixture[console.Player](p.dir, playersFile)
	if err != nil {
		return err
	}
	objects, err := loadFixture[console.StorageObject](p.dir, storageFile)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.players = players
	p.objects = objects
	p.mu.Unlock()
	return nil
}

// loadFixture reads one fixture file from dir, or from the embedded
// samples when dir is empty or the file is absent.
func loadFixture[T any](dir, name string) ([]T, error) {
	var data []byte
	var err error

	if dir != "" {
		data, err = os.ReadFile(filepath.Join(dir, name))
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read fixture %s: %w", name, err)
		}
	}
	if data == nil {
		data, err = samples.ReadFile("samples/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded fixture %s: %w", name, err)
		}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", name, err)
	}
	return records, nil
}

// ListPlayers implements console.PlayerSource.
func (p *Provider) ListPlayers(_ context.Context) ([]console.Player, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	players := make([]console.Player, len(p.players))
	copy(players, p.players)
	return players, nil
}

// GetPlayer implements console.PlayerSource.
func (p *Provider) GetPlayer(_ context.Context, id string) (console.Player, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, player := range p.players {
		if player.ID == id {
			return player, nil
		}
	}
	return console.Player{}, console.ErrNotFound
}

// SetBanned implements console.PlayerSource.
func (p *Provider) SetBanned(_ context.Context, id string, banned bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.players {
		if p.players[i].ID == id {
			p.players[i].Banned = banned
			return nil
		}
	}
	return console.ErrNotFound
}

// DeletePlayer implements console.PlayerSource.
func (p *Provider) DeletePlayer(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.players {
		if p.players[i].ID == id {
			p.players = append(p.players[:i], p.players[i+1:]...)
			return nil
		}
	}
	return console.ErrNotFound
}

// ListObjects implements console.StorageSource.
func (p *Provider) ListObjects(_ context.Context) ([]console.StorageObject, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	objects := make([]console.StorageObject, len(p.objects))
	copy(objects, p.objects)
	return objects, nil
}

// GetObject implements console.StorageSource.
func (p *Provider) GetObject(_ context.Context, collection, key, userID string) (console.StorageObject, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, obj := range p.objects {
		if obj.Collection == collection && obj.Key == key && obj.UserID == userID {
			return obj, nil
		}
	}
	return console.StorageObject{}, console.ErrNotFound
}

// DeleteObject implements console.StorageSource.
func (p *Provider) DeleteObject(_ context.Context, collection, key, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obj := range p.objects {
		if obj.Collection == collection && obj.Key == key && obj.UserID == userID {
			p.objects = append(p.objects[:i], p.objects[i+1:]...)
			return nil
		}
	}
	return console.ErrNotFound
}

// AuthenticateDevice implements console.Authenticator. Demo mode accepts
// any non-empty device ID and issues a throwaway session.
func (p *Provider) AuthenticateDevice(_ context.Context, deviceID string, create bool) (console.Session, error) {
	if deviceID == "" {
		return console.Session{}, console.ErrAuthFailed
	}
	return p.issueSession("device", "device:"+deviceID, create)
}

// AuthenticateEmail implements console.Authenticator. The password is not
// verified in demo mode, but must be non-empty to mimic the backend's
// validation.
func (p *Provider) AuthenticateEmail(_ context.Context, email, password string, create bool) (console.Session, error) {
	if email == "" || password == "" || !strings.Contains(email, "@") {
		return console.Session{}, console.ErrAuthFailed
	}
	username := email[:strings.Index(email, "@")]
	return p.issueSession("email", username, create)
}

// AuthenticateCustom implements console.Authenticator.
func (p *Provider) AuthenticateCustom(_ context.Context, customID string, create bool) (console.Session, error) {
	if customID == "" {
		return console.Session{}, console.ErrAuthFailed
	}
	return p.issueSession("custom", "custom:"+customID, create)
}

// issueSession resolves the username against the fixture players, creating
// a transient player when permitted, and returns a fresh demo session.
func (p *Provider) issueSession(provider, username string, create bool) (console.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var userID string
	for _, player := range p.players {
		if player.Username == username {
			userID = player.ID
			break
		}
	}
	if userID == "" {
		if !create {
			return console.Session{}, console.ErrAuthFailed
		}
		now := time.Now().UTC()
		player := console.Player{
			ID:        uuid.New().String(),
			Username:  username,
			Level:     1,
			LastSeen:  now,
			CreatedAt: now,
		}
		p.players = append(p.players, player)
		userID = player.ID
	}

	now := time.Now().UTC()
	return console.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		Username:  username,
		Provider:  provider,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}, nil
}
