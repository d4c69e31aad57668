// Package store implements the console's default backend source on a local
// SQLite database. It stands in for a live platform during development:
// `quarterdeck seed` populates it, the web and CLI surfaces read and
// moderate it through the console.Source interfaces.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// SQLiteStore implements console.Source using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB exposes the underlying connection for migrations and tests.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Name implements console.Source.
func (s *SQLiteStore) Name() string {
	return "sqlite"
}

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// --- Player operations ---

const playerColumns = `id, username, display_name, level, games_played, wins, losses, last_seen, created_at, banned`

// ListPlayers returns all players in creation order.
func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]console.Player, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []console.Player
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, rows.Err()
}

// GetPlayer retrieves a player by ID.
func (s *SQLiteStore) GetPlayer(ctx context.Context, id string) (console.Player, error) {
	if s.db == nil {
		return console.Player{}, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	player, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return console.Player{}, console.ErrNotFound
	}
	if err != nil {
		return console.Player{}, fmt.Errorf("failed to get player: %w", err)
	}
	return player, nil
}

// SetBanned updates a player's moderation status.
func (s *SQLiteStore) SetBanned(ctx context.Context, id string, banned bool) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE players SET banned = ? WHERE id = ?`, banned, id)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	return checkAffected(result)
}

// DeletePlayer removes a player and their storage objects.
func (s *SQLiteStore) DeletePlayer(ctx context.Context, id string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM storage_objects WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete player storage: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if err := checkAffected(result); err != nil {
		return err
	}
	return tx.Commit()
}

// --- Storage object operations ---

const objectColumns = `collection, key, user_id, value, version, permission_read, permission_write, updated_at`

// ListObjects returns all storage objects ordered by collection, key, user.
func (s *SQLiteStore) ListObjects(ctx context.Context) ([]console.StorageObject, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+objectColumns+` FROM storage_objects ORDER BY collection, key, user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage objects: %w", err)
	}
	defer rows.Close()

	var objects []console.StorageObject
	for rows.Next() {
		obj, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, rows.Err()
}

// GetObject retrieves one storage object by its composite address.
func (s *SQLiteStore) GetObject(ctx context.Context, collection, key, userID string) (console.StorageObject, error) {
	if s.db == nil {
		return console.StorageObject{}, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+objectColumns+` FROM storage_objects WHERE collection = ? AND key = ? AND user_id = ?`,
		collection, key, userID)
	obj, err := scanObject(row)
	if err == sql.ErrNoRows {
		return console.StorageObject{}, console.ErrNotFound
	}
	if err != nil {
		return console.StorageObject{}, fmt.Errorf("failed to get storage object: %w", err)
	}
	return obj, nil
}

// DeleteObject removes one storage object.
func (s *SQLiteStore) DeleteObject(ctx context.Context, collection, key, userID string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM storage_objects WHERE collection = ? AND key = ? AND user_id = ?`,
		collection, key, userID)
	if err != nil {
		return fmt.Errorf("failed to delete storage object: %w", err)
	}
	return checkAffected(result)
}

// PutObject inserts or replaces a storage object, assigning a fresh
// version. Used by the seeder.
func (s *SQLiteStore) PutObject(ctx context.Context, obj console.StorageObject) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if obj.Version == "" {
		obj.Version = uuid.New().String()[:8]
	}
	if obj.UpdatedAt.IsZero() {
		obj.UpdatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO storage_objects (`+objectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		obj.Collection, obj.Key, obj.UserID, obj.Value, obj.Version,
		obj.PermissionRead, obj.PermissionWrite, obj.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to put storage object: %w", err)
	}
	return nil
}

// CreatePlayer inserts a player, assigning an ID when absent. Used by the
// seeder and authenticate-or-create.
func (s *SQLiteStore) CreatePlayer(ctx context.Context, player console.Player) (console.Player, error) {
	if s.db == nil {
		return console.Player{}, fmt.Errorf("database not opened")
	}

	if player.ID == "" {
		player.ID = generateID()
	}
	now := time.Now().UTC()
	if player.CreatedAt.IsZero() {
		player.CreatedAt = now
	}
	if player.LastSeen.IsZero() {
		player.LastSeen = now
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (`+playerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		player.ID, player.Username, player.DisplayName, player.Level,
		player.GamesPlayed, player.Wins, player.Losses,
		player.LastSeen, player.CreatedAt, player.Banned)
	if err != nil {
		return console.Player{}, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

// --- Authentication ---

// AuthenticateDevice implements console.Authenticator against the local
// player table. Device identities map to usernames of the form
// "device:<id>".
func (s *SQLiteStore) AuthenticateDevice(ctx context.Context, deviceID string, create bool) (console.Session, error) {
	if deviceID == "" {
		return console.Session{}, console.ErrAuthFailed
	}
	return s.issueSession(ctx, "device", "device:"+deviceID, create)
}

// AuthenticateEmail implements console.Authenticator. The local store does
// not hold credentials, so any non-empty password passes; the flow still
// exercises lookup and authenticate-or-create semantics.
func (s *SQLiteStore) AuthenticateEmail(ctx context.Context, email, password string, create bool) (console.Session, error) {
	at := strings.Index(email, "@")
	if at <= 0 || password == "" {
		return console.Session{}, console.ErrAuthFailed
	}
	return s.issueSession(ctx, "email", email[:at], create)
}

// AuthenticateCustom implements console.Authenticator.
func (s *SQLiteStore) AuthenticateCustom(ctx context.Context, customID string, create bool) (console.Session, error) {
	if customID == "" {
		return console.Session{}, console.ErrAuthFailed
	}
	return s.issueSession(ctx, "custom", "custom:"+customID, create)
}

const sessionTTL = time.Hour

func (s *SQLiteStore) issueSession(ctx context.Context, provider, username string, create bool) (console.Session, error) {
	if s.db == nil {
		return console.Session{}, fmt.Errorf("database not opened")
	}

	var userID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM players WHERE username = ?`, username).Scan(&userID)
	if err == sql.ErrNoRows {
		if !create {
			return console.Session{}, console.ErrAuthFailed
		}
		player, err := s.CreatePlayer(ctx, console.Player{Username: username, Level: 1})
		if err != nil {
			return console.Session{}, err
		}
		userID = player.ID
	} else if err != nil {
		return console.Session{}, fmt.Errorf("failed to look up player: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`UPDATE players SET last_seen = ? WHERE id = ?`, time.Now().UTC(), userID); err != nil {
		return console.Session{}, fmt.Errorf("failed to touch player: %w", err)
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

// --- helpers ---

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (console.Player, error) {
	var p console.Player
	err := row.Scan(&p.ID, &p.Username, &p.DisplayName, &p.Level,
		&p.GamesPlayed, &p.Wins, &p.Losses, &p.LastSeen, &p.CreatedAt, &p.Banned)
	return p, err
}

func scanObject(row scanner) (console.StorageObject, error) {
	var o console.StorageObject
	err := row.Scan(&o.Collection, &o.Key, &o.UserID, &o.Value, &o.Version,
		&o.PermissionRead, &o.PermissionWrite, &o.UpdatedAt)
	return o, err
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return console.ErrNotFound
	}
	return nil
}
