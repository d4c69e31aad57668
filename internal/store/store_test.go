package store

import (
	"context"
	"testing"
	"time"

	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore opens and migrates an in-memory store.
func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore()
	require.NoError(t, s.Open(":memory:"))
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate())
	return s
}

func TestOpenClose(t *testing.T) {
	s := NewSQLiteStore()
	require.NoError(t, s.Open(":memory:"))
	assert.Equal(t, "sqlite", s.Name())
	assert.NoError(t, s.Close())
}

func TestPlayerCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreatePlayer(ctx, console.Player{
		Username:    "frostbyte",
		DisplayName: "Frost Byte",
		Level:       42,
		GamesPlayed: 10,
		Wins:        7,
		Losses:      3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetPlayer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "frostbyte", got.Username)
	assert.Equal(t, 42, got.Level)
	assert.False(t, got.Banned)

	require.NoError(t, s.SetBanned(ctx, created.ID, true))
	got, err = s.GetPlayer(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Banned)
	assert.Equal(t, "Banned", got.Status())

	require.NoError(t, s.DeletePlayer(ctx, created.ID))
	_, err = s.GetPlayer(ctx, created.ID)
	assert.ErrorIs(t, err, console.ErrNotFound)
}

func TestPlayerNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetPlayer(ctx, "missing")
	assert.ErrorIs(t, err, console.ErrNotFound)
	assert.ErrorIs(t, s.SetBanned(ctx, "missing", true), console.ErrNotFound)
	assert.ErrorIs(t, s.DeletePlayer(ctx, "missing"), console.ErrNotFound)
}

func TestListPlayers_CreationOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"charlie", "alice", "bob"} {
		_, err := s.CreatePlayer(ctx, console.Player{
			Username:  name,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			LastSeen:  base,
		})
		require.NoError(t, err)
	}

	players, err := s.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 3)
	// Creation order, not alphabetical.
	assert.Equal(t, "charlie", players[0].Username)
	assert.Equal(t, "alice", players[1].Username)
	assert.Equal(t, "bob", players[2].Username)
}

func TestStorageObjectCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	player, err := s.CreatePlayer(ctx, console.Player{Username: "owner"})
	require.NoError(t, err)

	obj := console.StorageObject{
		Collection:      "saves",
		Key:             "slot1",
		UserID:          player.ID,
		Value:           `{"checkpoint":"act1"}`,
		PermissionRead:  console.PermissionOwnerRead,
		PermissionWrite: console.PermissionOwnerWrite,
	}
	require.NoError(t, s.PutObject(ctx, obj))

	got, err := s.GetObject(ctx, "saves", "slot1", player.ID)
	require.NoError(t, err)
	assert.Equal(t, `{"checkpoint":"act1"}`, got.Value)
	assert.NotEmpty(t, got.Version, "put assigns a version")
	assert.Equal(t, "owner read, owner write", got.Permission())

	require.NoError(t, s.DeleteObject(ctx, "saves", "slot1", player.ID))
	_, err = s.GetObject(ctx, "saves", "slot1", player.ID)
	assert.ErrorIs(t, err, console.ErrNotFound)
}

func TestDeletePlayer_CascadesStorage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	player, err := s.CreatePlayer(ctx, console.Player{Username: "owner"})
	require.NoError(t, err)
	require.NoError(t, s.PutObject(ctx, console.StorageObject{
		Collection: "saves", Key: "slot1", UserID: player.ID, Value: "{}",
	}))

	require.NoError(t, s.DeletePlayer(ctx, player.ID))

	objects, err := s.ListObjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.CreatePlayer(ctx, console.Player{Username: "frostbyte"})
	require.NoError(t, err)

	t.Run("email resolves existing player", func(t *testing.T) {
		sess, err := s.AuthenticateEmail(ctx, "frostbyte@example.com", "pw", false)
		require.NoError(t, err)
		assert.Equal(t, "frostbyte", sess.Username)
		assert.NotEmpty(t, sess.Token)
		assert.False(t, sess.Expired())
	})

	t.Run("unknown account without create rejected", func(t *testing.T) {
		_, err := s.AuthenticateDevice(ctx, "unknown-device", false)
		assert.ErrorIs(t, err, console.ErrAuthFailed)
	})

	t.Run("device with create registers player", func(t *testing.T) {
		sess, err := s.AuthenticateDevice(ctx, "handset-9", true)
		require.NoError(t, err)

		player, err := s.GetPlayer(ctx, sess.UserID)
		require.NoError(t, err)
		assert.Equal(t, "device:handset-9", player.Username)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		_, err := s.AuthenticateEmail(ctx, "not-an-email", "pw", true)
		assert.ErrorIs(t, err, console.ErrAuthFailed)
		_, err = s.AuthenticateEmail(ctx, "a@b.com", "", true)
		assert.ErrorIs(t, err, console.ErrAuthFailed)
	})
}

func TestSeed_Deterministic(t *testing.T) {
	ctx := context.Background()

	s1 := newTestStore(t)
	require.NoError(t, s1.Seed(ctx, SeedOptions{Players: 25, Objects: 40}))
	s2 := newTestStore(t)
	require.NoError(t, s2.Seed(ctx, SeedOptions{Players: 25, Objects: 40}))

	players1, err := s1.ListPlayers(ctx)
	require.NoError(t, err)
	players2, err := s2.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players1, 25)
	assert.Equal(t, players1, players2, "seeding is reproducible")

	objects1, err := s1.ListObjects(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, objects1)
	for _, obj := range objects1 {
		assert.NotEmpty(t, obj.Version)
		assert.NotEmpty(t, obj.UserID)
	}
}

func TestSeed_Reset(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Seed(ctx, SeedOptions{Players: 5, Objects: 5}))
	require.NoError(t, s.Seed(ctx, SeedOptions{Players: 3, Objects: 2, Reset: true}))

	players, err := s.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, players, 3)
}
