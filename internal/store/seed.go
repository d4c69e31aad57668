package store

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/quarterdeck-labs/quarterdeck/internal/console"
)

// SeedOptions controls sample data generation.
type SeedOptions struct {
	Players int
	Objects int
	// Reset drops existing rows before seeding.
	Reset bool
}

var (
	nameParts1 = []string{
		"frost", "night", "pixel", "salt", "quiet", "red", "glass", "sand",
		"copper", "stage", "drift", "hex", "moon", "iron", "wave", "thorn",
		"cloud", "ember", "keel", "pale", "stone", "ash", "grim", "swift",
	}
	nameParts2 = []string{
		"byte", "owl", "mage", "flats", "storm", "shift", "cannon", "bar",
		"wire", "hand", "wood", "hunter", "rake", "quill", "length", "field",
		"break", "vale", "haul", "gale", "wash", "fall", "spire", "run",
	}
	collections = []string{"saves", "settings", "loadouts", "achievements", "mail"}
	objectKeys  = []string{"slot1", "slot2", "video", "audio", "pvp-main", "inbox", "unlocked"}
)

// Seed populates the store with deterministic sample players and storage
// objects. The same options always generate the same dataset, so seeded
// environments are reproducible across machines.
func (s *SQLiteStore) Seed(ctx context.Context, opts SeedOptions) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if opts.Reset {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM storage_objects`); err != nil {
			return fmt.Errorf("failed to reset storage objects: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, `DELETE FROM players`); err != nil {
			return fmt.Errorf("failed to reset players: %w", err)
		}
	}

	rng := rand.New(rand.NewSource(42))
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	players := make([]console.Player, 0, opts.Players)
	for i := 0; i < opts.Players; i++ {
		username := fmt.Sprintf("%s%s-%02d",
			nameParts1[rng.Intn(len(nameParts1))],
			nameParts2[rng.Intn(len(nameParts2))],
			i+1)
		games := rng.Intn(500)
		wins := 0
		if games > 0 {
			wins = rng.Intn(games + 1)
		}
		created := base.Add(time.Duration(i) * 13 * time.Hour)
		player := console.Player{
			ID:          fmt.Sprintf("seed-%04d", i+1),
			Username:    username,
			Level:       1 + rng.Intn(99),
			GamesPlayed: games,
			Wins:        wins,
			Losses:      games - wins,
			LastSeen:    created.Add(time.Duration(rng.Intn(200)) * time.Hour),
			CreatedAt:   created,
			Banned:      rng.Intn(20) == 0,
		}
		if _, err := s.CreatePlayer(ctx, player); err != nil {
			return err
		}
		players = append(players, player)
	}

	if len(players) == 0 {
		return nil
	}

	for i := 0; i < opts.Objects; i++ {
		owner := players[rng.Intn(len(players))]
		obj := console.StorageObject{
			Collection:      collections[rng.Intn(len(collections))],
			Key:             fmt.Sprintf("%s-%02d", objectKeys[rng.Intn(len(objectKeys))], i+1),
			UserID:          owner.ID,
			Value:           fmt.Sprintf(`{"seed":%d,"owner":%q}`, i+1, owner.Username),
			Version:         fmt.Sprintf("%08x", rng.Uint32()),
			PermissionRead:  rng.Intn(3),
			PermissionWrite: rng.Intn(2),
			UpdatedAt:       base.Add(time.Duration(i) * 7 * time.Hour),
		}
		if err := s.PutObject(ctx, obj); err != nil {
			return err
		}
	}
	return nil
}
