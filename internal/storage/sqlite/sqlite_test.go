package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mmynk/chorechart/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func flatshare() *models.Household {
	return &models.Household{
		Name:         "Flatshare",
		Participants: []string{"Alice", "Bob"},
		Chores: []models.Chore{
			{Name: "Dishes", Frequency: 3},
			{Name: "Bins", Frequency: 1},
		},
	}
}

func countScores(t *testing.T, store *SQLiteStore, household string) int {
	t.Helper()

	var n int
	if err := store.db.Get(&n, "SELECT COUNT(*) FROM score_log WHERE household_name = ?", household); err != nil {
		t.Fatalf("Failed to count scores: %v", err)
	}
	return n
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateHousehold generates ID and zero scores", func(t *testing.T) {
		household := flatshare()
		if err := store.CreateHousehold(ctx, household); err != nil {
			t.Fatalf("CreateHousehold failed: %v", err)
		}

		if household.ID == "" {
			t.Error("Expected household ID to be generated")
		}
		if household.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		if got := countScores(t, store, "Flatshare"); got != 4 {
			t.Errorf("Expected 4 score entries, got %d", got)
		}

		for _, p := range household.Participants {
			for _, c := range household.Chores {
				score, err := store.GetScore(ctx, "Flatshare", p, c.Name)
				if err != nil {
					t.Fatalf("GetScore(%s, %s) failed: %v", p, c.Name, err)
				}
				if score != 0 {
					t.Errorf("GetScore(%s, %s) = %d, want 0", p, c.Name, score)
				}
			}
		}
	})

	t.Run("CreateHousehold rejects duplicate name", func(t *testing.T) {
		err := store.CreateHousehold(ctx, flatshare())
		if !errors.Is(err, models.ErrDuplicateHousehold) {
			t.Errorf("Expected ErrDuplicateHousehold, got %v", err)
		}
	})

	t.Run("GetHousehold preserves registration order", func(t *testing.T) {
		household := &models.Household{
			Name:         "Cottage",
			Participants: []string{"Zed", "Amy", "Moe"},
			Chores: []models.Chore{
				{Name: "Vacuum", Frequency: 2},
				{Name: "Laundry", Frequency: 1},
			},
		}
		if err := store.CreateHousehold(ctx, household); err != nil {
			t.Fatalf("CreateHousehold failed: %v", err)
		}

		got, err := store.GetHousehold(ctx, "Cottage")
		if err != nil {
			t.Fatalf("GetHousehold failed: %v", err)
		}
		if got.ID != household.ID {
			t.Errorf("ID mismatch: got %s, want %s", got.ID, household.ID)
		}
		wantParticipants := []string{"Zed", "Amy", "Moe"}
		for i, name := range wantParticipants {
			if got.Participants[i] != name {
				t.Errorf("Participant %d: got %s, want %s", i, got.Participants[i], name)
			}
		}
		if got.Chores[0] != (models.Chore{Name: "Vacuum", Frequency: 2}) {
			t.Errorf("Unexpected first chore: %+v", got.Chores[0])
		}
		if got.Chores[1] != (models.Chore{Name: "Laundry", Frequency: 1}) {
			t.Errorf("Unexpected second chore: %+v", got.Chores[1])
		}
	})

	t.Run("GetHousehold returns error for nonexistent household", func(t *testing.T) {
		_, err := store.GetHousehold(ctx, "Nowhere")
		if !errors.Is(err, models.ErrHouseholdNotFound) {
			t.Errorf("Expected ErrHouseholdNotFound, got %v", err)
		}
	})

	t.Run("ListHouseholds returns creation order", func(t *testing.T) {
		names, err := store.ListHouseholds(ctx)
		if err != nil {
			t.Fatalf("ListHouseholds failed: %v", err)
		}
		if len(names) != 2 || names[0] != "Flatshare" || names[1] != "Cottage" {
			t.Errorf("Unexpected households: %v", names)
		}
	})
}

func TestAddToHousehold(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateHousehold(ctx, flatshare()); err != nil {
		t.Fatalf("CreateHousehold failed: %v", err)
	}

	t.Run("AddChores extends cross product for existing participants", func(t *testing.T) {
		if err := store.AddChores(ctx, "Flatshare", []models.Chore{{Name: "Hoover", Frequency: 1}}); err != nil {
			t.Fatalf("AddChores failed: %v", err)
		}
		if got := countScores(t, store, "Flatshare"); got != 6 {
			t.Errorf("Expected 6 score entries, got %d", got)
		}
		for _, p := range []string{"Alice", "Bob"} {
			score, err := store.GetScore(ctx, "Flatshare", p, "Hoover")
			if err != nil || score != 0 {
				t.Errorf("GetScore(%s, Hoover) = %d, %v; want 0, nil", p, score, err)
			}
		}
	})

	t.Run("AddParticipants extends cross product for existing chores", func(t *testing.T) {
		if err := store.AddParticipants(ctx, "Flatshare", []string{"Carol"}); err != nil {
			t.Fatalf("AddParticipants failed: %v", err)
		}
		if got := countScores(t, store, "Flatshare"); got != 9 {
			t.Errorf("Expected 9 score entries, got %d", got)
		}
	})

	t.Run("AddParticipants rejects existing member", func(t *testing.T) {
		err := store.AddParticipants(ctx, "Flatshare", []string{"Dave", "Alice"})
		if !errors.Is(err, models.ErrDuplicateMember) {
			t.Fatalf("Expected ErrDuplicateMember, got %v", err)
		}

		// Dave must not have been persisted
		participants, err := store.GetParticipants(ctx, "Flatshare")
		if err != nil {
			t.Fatalf("GetParticipants failed: %v", err)
		}
		if len(participants) != 3 {
			t.Errorf("Expected 3 participants after rollback, got %v", participants)
		}
	})

	t.Run("AddChores rejects duplicate inside batch", func(t *testing.T) {
		err := store.AddChores(ctx, "Flatshare", []models.Chore{{Name: "Mop"}, {Name: "Mop"}})
		if !errors.Is(err, models.ErrDuplicateChore) {
			t.Errorf("Expected ErrDuplicateChore, got %v", err)
		}
	})

	t.Run("Add to missing household", func(t *testing.T) {
		if err := store.AddParticipants(ctx, "Nowhere", []string{"X"}); !errors.Is(err, models.ErrHouseholdNotFound) {
			t.Errorf("AddParticipants: expected ErrHouseholdNotFound, got %v", err)
		}
		if err := store.AddChores(ctx, "Nowhere", []models.Chore{{Name: "X"}}); !errors.Is(err, models.ErrHouseholdNotFound) {
			t.Errorf("AddChores: expected ErrHouseholdNotFound, got %v", err)
		}
	})
}

func TestRemoveFromHousehold(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateHousehold(ctx, flatshare()); err != nil {
		t.Fatalf("CreateHousehold failed: %v", err)
	}
	if err := store.SetScore(ctx, "Flatshare", "Bob", "Dishes", 5); err != nil {
		t.Fatalf("SetScore failed: %v", err)
	}

	t.Run("RemoveParticipant deletes only their scores", func(t *testing.T) {
		if err := store.RemoveParticipant(ctx, "Flatshare", "Alice"); err != nil {
			t.Fatalf("RemoveParticipant failed: %v", err)
		}
		if got := countScores(t, store, "Flatshare"); got != 2 {
			t.Errorf("Expected 2 score entries, got %d", got)
		}
		if _, err := store.GetScore(ctx, "Flatshare", "Alice", "Dishes"); !errors.Is(err, models.ErrScoreEntryNotFound) {
			t.Errorf("Expected ErrScoreEntryNotFound for removed participant, got %v", err)
		}
		score, err := store.GetScore(ctx, "Flatshare", "Bob", "Dishes")
		if err != nil || score != 5 {
			t.Errorf("Bob's score changed: got %d, %v", score, err)
		}
	})

	t.Run("RemoveChore deletes its scores", func(t *testing.T) {
		if err := store.RemoveChore(ctx, "Flatshare", "Bins"); err != nil {
			t.Fatalf("RemoveChore failed: %v", err)
		}
		if got := countScores(t, store, "Flatshare"); got != 1 {
			t.Errorf("Expected 1 score entry, got %d", got)
		}
		chores, _ := store.GetChores(ctx, "Flatshare")
		if len(chores) != 1 || chores[0].Name != "Dishes" {
			t.Errorf("Unexpected chores: %v", chores)
		}
	})

	t.Run("Remove reports missing entities", func(t *testing.T) {
		if err := store.RemoveParticipant(ctx, "Flatshare", "Alice"); !errors.Is(err, models.ErrParticipantNotFound) {
			t.Errorf("Expected ErrParticipantNotFound, got %v", err)
		}
		if err := store.RemoveChore(ctx, "Flatshare", "Bins"); !errors.Is(err, models.ErrChoreNotFound) {
			t.Errorf("Expected ErrChoreNotFound, got %v", err)
		}
		if err := store.RemoveChore(ctx, "Nowhere", "Bins"); !errors.Is(err, models.ErrHouseholdNotFound) {
			t.Errorf("Expected ErrHouseholdNotFound, got %v", err)
		}
	})

	t.Run("Removal is scoped to one household", func(t *testing.T) {
		other := &models.Household{
			Name:         "Annex",
			Participants: []string{"Bob", "Eve"},
			Chores:       []models.Chore{{Name: "Dishes", Frequency: 1}},
		}
		if err := store.CreateHousehold(ctx, other); err != nil {
			t.Fatalf("CreateHousehold failed: %v", err)
		}
		if err := store.RemoveParticipant(ctx, "Annex", "Bob"); err != nil {
			t.Fatalf("RemoveParticipant failed: %v", err)
		}
		participants, _ := store.GetParticipants(ctx, "Flatshare")
		if len(participants) != 1 || participants[0] != "Bob" {
			t.Errorf("Flatshare participants changed: %v", participants)
		}
	})
}

func TestScores(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateHousehold(ctx, flatshare()); err != nil {
		t.Fatalf("CreateHousehold failed: %v", err)
	}

	t.Run("SetScore then GetScore", func(t *testing.T) {
		if err := store.SetScore(ctx, "Flatshare", "Alice", "Dishes", 3); err != nil {
			t.Fatalf("SetScore failed: %v", err)
		}
		score, err := store.GetScore(ctx, "Flatshare", "Alice", "Dishes")
		if err != nil {
			t.Fatalf("GetScore failed: %v", err)
		}
		if score != 3 {
			t.Errorf("Score: got %d, want 3", score)
		}
	})

	t.Run("SetScore rejects negative values", func(t *testing.T) {
		err := store.SetScore(ctx, "Flatshare", "Alice", "Dishes", -1)
		if !errors.Is(err, models.ErrNegativeScore) {
			t.Errorf("Expected ErrNegativeScore, got %v", err)
		}
	})

	t.Run("SetScore on missing entry", func(t *testing.T) {
		err := store.SetScore(ctx, "Flatshare", "Zed", "Dishes", 1)
		if !errors.Is(err, models.ErrScoreEntryNotFound) {
			t.Errorf("Expected ErrScoreEntryNotFound, got %v", err)
		}
	})

	t.Run("ListScores orders by registration", func(t *testing.T) {
		entries, err := store.ListScores(ctx, "Flatshare")
		if err != nil {
			t.Fatalf("ListScores failed: %v", err)
		}
		want := []models.ScoreEntry{
			{Household: "Flatshare", Participant: "Alice", Chore: "Dishes", Score: 3},
			{Household: "Flatshare", Participant: "Alice", Chore: "Bins", Score: 0},
			{Household: "Flatshare", Participant: "Bob", Chore: "Dishes", Score: 0},
			{Household: "Flatshare", Participant: "Bob", Chore: "Bins", Score: 0},
		}
		if len(entries) != len(want) {
			t.Fatalf("Expected %d entries, got %d", len(want), len(entries))
		}
		for i := range want {
			if entries[i] != want[i] {
				t.Errorf("Entry %d: got %+v, want %+v", i, entries[i], want[i])
			}
		}
	})
}

func TestWipeAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateHousehold(ctx, flatshare()); err != nil {
		t.Fatalf("CreateHousehold failed: %v", err)
	}
	if err := store.WipeAll(ctx); err != nil {
		t.Fatalf("WipeAll failed: %v", err)
	}

	names, err := store.ListHouseholds(ctx)
	if err != nil {
		t.Fatalf("ListHouseholds failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Expected no households after wipe, got %v", names)
	}
	if got := countScores(t, store, "Flatshare"); got != 0 {
		t.Errorf("Expected no score entries after wipe, got %d", got)
	}

	// The name is free again
	if err := store.CreateHousehold(ctx, flatshare()); err != nil {
		t.Errorf("CreateHousehold after wipe failed: %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	store, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := store.CreateHousehold(ctx, flatshare()); err != nil {
		t.Fatalf("CreateHousehold failed: %v", err)
	}
	store.Close()

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	exists, err := reopened.HouseholdExists(ctx, "Flatshare")
	if err != nil {
		t.Fatalf("HouseholdExists failed: %v", err)
	}
	if !exists {
		t.Error("Expected household to survive reopening")
	}
}
