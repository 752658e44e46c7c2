// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/chorechart/internal/models"
)

// Store defines the interface for household, chore and score storage.
// Every record is keyed by household name. Each mutating method is atomic:
// on error nothing it attempted is persisted.
type Store interface {
	// HouseholdExists reports whether a household with the given name exists.
	HouseholdExists(ctx context.Context, name string) (bool, error)

	// ListHouseholds returns every household name in creation order.
	ListHouseholds(ctx context.Context) ([]string, error)

	// CreateHousehold persists a new household with its participants and
	// chores, and a zero score for every participant/chore pair.
	// The household.ID and household.CreatedAt fields are populated by the store.
	// Returns models.ErrDuplicateHousehold if the name is taken.
	CreateHousehold(ctx context.Context, household *models.Household) error

	// GetHousehold retrieves a household with its ordered participants and chores.
	GetHousehold(ctx context.Context, name string) (*models.Household, error)

	// AddParticipants appends participants to an existing household and
	// creates their zero scores against every existing chore.
	AddParticipants(ctx context.Context, household string, names []string) error

	// AddChores appends chores to an existing household and creates their
	// zero scores against every existing participant.
	AddChores(ctx context.Context, household string, chores []models.Chore) error

	// RemoveParticipant deletes a participant and all of their scores.
	RemoveParticipant(ctx context.Context, household, name string) error

	// RemoveChore deletes a chore and all of its scores.
	RemoveChore(ctx context.Context, household, name string) error

	GetParticipants(ctx context.Context, household string) ([]string, error)
	GetChores(ctx context.Context, household string) ([]models.Chore, error)

	// GetScore returns the completion count for one participant/chore pair.
	GetScore(ctx context.Context, household, participant, chore string) (int, error)

	// SetScore overwrites the completion count for one participant/chore pair.
	// Returns models.ErrNegativeScore if value < 0.
	SetScore(ctx context.Context, household, participant, chore string, value int) error

	// ListScores returns every score entry of a household, ordered by
	// participant and then chore registration order.
	ListScores(ctx context.Context, household string) ([]models.ScoreEntry, error)

	// WipeAll deletes every household, participant, chore and score.
	WipeAll(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
