package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/mmynk/chorechart/internal/calculator"
	"github.com/mmynk/chorechart/internal/metrics"
	"github.com/mmynk/chorechart/internal/models"
	"github.com/mmynk/chorechart/internal/storage"
	"github.com/mmynk/chorechart/internal/validation"
)

// WipeConfirmation is the token a caller must pass to Wipe.
const WipeConfirmation = "w"

// RemovalKind selects what RemoveFromHousehold deletes.
type RemovalKind string

const (
	RemoveParticipant RemovalKind = "participant"
	RemoveChore       RemovalKind = "chore"
	RemoveBoth        RemovalKind = "both"
)

// ParseRemovalKind accepts the menu letters P, C and B or the full kind
// names, ignoring case.
func ParseRemovalKind(s string) (RemovalKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "participant":
		return RemoveParticipant, nil
	case "c", "chore":
		return RemoveChore, nil
	case "b", "both":
		return RemoveBoth, nil
	}
	return "", fmt.Errorf("%w: %q (want participant, chore or both)", models.ErrInvalidRemovalKind, s)
}

// RemovalResult lists what RemoveFromHousehold deleted.
type RemovalResult struct {
	Household   string
	Participant string // empty unless a participant was removed
	Chore       string // empty unless a chore was removed
}

// ChoreService implements the chore chart application operations.
type ChoreService struct {
	store   storage.Store
	limits  validation.Limits
	metrics *metrics.Recorder
}

// NewChoreService creates a new ChoreService with the given storage backend.
// recorder may be nil.
func NewChoreService(store storage.Store, limits validation.Limits, recorder *metrics.Recorder) *ChoreService {
	return &ChoreService{store: store, limits: limits, metrics: recorder}
}

// Limits returns the validation limits the service enforces.
func (s *ChoreService) Limits() validation.Limits {
	return s.limits
}

// ListHouseholds returns every household name in creation order.
func (s *ChoreService) ListHouseholds(ctx context.Context) ([]string, error) {
	names, err := s.store.ListHouseholds(ctx)
	if err != nil {
		return nil, s.fail("ListHouseholds", err)
	}
	slog.Debug("ListHouseholds successful", "count", len(names))
	return names, nil
}

// CreateHousehold validates and persists a new household. Every
// participant/chore pair starts with a score of zero.
func (s *ChoreService) CreateHousehold(ctx context.Context, name string, participants []string, chores []models.Chore) (*models.Household, error) {
	slog.Info("CreateHousehold request received",
		"household", name,
		"participants_count", len(participants),
		"chores_count", len(chores),
	)

	if err := s.limits.ValidateHouseholdName(name); err != nil {
		return nil, s.fail("CreateHousehold", err, "household", name)
	}

	people, err := collectAll(NewParticipantCollector(s.limits, nil), participants)
	if err != nil {
		return nil, s.fail("CreateHousehold", err, "household", name)
	}
	tasks, err := collectAll(NewChoreCollector(s.limits, nil), chores)
	if err != nil {
		return nil, s.fail("CreateHousehold", err, "household", name)
	}

	household := &models.Household{
		Name:         name,
		Participants: people,
		Chores:       tasks,
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateHousehold(ctx, household); err != nil {
		return nil, s.fail("CreateHousehold", err, "household", name)
	}

	s.metrics.HouseholdCreated()
	slog.Info("Household created", "household", name, "household_id", household.ID)
	return household, nil
}

// AddToHousehold appends participants and/or chores to an existing
// household. Maximum sizes apply to the resulting totals. Minimum sizes
// are only enforced at creation, so either list may be empty as long as
// something is added, even when removals left the household short.
func (s *ChoreService) AddToHousehold(ctx context.Context, name string, participants []string, chores []models.Chore) (*models.Household, error) {
	slog.Info("AddToHousehold request received",
		"household", name,
		"participants_count", len(participants),
		"chores_count", len(chores),
	)

	household, err := s.store.GetHousehold(ctx, name)
	if err != nil {
		return nil, s.fail("AddToHousehold", err, "household", name)
	}
	if len(participants) == 0 && len(chores) == 0 {
		return nil, s.fail("AddToHousehold", fmt.Errorf("%w: nothing to add to %q", models.ErrTooFew, name))
	}

	peopleCollector, choreCollector := NewAddCollectors(s.limits, household)
	people, err := collectAll(peopleCollector, participants)
	if err != nil {
		return nil, s.fail("AddToHousehold", err, "household", name)
	}
	tasks, err := collectAll(choreCollector, chores)
	if err != nil {
		return nil, s.fail("AddToHousehold", err, "household", name)
	}

	if len(people) > 0 {
		if err := s.store.AddParticipants(ctx, name, people); err != nil {
			return nil, s.fail("AddToHousehold", err, "household", name)
		}
	}
	if len(tasks) > 0 {
		if err := s.store.AddChores(ctx, name, tasks); err != nil {
			return nil, s.fail("AddToHousehold", err, "household", name)
		}
	}

	updated, err := s.store.GetHousehold(ctx, name)
	if err != nil {
		return nil, s.fail("AddToHousehold", err, "household", name)
	}

	slog.Info("Household updated",
		"household", name,
		"participants_added", len(people),
		"chores_added", len(tasks),
	)
	return updated, nil
}

// RemoveFromHousehold deletes a participant, a chore, or one of each,
// together with their score entries. With RemoveBoth both removals are
// attempted and every failure is reported.
func (s *ChoreService) RemoveFromHousehold(ctx context.Context, name string, kind RemovalKind, participant, chore string) (*RemovalResult, error) {
	slog.Info("RemoveFromHousehold request received",
		"household", name,
		"kind", kind,
		"participant", participant,
		"chore", chore,
	)

	result := &RemovalResult{Household: name}
	var errs []error

	switch kind {
	case RemoveParticipant, RemoveChore, RemoveBoth:
	default:
		return nil, s.fail("RemoveFromHousehold", fmt.Errorf("%w: %q", models.ErrInvalidRemovalKind, kind))
	}

	if kind == RemoveParticipant || kind == RemoveBoth {
		if err := s.store.RemoveParticipant(ctx, name, participant); err != nil {
			errs = append(errs, err)
		} else {
			result.Participant = participant
			s.metrics.Removed(string(RemoveParticipant))
		}
	}
	if kind == RemoveChore || kind == RemoveBoth {
		if err := s.store.RemoveChore(ctx, name, chore); err != nil {
			errs = append(errs, err)
		} else {
			result.Chore = chore
			s.metrics.Removed(string(RemoveChore))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return result, s.fail("RemoveFromHousehold", err, "household", name)
	}

	slog.Info("Removed from household", "household", name, "participant", result.Participant, "chore", result.Chore)
	return result, nil
}

// HouseholdExists reports whether a household called name exists.
func (s *ChoreService) HouseholdExists(ctx context.Context, name string) (bool, error) {
	exists, err := s.store.HouseholdExists(ctx, name)
	if err != nil {
		return false, s.fail("HouseholdExists", err, "household", name)
	}
	return exists, nil
}

// ViewHousehold returns the household with its ordered participants and
// chores.
func (s *ChoreService) ViewHousehold(ctx context.Context, name string) (*models.Household, error) {
	slog.Info("ViewHousehold request received", "household", name)

	household, err := s.store.GetHousehold(ctx, name)
	if err != nil {
		return nil, s.fail("ViewHousehold", err, "household", name)
	}
	return household, nil
}

// LogCompletion adds increment completions of chore by participant and
// returns the counts before and after.
func (s *ChoreService) LogCompletion(ctx context.Context, household, participant, chore string, increment int) (*models.LogResult, error) {
	slog.Info("LogCompletion request received",
		"household", household,
		"participant", participant,
		"chore", chore,
		"increment", increment,
	)

	if increment < 0 {
		return nil, s.fail("LogCompletion", fmt.Errorf("%w: increment %d", models.ErrNegativeScore, increment))
	}

	h, err := s.store.GetHousehold(ctx, household)
	if err != nil {
		return nil, s.fail("LogCompletion", err, "household", household)
	}
	if !h.HasParticipant(participant) {
		return nil, s.fail("LogCompletion", fmt.Errorf("%w: %q in household %q", models.ErrParticipantNotFound, participant, household))
	}
	if !h.HasChore(chore) {
		return nil, s.fail("LogCompletion", fmt.Errorf("%w: %q in household %q", models.ErrChoreNotFound, chore, household))
	}

	before, err := s.store.GetScore(ctx, household, participant, chore)
	if err != nil {
		return nil, s.fail("LogCompletion", err, "household", household)
	}
	if increment > math.MaxInt-before {
		return nil, s.fail("LogCompletion", fmt.Errorf("%w: %d more on top of %d", models.ErrScoreOverflow, increment, before))
	}
	after := before + increment
	if err := s.store.SetScore(ctx, household, participant, chore, after); err != nil {
		return nil, s.fail("LogCompletion", err, "household", household)
	}

	s.metrics.CompletionsLogged(increment)
	slog.Info("Completion logged",
		"household", household,
		"participant", participant,
		"chore", chore,
		"before", before,
		"after", after,
	)

	return &models.LogResult{
		Household:   household,
		Participant: participant,
		Chore:       chore,
		Increment:   increment,
		Before:      before,
		After:       after,
	}, nil
}

// Leaderboard returns every participant's chore tallies in registration
// order. Ranking by score is left to the caller.
func (s *ChoreService) Leaderboard(ctx context.Context, household string) (*models.Leaderboard, error) {
	slog.Info("Leaderboard request received", "household", household)

	h, err := s.store.GetHousehold(ctx, household)
	if err != nil {
		return nil, s.fail("Leaderboard", err, "household", household)
	}
	entries, err := s.store.ListScores(ctx, household)
	if err != nil {
		return nil, s.fail("Leaderboard", err, "household", household)
	}

	board, err := calculator.BuildLeaderboard(h, entries)
	if err != nil {
		return nil, s.fail("Leaderboard", err, "household", household)
	}

	slog.Info("Leaderboard successful", "household", household, "participants_count", len(board.Standings))
	return board, nil
}

// Wipe deletes all data when confirmation equals WipeConfirmation
// (case-insensitive). Any other value leaves the data untouched.
func (s *ChoreService) Wipe(ctx context.Context, confirmation string) error {
	slog.Info("Wipe request received")

	if !strings.EqualFold(strings.TrimSpace(confirmation), WipeConfirmation) {
		return s.fail("Wipe", fmt.Errorf("%w: wipe requires %q", models.ErrNotConfirmed, WipeConfirmation))
	}
	if err := s.store.WipeAll(ctx); err != nil {
		return s.fail("Wipe", err)
	}

	s.metrics.Wiped()
	slog.Warn("All data wiped")
	return nil
}

// collectAll offers every entry to c and checks the batch can be closed.
func collectAll[T any](c *Collector[T], entries []T) ([]T, error) {
	for _, e := range entries {
		if err := c.Offer(e); err != nil {
			return nil, err
		}
	}
	if err := c.Done(); err != nil {
		return nil, err
	}
	return c.Items(), nil
}

// expectedErrors are outcomes caused by user input rather than faults.
var expectedErrors = []error{
	models.ErrInvalidName,
	models.ErrInvalidFrequency,
	models.ErrTooFew,
	models.ErrTooMany,
	models.ErrDuplicateHousehold,
	models.ErrDuplicateMember,
	models.ErrDuplicateChore,
	models.ErrHouseholdNotFound,
	models.ErrParticipantNotFound,
	models.ErrChoreNotFound,
	models.ErrNegativeScore,
	models.ErrScoreOverflow,
	models.ErrNotConfirmed,
	models.ErrInvalidRemovalKind,
}

// IsExpected reports whether err is a recoverable input error that a
// caller should show to the user rather than treat as a fault.
func IsExpected(err error) bool {
	for _, target := range expectedErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// fail logs a failed operation, counts it and returns err unchanged.
func (s *ChoreService) fail(op string, err error, attrs ...any) error {
	args := append([]any{"error", err}, attrs...)
	if IsExpected(err) {
		slog.Warn(op+" rejected", args...)
	} else {
		slog.Error(op+" failed", args...)
	}
	s.metrics.Failed(op)
	return err
}
