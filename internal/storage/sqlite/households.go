package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mmynk/chorechart/internal/models"
)

type householdRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt int64  `db:"created_at"`
}

type choreRow struct {
	Name      string `db:"chore_name"`
	Frequency int    `db:"frequency"`
}

// HouseholdExists reports whether a household with the given name exists.
func (s *SQLiteStore) HouseholdExists(ctx context.Context, name string) (bool, error) {
	return householdExists(ctx, s.db, name)
}

// ListHouseholds returns every household name in creation order.
func (s *SQLiteStore) ListHouseholds(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := s.db.SelectContext(ctx, &names, "SELECT name FROM households ORDER BY seq"); err != nil {
		return nil, fmt.Errorf("failed to list households: %w", err)
	}
	return names, nil
}

// CreateHousehold persists a new household together with its participants,
// chores and zeroed score entries.
func (s *SQLiteStore) CreateHousehold(ctx context.Context, household *models.Household) error {
	// Generate ID if not set
	if household.ID == "" {
		household.ID = uuid.New().String()
	}
	if household.CreatedAt == 0 {
		household.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := householdExists(ctx, tx, household.Name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %q", models.ErrDuplicateHousehold, household.Name)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO households (id, name, created_at) VALUES (?, ?, ?)",
		household.ID, household.Name, household.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert household: %w", err)
	}

	if err := insertParticipants(ctx, tx, household.Name, household.Participants); err != nil {
		return err
	}
	if err := insertChores(ctx, tx, household.Name, household.Chores); err != nil {
		return err
	}
	if _, err := fillScores(ctx, tx, household.Name); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetHousehold retrieves a household with its ordered participants and chores.
func (s *SQLiteStore) GetHousehold(ctx context.Context, name string) (*models.Household, error) {
	var row householdRow
	err := s.db.GetContext(ctx, &row,
		"SELECT id, name, created_at FROM households WHERE name = ?",
		name,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", models.ErrHouseholdNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household: %w", err)
	}

	participants, err := selectParticipants(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	chores, err := selectChores(ctx, s.db, name)
	if err != nil {
		return nil, err
	}

	return &models.Household{
		ID:           row.ID,
		Name:         row.Name,
		Participants: participants,
		Chores:       chores,
		CreatedAt:    row.CreatedAt,
	}, nil
}

// AddParticipants appends participants and extends the score cross product.
func (s *SQLiteStore) AddParticipants(ctx context.Context, household string, names []string) error {
	return s.withHousehold(ctx, household, func(tx *sqlx.Tx) error {
		return insertParticipants(ctx, tx, household, names)
	})
}

// AddChores appends chores and extends the score cross product.
func (s *SQLiteStore) AddChores(ctx context.Context, household string, chores []models.Chore) error {
	return s.withHousehold(ctx, household, func(tx *sqlx.Tx) error {
		return insertChores(ctx, tx, household, chores)
	})
}

// withHousehold runs fn in a transaction after checking the household
// exists, then fills any missing score entries before committing.
func (s *SQLiteStore) withHousehold(ctx context.Context, household string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireHousehold(ctx, tx, household); err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	if _, err := fillScores(ctx, tx, household); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RemoveParticipant deletes a participant and all of their score entries.
func (s *SQLiteStore) RemoveParticipant(ctx context.Context, household, name string) error {
	return s.remove(ctx, household, name,
		"DELETE FROM score_log WHERE household_name = ? AND member_name = ?",
		"DELETE FROM household_members WHERE household_name = ? AND member_name = ?",
		models.ErrParticipantNotFound,
	)
}

// RemoveChore deletes a chore and all of its score entries.
func (s *SQLiteStore) RemoveChore(ctx context.Context, household, name string) error {
	return s.remove(ctx, household, name,
		"DELETE FROM score_log WHERE household_name = ? AND chore_name = ?",
		"DELETE FROM household_chores WHERE household_name = ? AND chore_name = ?",
		models.ErrChoreNotFound,
	)
}

func (s *SQLiteStore) remove(ctx context.Context, household, name, scoresQuery, entityQuery string, notFound error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireHousehold(ctx, tx, household); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, scoresQuery, household, name); err != nil {
		return fmt.Errorf("failed to delete score entries: %w", err)
	}
	result, err := tx.ExecContext(ctx, entityQuery, household, name)
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q in household %q", notFound, name, household)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetParticipants returns a household's participants in registration order.
func (s *SQLiteStore) GetParticipants(ctx context.Context, household string) ([]string, error) {
	if err := requireHousehold(ctx, s.db, household); err != nil {
		return nil, err
	}
	return selectParticipants(ctx, s.db, household)
}

// GetChores returns a household's chores in registration order.
func (s *SQLiteStore) GetChores(ctx context.Context, household string) ([]models.Chore, error) {
	if err := requireHousehold(ctx, s.db, household); err != nil {
		return nil, err
	}
	return selectChores(ctx, s.db, household)
}

func selectParticipants(ctx context.Context, q sqlx.QueryerContext, household string) ([]string, error) {
	names := []string{}
	err := sqlx.SelectContext(ctx, q, &names,
		"SELECT member_name FROM household_members WHERE household_name = ? ORDER BY seq",
		household,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	return names, nil
}

func selectChores(ctx context.Context, q sqlx.QueryerContext, household string) ([]models.Chore, error) {
	var rows []choreRow
	err := sqlx.SelectContext(ctx, q, &rows,
		"SELECT chore_name, frequency FROM household_chores WHERE household_name = ? ORDER BY seq",
		household,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get chores: %w", err)
	}

	chores := make([]models.Chore, len(rows))
	for i, r := range rows {
		chores[i] = models.Chore{Name: r.Name, Frequency: r.Frequency}
	}
	return chores, nil
}

// insertParticipants adds names to household, rejecting any name that is
// repeated in the batch or already registered.
func insertParticipants(ctx context.Context, tx *sqlx.Tx, household string, names []string) error {
	existing, err := selectParticipants(ctx, tx, household)
	if err != nil {
		return err
	}
	seen := toSet(existing)

	for _, name := range names {
		if seen[name] {
			return fmt.Errorf("%w: %q in household %q", models.ErrDuplicateMember, name, household)
		}
		seen[name] = true

		_, err := tx.ExecContext(ctx,
			"INSERT INTO household_members (household_name, member_name) VALUES (?, ?)",
			household, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

// insertChores adds chores to household, rejecting any name that is
// repeated in the batch or already registered.
func insertChores(ctx context.Context, tx *sqlx.Tx, household string, chores []models.Chore) error {
	existing, err := selectChores(ctx, tx, household)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing)+len(chores))
	for _, c := range existing {
		seen[c.Name] = true
	}

	for _, chore := range chores {
		if seen[chore.Name] {
			return fmt.Errorf("%w: %q in household %q", models.ErrDuplicateChore, chore.Name, household)
		}
		if chore.Frequency < 0 {
			return fmt.Errorf("%w: %q has frequency %d", models.ErrInvalidFrequency, chore.Name, chore.Frequency)
		}
		seen[chore.Name] = true

		_, err := tx.ExecContext(ctx,
			"INSERT INTO household_chores (household_name, chore_name, frequency) VALUES (?, ?, ?)",
			household, chore.Name, chore.Frequency,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chore: %w", err)
		}
	}
	return nil
}

// fillScores creates a zero score entry for every participant/chore pair
// of household that does not have one yet and returns how many were added.
func fillScores(ctx context.Context, tx *sqlx.Tx, household string) (int64, error) {
	result, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO score_log (household_name, member_name, chore_name, score)
		SELECT m.household_name, m.member_name, c.chore_name, 0
		FROM household_members m
		JOIN household_chores c ON c.household_name = m.household_name
		WHERE m.household_name = ?`,
		household,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize score entries: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return n, nil
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
