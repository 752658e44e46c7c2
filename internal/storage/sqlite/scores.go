package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/chorechart/internal/models"
)

type scoreRow struct {
	Household   string `db:"household_name"`
	Participant string `db:"member_name"`
	Chore       string `db:"chore_name"`
	Score       int    `db:"score"`
}

// GetScore returns the completion count for one participant/chore pair.
func (s *SQLiteStore) GetScore(ctx context.Context, household, participant, chore string) (int, error) {
	if err := requireHousehold(ctx, s.db, household); err != nil {
		return 0, err
	}

	var score int
	err := s.db.GetContext(ctx, &score,
		"SELECT score FROM score_log WHERE household_name = ? AND member_name = ? AND chore_name = ?",
		household, participant, chore,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %q/%q in household %q", models.ErrScoreEntryNotFound, participant, chore, household)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get score: %w", err)
	}
	return score, nil
}

// SetScore overwrites the completion count for one participant/chore pair.
func (s *SQLiteStore) SetScore(ctx context.Context, household, participant, chore string, value int) error {
	if value < 0 {
		return fmt.Errorf("%w: %d for %q/%q", models.ErrNegativeScore, value, participant, chore)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireHousehold(ctx, tx, household); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE score_log SET score = ? WHERE household_name = ? AND member_name = ? AND chore_name = ?",
		value, household, participant, chore,
	)
	if err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q/%q in household %q", models.ErrScoreEntryNotFound, participant, chore, household)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListScores returns every score entry of a household, ordered by
// participant and then chore registration order.
func (s *SQLiteStore) ListScores(ctx context.Context, household string) ([]models.ScoreEntry, error) {
	if err := requireHousehold(ctx, s.db, household); err != nil {
		return nil, err
	}

	var rows []scoreRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT s.household_name, s.member_name, s.chore_name, s.score
		FROM score_log s
		JOIN household_members m
			ON m.household_name = s.household_name AND m.member_name = s.member_name
		JOIN household_chores c
			ON c.household_name = s.household_name AND c.chore_name = s.chore_name
		WHERE s.household_name = ?
		ORDER BY m.seq, c.seq`,
		household,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}

	entries := make([]models.ScoreEntry, len(rows))
	for i, r := range rows {
		entries[i] = models.ScoreEntry{
			Household:   r.Household,
			Participant: r.Participant,
			Chore:       r.Chore,
			Score:       r.Score,
		}
	}
	return entries, nil
}
