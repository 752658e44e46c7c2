// Package validation checks household, participant and chore input
// against configurable limits before it reaches storage.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mmynk/chorechart/internal/models"
)

// Kind names the collection a size check applies to.
type Kind string

const (
	KindParticipants Kind = "participants"
	KindChores       Kind = "chores"
)

// Limits holds the bounds enforced on user input.
type Limits struct {
	MinNameLength      int `mapstructure:"min_name_length"`
	MaxNameLength      int `mapstructure:"max_name_length"`
	MaxChoreNameLength int `mapstructure:"max_chore_name_length"`
	MaxFrequency       int `mapstructure:"max_frequency"`
	MinParticipants    int `mapstructure:"min_participants"`
	MaxParticipants    int `mapstructure:"max_participants"`
	MinChores          int `mapstructure:"min_chores"`
	MaxChores          int `mapstructure:"max_chores"`
}

// DefaultLimits returns the limits used when no configuration overrides them.
func DefaultLimits() Limits {
	return Limits{
		MinNameLength:      1,
		MaxNameLength:      25,
		MaxChoreNameLength: 40,
		MaxFrequency:       21,
		MinParticipants:    2,
		MaxParticipants:    12,
		MinChores:          1,
		MaxChores:          30,
	}
}

// Check reports limits that can never be satisfied.
func (l Limits) Check() error {
	switch {
	case l.MinNameLength < 1:
		return fmt.Errorf("min_name_length must be at least 1, got %d", l.MinNameLength)
	case l.MaxNameLength < l.MinNameLength:
		return fmt.Errorf("max_name_length %d is below min_name_length %d", l.MaxNameLength, l.MinNameLength)
	case l.MaxChoreNameLength < l.MinNameLength:
		return fmt.Errorf("max_chore_name_length %d is below min_name_length %d", l.MaxChoreNameLength, l.MinNameLength)
	case l.MaxFrequency < 0:
		return fmt.Errorf("max_frequency must not be negative, got %d", l.MaxFrequency)
	case l.MinParticipants < 0 || l.MaxParticipants < l.MinParticipants:
		return fmt.Errorf("participant bounds [%d, %d] are invalid", l.MinParticipants, l.MaxParticipants)
	case l.MinChores < 0 || l.MaxChores < l.MinChores:
		return fmt.Errorf("chore bounds [%d, %d] are invalid", l.MinChores, l.MaxChores)
	}
	return nil
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateHouseholdName checks a household name.
func (l Limits) ValidateHouseholdName(name string) error {
	return l.validateWord("household", name, l.MaxNameLength)
}

// ValidateParticipantName checks a participant name.
func (l Limits) ValidateParticipantName(name string) error {
	return l.validateWord("participant", name, l.MaxNameLength)
}

// ValidateChoreName checks a chore name. Unlike other names a chore may
// be several alphanumeric words separated by single spaces.
func (l Limits) ValidateChoreName(name string) error {
	if IsBlank(name) {
		return fmt.Errorf("%w: chore name cannot be blank", models.ErrInvalidName)
	}
	for _, word := range strings.Split(name, " ") {
		if word == "" {
			return fmt.Errorf("%w: chore name %q must be words separated by single spaces", models.ErrInvalidName, name)
		}
		if !isAlphanumeric(word) {
			return fmt.Errorf("%w: chore name %q must contain only letters, digits and spaces", models.ErrInvalidName, name)
		}
	}
	return checkLength("chore", name, l.MinNameLength, l.MaxChoreNameLength)
}

func (l Limits) validateWord(entity, name string, max int) error {
	if IsBlank(name) {
		return fmt.Errorf("%w: %s name cannot be blank", models.ErrInvalidName, entity)
	}
	if !isAlphanumeric(name) {
		return fmt.Errorf("%w: %s name %q must contain only letters and digits", models.ErrInvalidName, entity, name)
	}
	return checkLength(entity, name, l.MinNameLength, max)
}

func checkLength(entity, name string, min, max int) error {
	n := utf8.RuneCountInString(name)
	if n < min || n > max {
		return fmt.Errorf("%w: %s name %q must be between %d and %d characters", models.ErrInvalidName, entity, name, min, max)
	}
	return nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ValidateFrequency checks a weekly chore frequency.
func (l Limits) ValidateFrequency(value int) error {
	if value < 0 {
		return fmt.Errorf("%w: %d is negative", models.ErrInvalidFrequency, value)
	}
	if value > l.MaxFrequency {
		return fmt.Errorf("%w: %d exceeds the maximum of %d per week", models.ErrInvalidFrequency, value, l.MaxFrequency)
	}
	return nil
}

// ParseFrequency converts raw input into a validated frequency.
func (l Limits) ParseFrequency(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", models.ErrInvalidFrequency, raw)
	}
	if err := l.ValidateFrequency(value); err != nil {
		return 0, err
	}
	return value, nil
}

// Bounds returns the size bounds configured for kind.
func (l Limits) Bounds(kind Kind) (min, max int) {
	if kind == KindChores {
		return l.MinChores, l.MaxChores
	}
	return l.MinParticipants, l.MaxParticipants
}

// ValidateSetSize checks that n entries of kind lie within the configured bounds.
func (l Limits) ValidateSetSize(kind Kind, n int) error {
	min, max := l.Bounds(kind)
	if n < min {
		return fmt.Errorf("%w: a household needs at least %d %s, got %d", models.ErrTooFew, min, kind, n)
	}
	if n > max {
		return fmt.Errorf("%w: a household can have at most %d %s, got %d", models.ErrTooMany, max, kind, n)
	}
	return nil
}
