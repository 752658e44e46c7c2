package service

import (
	"fmt"

	"github.com/mmynk/chorechart/internal/models"
	"github.com/mmynk/chorechart/internal/validation"
)

// Collector accumulates validated participant or chore entries for one
// create or add operation.
//
// Entries are offered one at a time. Done is the termination predicate.
// For a new household it succeeds only once the minimum number of entries
// is reached, and a caller that gets an error keeps collecting. When adding
// to an existing household only the maximum applies: removals may have
// left it below the minimum, and that must not block adding the other kind.
type Collector[T any] struct {
	kind      validation.Kind
	limits    validation.Limits
	creating  bool
	existing  int
	seen      map[string]bool
	items     []T
	nameOf    func(T) string
	checkName func(string) error
	checkItem func(T) error
	duplicate error
}

// NewParticipantCollector collects participant names for a household that
// already has the given participants. existing is nil when creating.
func NewParticipantCollector(limits validation.Limits, existing []string) *Collector[string] {
	c := &Collector[string]{
		kind:      validation.KindParticipants,
		limits:    limits,
		creating:  existing == nil,
		existing:  len(existing),
		seen:      make(map[string]bool, len(existing)),
		nameOf:    func(name string) string { return name },
		checkName: limits.ValidateParticipantName,
		checkItem: func(string) error { return nil },
		duplicate: models.ErrDuplicateMember,
	}
	for _, name := range existing {
		c.seen[name] = true
	}
	return c
}

// NewChoreCollector collects chores for a household that already has the
// given chores. existing is nil when creating.
func NewChoreCollector(limits validation.Limits, existing []models.Chore) *Collector[models.Chore] {
	c := &Collector[models.Chore]{
		kind:      validation.KindChores,
		limits:    limits,
		creating:  existing == nil,
		existing:  len(existing),
		seen:      make(map[string]bool, len(existing)),
		nameOf:    func(chore models.Chore) string { return chore.Name },
		checkName: limits.ValidateChoreName,
		checkItem: func(chore models.Chore) error { return limits.ValidateFrequency(chore.Frequency) },
		duplicate: models.ErrDuplicateChore,
	}
	for _, chore := range existing {
		c.seen[chore.Name] = true
	}
	return c
}

// NewAddCollectors returns the collectors for adding to h. They apply only
// the maximum sizes, even when h has no participants or chores left.
func NewAddCollectors(limits validation.Limits, h *models.Household) (*Collector[string], *Collector[models.Chore]) {
	people := NewParticipantCollector(limits, h.Participants)
	chores := NewChoreCollector(limits, h.Chores)
	people.creating = false
	chores.creating = false
	return people, chores
}

// CheckName reports whether an entry called name would be accepted, without
// adding it. Interactive callers use it before asking for a chore frequency.
func (c *Collector[T]) CheckName(name string) error {
	if err := c.checkName(name); err != nil {
		return err
	}
	if c.seen[name] {
		return fmt.Errorf("%w: %q", c.duplicate, name)
	}
	if _, max := c.limits.Bounds(c.kind); c.Total()+1 > max {
		return fmt.Errorf("%w: a household can have at most %d %s", models.ErrTooMany, max, c.kind)
	}
	return nil
}

// Offer validates item and adds it to the batch.
func (c *Collector[T]) Offer(item T) error {
	name := c.nameOf(item)
	if err := c.CheckName(name); err != nil {
		return err
	}
	if err := c.checkItem(item); err != nil {
		return err
	}
	c.seen[name] = true
	c.items = append(c.items, item)
	return nil
}

// Done reports whether collection may stop.
func (c *Collector[T]) Done() error {
	if !c.creating {
		if _, max := c.limits.Bounds(c.kind); c.Total() > max {
			return fmt.Errorf("%w: a household can have at most %d %s, got %d", models.ErrTooMany, max, c.kind, c.Total())
		}
		return nil
	}
	return c.limits.ValidateSetSize(c.kind, c.Total())
}

// Items returns the entries accepted so far, in the order offered.
func (c *Collector[T]) Items() []T {
	return c.items
}

// Total is the household's size for this kind if the batch were applied.
func (c *Collector[T]) Total() int {
	return c.existing + len(c.items)
}

// Kind names what is being collected.
func (c *Collector[T]) Kind() validation.Kind {
	return c.kind
}
