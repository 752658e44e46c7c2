package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/chorechart/internal/models"
	"github.com/mmynk/chorechart/internal/validation"
)

func TestParticipantCollector_DoneNeedsMinimum(t *testing.T) {
	c := NewParticipantCollector(validation.DefaultLimits(), nil)

	// A blank entry before the minimum is met is rejected and collection continues.
	assert.ErrorIs(t, c.Done(), models.ErrTooFew)

	require.NoError(t, c.Offer("Alice"))
	assert.ErrorIs(t, c.Done(), models.ErrTooFew)

	require.NoError(t, c.Offer("Bob"))
	assert.NoError(t, c.Done())
	assert.Equal(t, []string{"Alice", "Bob"}, c.Items())
}

func TestParticipantCollector_CountsExisting(t *testing.T) {
	c := NewParticipantCollector(validation.DefaultLimits(), []string{"Alice", "Bob"})

	assert.NoError(t, c.Done(), "existing members already satisfy the minimum")
	assert.ErrorIs(t, c.Offer("Alice"), models.ErrDuplicateMember)
	require.NoError(t, c.Offer("Carol"))
	assert.Equal(t, 3, c.Total())
}

func TestCollector_AddBelowMinimum(t *testing.T) {
	limits := validation.DefaultLimits()

	people := NewParticipantCollector(limits, []string{"Alice"})
	assert.NoError(t, people.Done(), "an add may leave a short household unchanged")

	chores := NewChoreCollector(limits, []models.Chore{})
	assert.NoError(t, chores.Done())
	require.NoError(t, chores.Offer(models.Chore{Name: "Hoover", Frequency: 1}))
	assert.NoError(t, chores.Done())

	limits.MaxChores = 1
	full := NewChoreCollector(limits, []models.Chore{{Name: "Dishes", Frequency: 3}})
	assert.ErrorIs(t, full.Offer(models.Chore{Name: "Bins", Frequency: 1}), models.ErrTooMany)
	assert.NoError(t, full.Done())
}

func TestNewAddCollectors_EmptiedHousehold(t *testing.T) {
	limits := validation.DefaultLimits()
	// the store returns nil slices once every row is gone
	h := &models.Household{Name: "Flatshare", Participants: []string{"Alice"}}

	people, chores := NewAddCollectors(limits, h)
	assert.NoError(t, people.Done())
	assert.NoError(t, chores.Done())
	assert.ErrorIs(t, people.Offer("Alice"), models.ErrDuplicateMember)
	require.NoError(t, chores.Offer(models.Chore{Name: "Hoover", Frequency: 2}))
	assert.NoError(t, chores.Done())
}

func TestParticipantCollector_RejectsInvalidAndDuplicate(t *testing.T) {
	c := NewParticipantCollector(validation.DefaultLimits(), nil)

	assert.ErrorIs(t, c.Offer(""), models.ErrInvalidName)
	assert.ErrorIs(t, c.Offer("Al ice"), models.ErrInvalidName)
	require.NoError(t, c.Offer("Alice"))
	assert.ErrorIs(t, c.Offer("Alice"), models.ErrDuplicateMember)
	assert.Len(t, c.Items(), 1)
}

func TestParticipantCollector_StopsAtMaximum(t *testing.T) {
	limits := validation.DefaultLimits()
	limits.MaxParticipants = 2
	c := NewParticipantCollector(limits, nil)

	require.NoError(t, c.Offer("Alice"))
	require.NoError(t, c.Offer("Bob"))
	assert.ErrorIs(t, c.Offer("Carol"), models.ErrTooMany)
	assert.ErrorIs(t, c.CheckName("Carol"), models.ErrTooMany)
}

func TestChoreCollector(t *testing.T) {
	c := NewChoreCollector(validation.DefaultLimits(), []models.Chore{{Name: "Dishes", Frequency: 3}})

	assert.ErrorIs(t, c.CheckName("Dishes"), models.ErrDuplicateChore)
	assert.NoError(t, c.CheckName("Take out bins"))

	assert.ErrorIs(t, c.Offer(models.Chore{Name: "Bins", Frequency: -1}), models.ErrInvalidFrequency)
	require.NoError(t, c.Offer(models.Chore{Name: "Bins", Frequency: 1}))
	assert.NoError(t, c.Done())
	assert.Equal(t, validation.KindChores, c.Kind())
	assert.Equal(t, []models.Chore{{Name: "Bins", Frequency: 1}}, c.Items())
}
