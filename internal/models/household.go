package models

// Household represents a named group of participants sharing chores.
// Households are keyed by Name everywhere; ID is kept for display and
// export purposes only.
type Household struct {
	// ID is the unique identifier for the household (UUID format).
	ID string

	// Name is the unique display name of the household (e.g., "Flatshare").
	Name string

	// Participants are the member names in registration order.
	Participants []string

	// Chores are the household's recurring chores in registration order.
	Chores []Chore

	// CreatedAt is the Unix timestamp when the household was created.
	CreatedAt int64
}

// Chore is a recurring task within a household.
type Chore struct {
	// Name is unique within the owning household (e.g., "Dishes").
	Name string

	// Frequency is the target number of completions per week.
	Frequency int
}

// HasParticipant reports whether name is a member of the household.
func (h *Household) HasParticipant(name string) bool {
	for _, p := range h.Participants {
		if p == name {
			return true
		}
	}
	return false
}

// HasChore reports whether the household has a chore called name.
func (h *Household) HasChore(name string) bool {
	for _, c := range h.Chores {
		if c.Name == name {
			return true
		}
	}
	return false
}
