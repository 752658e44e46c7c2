package models

import "errors"

// Error kinds returned by validation, storage and service code. Callers
// branch on them with errors.Is; the wrapping error message carries the
// entity and value involved.
var (
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrTooFew           = errors.New("too few entries")
	ErrTooMany          = errors.New("too many entries")

	ErrDuplicateHousehold = errors.New("household already exists")
	ErrDuplicateMember    = errors.New("household member already exists")
	ErrDuplicateChore     = errors.New("chore already exists")

	ErrHouseholdNotFound   = errors.New("household not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrChoreNotFound       = errors.New("chore not found")
	ErrScoreEntryNotFound  = errors.New("score entry not found")

	ErrNegativeScore = errors.New("score must not be negative")
	ErrScoreOverflow = errors.New("score too large")

	ErrNotConfirmed       = errors.New("operation not confirmed")
	ErrInvalidRemovalKind = errors.New("invalid removal kind")
)
