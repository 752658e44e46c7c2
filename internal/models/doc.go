// Package models defines the core domain models for Chore Chart.
//
// # Models
//
//   - Household: a named group of participants sharing chores
//   - Chore: a recurring task with a target weekly frequency
//   - ScoreEntry: completions of one chore by one participant
//   - Leaderboard / Standing / ChoreScore: per-participant tallies
//   - LogResult: before/after counts returned when logging completions
//
// Participants are identified by name strings, unique within their
// household. Households are identified by name across the whole store.
//
// # Invariants
//
// Every participant of a household has exactly one ScoreEntry per chore
// of that household, and scores never go below zero. The storage layer
// maintains the cross product whenever participants or chores are added
// or removed.
//
// # Errors
//
// errors.go declares the sentinel error kinds shared by the validation,
// storage and service packages.
package models
