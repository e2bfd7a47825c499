// Package repository implements MySQL-backed stores for users, events
// and the reservation ledger.  This file defines the sentinel errors
// shared across repositories so that higher layers can distinguish
// failure causes with errors.Is instead of inspecting driver errors.
package repository

import "errors"

// ErrEmailExists is returned when registering a user whose email is
// already taken (unique key on users.email).
var ErrEmailExists = errors.New("email already exists")

// ErrEventNotFound is returned by event lookups and mutations that
// target a nonexistent event ID.
var ErrEventNotFound = errors.New("event not found")

// ErrHallDateTaken is returned when inserting a hall reservation for a
// calendar date that already has one.  It is produced from the unique
// key on reservations.hall_date, which makes first-writer-wins hold
// even across concurrent transactions and processes.
var ErrHallDateTaken = errors.New("hall date already reserved")
