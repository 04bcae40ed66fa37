package domain

import (
	"errors"
	"time"
)

// Status is the persisted lifecycle state of a reminder.
// scheduled is the only live state; sent and canceled are terminal.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusSent      Status = "sent"
	StatusCanceled  Status = "canceled"
)

var (
	ErrParseFailure      = errors.New("unrecognized time expression")
	ErrTimeAlreadyPassed = errors.New("time already passed")
	ErrEmptyText         = errors.New("empty reminder text")
	ErrInvalidZone       = errors.New("invalid timezone")
	ErrUnresolvableCity  = errors.New("unresolvable city")
	ErrNotFound          = errors.New("reminder not found")
)

// Reminder is a scheduled notification owned by one (chat, user) pair.
// DueAtUTC is normalized to UTC at creation and changes only via reschedule.
type Reminder struct {
	ID           int64
	ChatID       int64
	UserID       int64
	Text         string
	DueAtUTC     time.Time
	TZ           string // zone identifier used for display only
	Status       Status
	CreatedAtUTC time.Time
}

// UserPrefs holds per-(chat, user) preferences. Rows are created lazily on
// the first write; partial updates never reset sibling fields.
type UserPrefs struct {
	ChatID  int64
	UserID  int64
	TZ      string
	Lang    string
	Sound   bool
	Melody  string
}
