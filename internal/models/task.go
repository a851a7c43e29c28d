package models

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return StatusOpen, nil
	case "in_progress", "in-progress", "inprogress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}

// CanTransitionTo reports whether the status change is allowed.
// The lifecycle is forward-only: open -> in_progress -> done, with
// open -> done permitted directly. Nothing leaves done.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusOpen:
		return next == StatusInProgress || next == StatusDone
	case StatusInProgress:
		return next == StatusDone
	}
	return false
}

type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return 0, fmt.Errorf("%w: unknown priority %q", ErrValidation, s)
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	}
	return "unknown"
}

type Task struct {
	Id          int64
	Title       string
	Description string
	DueDate     time.Time
	Priority    Priority
	Status      Status
	AssigneeId  *int64
	CreatedAt   time.Time
}

type TaskFilter struct {
	Status     *Status
	AssigneeId *int64
	Priority   *Priority
	DueFrom    *time.Time
	DueTo      *time.Time
}
