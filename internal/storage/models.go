package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Slot names for the two client-local state slots: the in-progress
// draft and the most recently submitted report.
const (
	SlotDraft     = "draft"
	SlotSubmitted = "submitted"
)

// Template is a reusable report body the user can start from.
type Template struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
