// Package report defines the work-report data model shared across the
// service: record and draft types, field enums, and validation rules.
package report

import "time"

// Type is the reporting cadence of a record.
type Type string

const (
	TypeDaily   Type = "daily"
	TypeWeekly  Type = "weekly"
	TypeMonthly Type = "monthly"
	TypeYearly  Type = "yearly"
)

// Session is the half-day slot a daily report belongs to:
// AM is the check-in report, PM the check-out report.
type Session string

const (
	SessionAM Session = "AM"
	SessionPM Session = "PM"
)

// Status tracks whether a record has been submitted. The transition is
// monotonic: once submitted, a record never goes back to draft.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
)

// Report is a persisted work report. IDs are assigned by the record
// store at creation time and never change.
type Report struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Session   Session   `json:"session,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Keywords  []string  `json:"keywords"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Status    Status    `json:"status"`
}

// Draft is the editable subset of a report before submission. Drafts
// live only in the local draft cache, never in the record store.
type Draft struct {
	Type    Type    `json:"type"`
	Session Session `json:"session,omitempty"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
}

// Fields is a partial update: nil pointers mean "leave unchanged".
type Fields struct {
	Type     *Type     `json:"type,omitempty"`
	Session  *Session  `json:"session,omitempty"`
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Keywords *[]string `json:"keywords,omitempty"`
	Status   *Status   `json:"status,omitempty"`
}
