// Package draftcache holds the in-progress draft and the most recently
// submitted report across restarts. Both slots are durable until
// explicitly cleared; there is no TTL and no implicit eviction.
package draftcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bogo-app/bogo/internal/report"
	"github.com/bogo-app/bogo/internal/storage"
)

// SlotStore defines the persistence operations the Manager needs.
// Implemented by storage.Store.
type SlotStore interface {
	GetSlot(name string) (string, error)
	SetSlot(name, payload string) error
	ClearSlot(name string) error
}

// DraftPatch is a shallow, last-write-wins merge into the current
// draft. Nil pointers leave the field untouched.
type DraftPatch struct {
	Type    *report.Type    `json:"type,omitempty"`
	Session *report.Session `json:"session,omitempty"`
	Title   *string         `json:"title,omitempty"`
	Content *string         `json:"content,omitempty"`
}

// Manager owns the two named slots. State is kept in memory and written
// through to the store on every change.
type Manager struct {
	store SlotStore

	mu        sync.Mutex
	draft     report.Draft
	submitted *report.Report
}

func emptyDraft() report.Draft {
	return report.Draft{Type: report.TypeDaily}
}

// NewManager loads both slots from the store. Missing slots start
// empty; a corrupt payload is logged and reset rather than failing
// startup.
func NewManager(store SlotStore) (*Manager, error) {
	m := &Manager{store: store, draft: emptyDraft()}

	payload, err := store.GetSlot(storage.SlotDraft)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("loading draft slot: %w", err)
	default:
		var d report.Draft
		if err := json.Unmarshal([]byte(payload), &d); err != nil {
			slog.Warn("resetting corrupt draft slot", "error", err)
		} else {
			m.draft = d
		}
	}

	payload, err = store.GetSlot(storage.SlotSubmitted)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("loading submitted slot: %w", err)
	default:
		var r report.Report
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			slog.Warn("resetting corrupt submitted slot", "error", err)
		} else {
			m.submitted = &r
		}
	}

	return m, nil
}

// Draft returns a copy of the current draft.
func (m *Manager) Draft() report.Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// SetDraft merges the patch into the current draft and persists the
// result. Returns the merged draft.
func (m *Manager) SetDraft(p DraftPatch) (report.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p.Type != nil {
		m.draft.Type = *p.Type
	}
	if p.Session != nil {
		m.draft.Session = *p.Session
	}
	if p.Title != nil {
		m.draft.Title = *p.Title
	}
	if p.Content != nil {
		m.draft.Content = *p.Content
	}

	if err := m.saveDraftLocked(); err != nil {
		return report.Draft{}, err
	}
	return m.draft, nil
}

// ClearDraft resets the draft to an empty daily draft and removes the
// persisted slot.
func (m *Manager) ClearDraft() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = emptyDraft()
	if err := m.store.ClearSlot(storage.SlotDraft); err != nil {
		return fmt.Errorf("clearing draft slot: %w", err)
	}
	return nil
}

// SubmittedReport returns a copy of the submitted-report slot, or nil
// when the slot is empty.
func (m *Manager) SubmittedReport() *report.Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.submitted == nil {
		return nil
	}
	r := *m.submitted
	return &r
}

// SetSubmittedReport overwrites the single submitted-report slot.
func (m *Manager) SetSubmittedReport(r report.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted = &r

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshalling submitted report: %w", err)
	}
	if err := m.store.SetSlot(storage.SlotSubmitted, string(payload)); err != nil {
		return fmt.Errorf("persisting submitted slot: %w", err)
	}
	return nil
}

// ClearSubmittedReport empties the slot once the confirmation/share
// flow completes.
func (m *Manager) ClearSubmittedReport() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted = nil
	if err := m.store.ClearSlot(storage.SlotSubmitted); err != nil {
		return fmt.Errorf("clearing submitted slot: %w", err)
	}
	return nil
}

func (m *Manager) saveDraftLocked() error {
	payload, err := json.Marshal(m.draft)
	if err != nil {
		return fmt.Errorf("marshalling draft: %w", err)
	}
	if err := m.store.SetSlot(storage.SlotDraft, string(payload)); err != nil {
		return fmt.Errorf("persisting draft slot: %w", err)
	}
	return nil
}
