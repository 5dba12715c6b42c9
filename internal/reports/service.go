// Package reports is the report lifecycle manager: create, read,
// update and archive against the record store, plus the session-aware
// aggregates the home view needs.
package reports

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bogo-app/bogo/internal/report"
	"github.com/bogo-app/bogo/internal/schedule"
)

// Store defines the record-store operations the Service needs.
// Implemented by recordstore.Client.
type Store interface {
	QueryAll(ctx context.Context) ([]report.Report, error)
	GetOne(ctx context.Context, id string) (report.Report, error)
	InsertOne(ctx context.Context, f report.Fields) (report.Report, error)
	PatchOne(ctx context.Context, id string, f report.Fields) (report.Report, error)
	ArchiveOne(ctx context.Context, id string) error
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

const defaultCacheTTL = 30 * time.Second

// Service enforces lifecycle semantics over the store: validation
// before writes, per-record serialization of mutations, and a short
// read cache invalidated on every write.
type Service struct {
	store Store
	clock Clock
	ttl   time.Duration

	mu         sync.Mutex
	cachedList []report.Report
	listAt     time.Time
	cachedByID map[string]cacheEntry

	lockMu  sync.Mutex
	idLocks map[string]*sync.Mutex
}

type cacheEntry struct {
	r  report.Report
	at time.Time
}

// NewService creates a Service with a 30-second read cache.
func NewService(store Store) *Service {
	return NewServiceWithClock(store, realClock{}, defaultCacheTTL)
}

// NewServiceWithClock creates a Service with a custom clock and cache
// TTL (for testing).
func NewServiceWithClock(store Store, clock Clock, ttl time.Duration) *Service {
	return &Service{
		store:      store,
		clock:      clock,
		ttl:        ttl,
		cachedByID: make(map[string]cacheEntry),
		idLocks:    make(map[string]*sync.Mutex),
	}
}

// List returns all active reports ordered by creation time descending.
func (s *Service) List(ctx context.Context) ([]report.Report, error) {
	s.mu.Lock()
	if s.cachedList != nil && s.clock.Now().Before(s.listAt.Add(s.ttl)) {
		out := make([]report.Report, len(s.cachedList))
		copy(out, s.cachedList)
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	reports, err := s.store.QueryAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cachedList = reports
	s.listAt = s.clock.Now()
	s.mu.Unlock()

	out := make([]report.Report, len(reports))
	copy(out, reports)
	return out, nil
}

// Get returns a single report by id. Archived or unknown ids yield
// recordstore.ErrNotFound; store failures are surfaced as-is so the
// caller can tell "gone" from "unavailable".
func (s *Service) Get(ctx context.Context, id string) (report.Report, error) {
	s.mu.Lock()
	if e, ok := s.cachedByID[id]; ok && s.clock.Now().Before(e.at.Add(s.ttl)) {
		s.mu.Unlock()
		return e.r, nil
	}
	s.mu.Unlock()

	r, err := s.store.GetOne(ctx, id)
	if err != nil {
		return report.Report{}, err
	}

	s.mu.Lock()
	s.cachedByID[id] = cacheEntry{r: r, at: s.clock.Now()}
	s.mu.Unlock()
	return r, nil
}

// Create validates the draft, then inserts a record with the extracted
// keywords. An empty status defaults to submitted; the pre-submission
// draft concept never reaches the store.
func (s *Service) Create(ctx context.Context, d report.Draft, keywords []string, status report.Status) (report.Report, error) {
	if err := report.ValidateDraft(d); err != nil {
		return report.Report{}, err
	}
	if status == "" {
		status = report.StatusSubmitted
	}
	if keywords == nil {
		keywords = []string{}
	}

	f := report.Fields{
		Type:     &d.Type,
		Title:    &d.Title,
		Content:  &d.Content,
		Keywords: &keywords,
		Status:   &status,
	}
	if d.Session != "" {
		f.Session = &d.Session
	}

	r, err := s.store.InsertOne(ctx, f)
	if err != nil {
		return report.Report{}, err
	}
	s.invalidate()
	return r, nil
}

// Update applies a partial update. Only supplied fields change; the
// store refreshes updatedAt. Status is monotonic: an attempt to move a
// submitted record back to draft is dropped, not an error.
func (s *Service) Update(ctx context.Context, id string, f report.Fields) (report.Report, error) {
	if f.Title != nil {
		if err := report.ValidateTitle(*f.Title); err != nil {
			return report.Report{}, err
		}
	}
	if f.Content != nil {
		if err := report.ValidateContent(*f.Content); err != nil {
			return report.Report{}, err
		}
	}

	unlock := s.lockID(id)
	defer unlock()

	if f.Status != nil && *f.Status == report.StatusDraft {
		current, err := s.store.GetOne(ctx, id)
		if err != nil {
			return report.Report{}, err
		}
		if current.Status == report.StatusSubmitted {
			f.Status = nil
		}
	}

	r, err := s.store.PatchOne(ctx, id, f)
	if err != nil {
		return report.Report{}, err
	}
	s.invalidate()
	return r, nil
}

// Archive soft-deletes a record. Subsequent List and Get calls treat it
// as gone.
func (s *Service) Archive(ctx context.Context, id string) error {
	unlock := s.lockID(id)
	defer unlock()

	if err := s.store.ArchiveOne(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// TodayStatus is the derived home view for one calendar day.
type TodayStatus struct {
	Date           string          `json:"date"`
	ActiveSession  report.Session  `json:"activeSession"`
	WorkStart      time.Time       `json:"workStart"`
	WarningTime    time.Time       `json:"warningTime"`
	ShowAMWarning  bool            `json:"showAmWarning"`
	AMReport       *report.Report  `json:"amReport,omitempty"`
	PMReport       *report.Report  `json:"pmReport,omitempty"`
	HasBothReports bool            `json:"hasBothReports"`
}

// Today partitions today's reports by session and evaluates the
// scheduling rules against the supplied instant.
func (s *Service) Today(ctx context.Context, now time.Time) (TodayStatus, error) {
	all, err := s.List(ctx)
	if err != nil {
		return TodayStatus{}, fmt.Errorf("loading reports: %w", err)
	}

	day := schedule.Partition(all, now)
	return TodayStatus{
		Date:           now.Format("2006-01-02"),
		ActiveSession:  schedule.ActiveSession(now),
		WorkStart:      schedule.WorkStart(now),
		WarningTime:    schedule.WarningTime(now),
		ShowAMWarning:  schedule.ShowAMWarning(now, day.AM != nil),
		AMReport:       day.AM,
		PMReport:       day.PM,
		HasBothReports: day.HasBoth,
	}, nil
}

// lockID serializes mutations per record id so rapid double-submission
// cannot interleave into a lost update.
func (s *Service) lockID(id string) func() {
	s.lockMu.Lock()
	l, ok := s.idLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.idLocks[id] = l
	}
	s.lockMu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *Service) invalidate() {
	s.mu.Lock()
	s.cachedList = nil
	s.cachedByID = make(map[string]cacheEntry)
	s.mu.Unlock()
}
