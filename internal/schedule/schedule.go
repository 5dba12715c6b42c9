// Package schedule derives session state from a wall-clock instant.
//
// All functions are pure: they take an explicit reference time so tests
// can supply fixed instants. Nothing here reads the system clock or
// holds state. All derived times fall on the same calendar day as the
// reference time, in its location; there is no cross-midnight logic.
package schedule

import (
	"time"

	"github.com/bogo-app/bogo/internal/report"
)

// Work-day boundaries. Monday starts earlier; the warning threshold
// always leads work start by ten minutes.
const (
	workEndHour = 18
)

// WorkStart returns the work-start cutoff for now's calendar day:
// 08:30 on Mondays, 08:45 otherwise.
func WorkStart(now time.Time) time.Time {
	h, m := 8, 45
	if now.Weekday() == time.Monday {
		h, m = 8, 30
	}
	return at(now, h, m)
}

// WarningTime returns the threshold after which a missing AM report
// triggers a warning: 08:20 on Mondays, 08:35 otherwise.
func WarningTime(now time.Time) time.Time {
	h, m := 8, 35
	if now.Weekday() == time.Monday {
		h, m = 8, 20
	}
	return at(now, h, m)
}

// ActiveSession classifies now into a session slot: AM strictly before
// 18:00 local time, PM at or after. The classification is a plain
// bisection of the day; it does not depend on whether an AM report was
// actually filed.
func ActiveSession(now time.Time) report.Session {
	if now.Before(at(now, workEndHour, 0)) {
		return report.SessionAM
	}
	return report.SessionPM
}

// ShowAMWarning reports whether the missing-AM-report warning should be
// shown: true once the warning threshold has passed and no AM report
// exists for the current day. Work start itself is not consulted.
func ShowAMWarning(now time.Time, hasAMReportToday bool) bool {
	if hasAMReportToday {
		return false
	}
	return !now.Before(WarningTime(now))
}

// DayReports is the AM/PM partition of one calendar day's reports.
type DayReports struct {
	AM      *report.Report
	PM      *report.Report
	HasBoth bool
}

// Partition filters reports down to those created on now's calendar day
// and splits them by session. When several reports share a session the
// first one in input order wins, so callers passing a list sorted by
// creation time descending get the most recent per slot.
func Partition(reports []report.Report, now time.Time) DayReports {
	var dr DayReports
	for i := range reports {
		r := &reports[i]
		if !sameDay(r.CreatedAt.In(now.Location()), now) {
			continue
		}
		switch r.Session {
		case report.SessionAM:
			if dr.AM == nil {
				dr.AM = r
			}
		case report.SessionPM:
			if dr.PM == nil {
				dr.PM = r
			}
		}
	}
	dr.HasBoth = dr.AM != nil && dr.PM != nil
	return dr
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
