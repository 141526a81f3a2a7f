/*
Package calendar models the public-holiday calendar the pay engine's
callers must consult before computing pay.

PURPOSE:
  The engine itself only sees a flat list of ISO YYYY-MM-DD dates; this
  package owns the richer calendar model behind that list: named,
  company-scoped holidays with a type that decides whether the date
  affects pay at all. Observances are tracked for display but never
  reach the engine.

SCOPING:
  CompanyID "" means a global/default holiday visible to every company.
  Company-specific rows add local public holidays (e.g. a regional show
  day) on top of the global set.

SEE ALSO:
  - store/sqlite: Persistence and period-range queries
  - payroll: Consumes the PayableDates output
*/
package calendar

import (
	"sort"
	"time"
)

// Type classifies a holiday for pay purposes.
type Type string

const (
	TypePublicHoliday      Type = "public_holiday"
	TypeLocalPublicHoliday Type = "local_public_holiday"
	TypeObservance         Type = "observance" // Displayed, never paid as PH
)

// AffectsPay reports whether a holiday of this type earns the
// public-holiday penalty rate.
func (t Type) AffectsPay() bool {
	return t == TypePublicHoliday || t == TypeLocalPublicHoliday
}

// Holiday is one calendar entry.
type Holiday struct {
	ID        string
	CompanyID string // Empty string = global/default
	Date      time.Time
	Name      string
	Type      Type
}

// DateKey returns the ISO YYYY-MM-DD representation the engine matches on.
func (h Holiday) DateKey() string {
	return h.Date.UTC().Format("2006-01-02")
}

// PayableDates extracts the sorted, de-duplicated list of ISO dates that
// earn the public-holiday rate, the exact shape ComputePay consumes.
func PayableDates(holidays []Holiday) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, h := range holidays {
		if !h.Type.AffectsPay() {
			continue
		}
		key := h.DateKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		dates = append(dates, key)
	}
	sort.Strings(dates)
	return dates
}

// NationalDefaults returns the standard set of recurring national public
// holidays for a year, scoped globally. Easter-linked holidays are omitted
// since they have no fixed date; admins add them per year.
func NationalDefaults(year int) []Holiday {
	day := func(month time.Month, d int, name string) Holiday {
		return Holiday{
			Date: time.Date(year, month, d, 0, 0, 0, 0, time.UTC),
			Name: name,
			Type: TypePublicHoliday,
		}
	}
	return []Holiday{
		day(time.January, 1, "New Year's Day"),
		day(time.January, 26, "Australia Day"),
		day(time.April, 25, "Anzac Day"),
		day(time.December, 25, "Christmas Day"),
		day(time.December, 26, "Boxing Day"),
	}
}
