/*
classify.go - Hour bucket classification and overtime passes

PURPOSE:
  Sorts each worked interval into an hour bucket (ordinary, daily
  overtime, Sunday, public holiday) and runs the weekly overtime
  escalation after all entries are processed.

PRECEDENCE (per entry, first match wins):
  1. Public holiday (explicit flag OR holiday-date list membership)
  2. Sunday
  3. Weekday/Saturday ordinary-vs-daily-overtime split

DAILY CAPS (by contract mode, applied in override order):
  default      100 h (effectively unlimited)
  salaried     7.5 h
  casual       10 h
  full/part    100 h (weekly pass handles their overtime instead)

  The override order matters: a contract typed "casual" that is
  salaried by inference gets the casual 10h cap, not 7.5h, because the
  casual override runs after the salaried one. Preserved deliberately.

OVERTIME SPLIT:
  Excess above a cap: first 2 hours at 1.5x, remainder at 2.0x. The
  same rule applies to the weekly pass, and daily + weekly amounts are
  cumulative, not alternatives.

NIGHT HOURS:
  The ordinary portion of a night-flagged entry also accumulates into a
  separate night bucket used only to price a 15% loading on top. The
  weekly escalation pass never touches the night bucket, so night
  loading is priced on the pre-escalation ordinary hours even when the
  weekly pass reclassifies some of them into overtime.

SEE ALSO:
  - engine.go: Runs both passes and prices the buckets
*/
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PAY MODE - Contract flags resolved once per computation
// =============================================================================

// payMode captures the contract-mode decisions made once at the start of a
// computation: the resolved type, the salary inference, the effective base
// rate, and the daily cap.
type payMode struct {
	Type     ContractType
	Salaried bool // type is salary OR salaryAnnual > 0 with no base rate

	BaseRate     decimal.Decimal // Derived hourly equivalent when salaried
	SalaryAnnual decimal.Decimal
	OrdinaryWeek decimal.Decimal
	DailyCap     decimal.Decimal
}

func (m payMode) isCasual() bool { return m.Type == TypeCasual }

// resolveMode computes the contract-mode flags and derived rate.
// The salary inference (salaryAnnual > 0 and zero/absent base rate implies
// salaried regardless of the type string) reflects real caller behavior and
// takes precedence in all downstream derived-rate logic.
func resolveMode(c Contract) payMode {
	m := payMode{
		Type:         c.Type,
		SalaryAnnual: dec(c.SalaryAnnual),
		BaseRate:     dec(c.BaseRateHourly),
		OrdinaryWeek: defaultOrdWeek,
	}
	if c.Type == "" {
		m.Type = TypeCasual
	}
	if c.OrdinaryHoursPerWeek > 0 {
		m.OrdinaryWeek = dec(c.OrdinaryHoursPerWeek)
	}

	m.Salaried = m.Type == TypeSalary || (c.SalaryAnnual > 0 && c.BaseRateHourly == 0)
	if m.Salaried && c.SalaryAnnual > 0 {
		// Derived hourly rate, used for overtime and loadings
		m.BaseRate = m.SalaryAnnual.Div(weeksPerYear).Div(m.OrdinaryWeek)
	}

	// Daily cap override order is load-bearing (see file header)
	dailyCap := decimal.NewFromInt(100)
	if m.Salaried {
		dailyCap = dec(7.5)
	}
	if m.Type == TypeCasual {
		dailyCap = decimal.NewFromInt(10)
	}
	if m.Type == TypeFullTime || m.Type == TypePartTime {
		dailyCap = decimal.NewFromInt(100)
	}
	m.DailyCap = dailyCap

	return m
}

// =============================================================================
// HOUR BUCKETS - Immutable accumulator for both passes
// =============================================================================

// hourBuckets is the accumulator record for the classification fold.
// Each pass returns a new value rather than mutating shared counters.
type hourBuckets struct {
	Ordinary      decimal.Decimal
	OT15          decimal.Decimal
	OT20          decimal.Decimal
	Sunday        decimal.Decimal
	PublicHoliday decimal.Decimal
	Night         decimal.Decimal
}

func (b hourBuckets) add(d hourBuckets) hourBuckets {
	return hourBuckets{
		Ordinary:      b.Ordinary.Add(d.Ordinary),
		OT15:          b.OT15.Add(d.OT15),
		OT20:          b.OT20.Add(d.OT20),
		Sunday:        b.Sunday.Add(d.Sunday),
		PublicHoliday: b.PublicHoliday.Add(d.PublicHoliday),
		Night:         b.Night.Add(d.Night),
	}
}

// workedHours computes the paid duration of an entry in hours, clamped to
// zero. Negative durations (swapped times, oversized breaks) never reach the
// classification logic.
func workedHours(e TimesheetEntry) decimal.Decimal {
	minutes := dec(e.EndTime.Sub(e.StartTime).Minutes())
	minutes = minutes.Sub(decimal.NewFromInt(int64(e.BreakMinutes)))
	hours := minutes.Div(sixty)
	if hours.IsNegative() {
		return decimal.Zero
	}
	return hours
}

// dateKey formats an entry date as ISO YYYY-MM-DD (UTC), the representation
// used for holiday-list membership.
func dateKey(d time.Time) string {
	return d.UTC().Format("2006-01-02")
}

// classifyEntry returns the bucket deltas contributed by a single entry.
func classifyEntry(e TimesheetEntry, mode payMode, holidays map[string]bool) hourBuckets {
	hours := workedHours(e)
	var d hourBuckets

	// Public holiday overrides all other classification
	if e.IsPublicHoliday || holidays[dateKey(e.Date)] {
		d.PublicHoliday = hours
		return d
	}

	// Sunday overrides ordinary and daily overtime
	if e.Date.UTC().Weekday() == time.Sunday {
		d.Sunday = hours
		return d
	}

	// Weekday/Saturday: ordinary up to the daily cap, then 2h at 1.5x and
	// the remainder at 2.0x
	if hours.GreaterThan(mode.DailyCap) {
		d.Ordinary = mode.DailyCap
		d.OT15, d.OT20 = splitOvertime(hours.Sub(mode.DailyCap))
	} else {
		d.Ordinary = hours
	}

	// Night loading accrues on the ordinary portion only; it prices a
	// loading on top and does not move the base hours between buckets
	if e.IsNightShift {
		d.Night = d.Ordinary
	}

	return d
}

// classifyEntries folds all entries into a single bucket record.
func classifyEntries(entries []TimesheetEntry, mode payMode, holidays map[string]bool) hourBuckets {
	var b hourBuckets
	for _, e := range entries {
		b = b.add(classifyEntry(e, mode, holidays))
	}
	return b
}

// =============================================================================
// WEEKLY OVERTIME ESCALATION
// =============================================================================

// weeklyOrdinaryCap is the accumulated ordinary-hours threshold above which
// full-time and part-time contracts escalate into overtime.
var weeklyOrdinaryCap = decimal.NewFromInt(38)

// applyWeeklyOvertime carves ordinary hours above 38 into overtime for
// contracts that are neither casual nor salaried. Casuals only ever receive
// daily overtime; salaried contracts only the 7.5h/day split. Amounts add to
// any daily overtime already accumulated.
func applyWeeklyOvertime(b hourBuckets, mode payMode) hourBuckets {
	if mode.isCasual() || mode.Salaried {
		return b
	}
	if !b.Ordinary.GreaterThan(weeklyOrdinaryCap) {
		return b
	}

	excess := b.Ordinary.Sub(weeklyOrdinaryCap)
	ot15, ot20 := splitOvertime(excess)

	out := b
	out.Ordinary = weeklyOrdinaryCap
	out.OT15 = b.OT15.Add(ot15)
	out.OT20 = b.OT20.Add(ot20)
	return out
}

// splitOvertime distributes excess hours: first 2 at time-and-a-half, the
// remainder at double time.
func splitOvertime(excess decimal.Decimal) (ot15, ot20 decimal.Decimal) {
	two := decimal.NewFromInt(2)
	if excess.GreaterThan(two) {
		return two, excess.Sub(two)
	}
	return excess, decimal.Zero
}
