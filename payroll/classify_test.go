/*
classify_test.go - Classification precedence and degenerate-input properties

Pins down the precedence rules (public holiday > Sunday > daily split),
the contract-mode quirks that are intentional (salary inference, night
loading surviving weekly escalation), and the clamping of malformed
durations.
*/
package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/pay-engine/payroll"
)

func hourlyContract(rate float64, typ payroll.ContractType) payroll.Contract {
	return payroll.Contract{BaseRateHourly: rate, OrdinaryHoursPerWeek: 38, Type: typ}
}

// =============================================================================
// DURATION CLAMPING
// =============================================================================

func TestWorkedHours_NeverNegative(t *testing.T) {
	contract := hourlyContract(30, payroll.TypeCasual)

	t.Run("break exceeds shift length", func(t *testing.T) {
		// GIVEN: A 2h shift with a 3h break
		entry := makeEntry(0, 2, false, false)
		entry.BreakMinutes = 180

		// THEN: Zero hours, no lines, not a negative ordinary bucket
		result := payroll.ComputePay([]payroll.TimesheetEntry{entry}, contract, nil)
		if len(result.Lines) != 0 {
			t.Errorf("expected no lines, got %+v", result.Lines)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		// GIVEN: Swapped start/end times
		entry := makeEntry(0, 8, false, false)
		entry.StartTime, entry.EndTime = entry.EndTime, entry.StartTime

		result := payroll.ComputePay([]payroll.TimesheetEntry{entry}, contract, nil)
		if len(result.Lines) != 0 {
			t.Errorf("expected no lines, got %+v", result.Lines)
		}
	})

	t.Run("zero-duration entry contributes nothing", func(t *testing.T) {
		entry := makeEntry(0, 0, false, false)
		paid := makeEntry(1, 8, false, false)

		result := payroll.ComputePay([]payroll.TimesheetEntry{entry, paid}, contract, nil)
		assertLine(t, result, payroll.CodeOrdinary, 8, 240)
	})
}

func TestBreakMinutesReducePaidHours(t *testing.T) {
	// GIVEN: A 9h interval with a 60 minute unpaid break
	entry := makeEntry(0, 9, false, false)
	entry.BreakMinutes = 60

	result := payroll.ComputePay([]payroll.TimesheetEntry{entry}, hourlyContract(30, payroll.TypeCasual), nil)

	assertLine(t, result, payroll.CodeOrdinary, 8, 240)
}

func TestMidnightSpanningEntry(t *testing.T) {
	// GIVEN: A shift from 22:00 Monday to 04:00 Tuesday (caller already
	//        rolled EndTime to the next day)
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	entry := payroll.TimesheetEntry{
		Date:         day,
		StartTime:    day.Add(22 * time.Hour),
		EndTime:      day.AddDate(0, 0, 1).Add(4 * time.Hour),
		IsNightShift: true,
	}

	result := payroll.ComputePay([]payroll.TimesheetEntry{entry}, hourlyContract(30, payroll.TypeCasual), nil)

	// Classified by the entry's date (Monday), 6 hours
	assertLine(t, result, payroll.CodeOrdinary, 6, 180)
	assertLine(t, result, payroll.CodeNight, 6, 27)
}

// =============================================================================
// CLASSIFICATION PRECEDENCE
// =============================================================================

func TestPublicHolidayOverridesSunday(t *testing.T) {
	// GIVEN: A Sunday entry that is also flagged as a public holiday
	entry := makeEntry(6, 8, false, true)

	result := payroll.ComputePay([]payroll.TimesheetEntry{entry}, hourlyContract(30, payroll.TypeFullTime), nil)

	assertLine(t, result, payroll.CodePublicHoliday, 8, 480)
	assertNoLine(t, result, payroll.CodeSunday)
}

func TestPublicHolidayViaDateList(t *testing.T) {
	// GIVEN: An unflagged entry whose date appears in the holiday list
	entry := makeEntry(0, 8, false, false)

	result := payroll.ComputePay([]payroll.TimesheetEntry{entry},
		hourlyContract(30, payroll.TypeFullTime), []string{"2025-06-02"})

	assertLine(t, result, payroll.CodePublicHoliday, 8, 480)
	assertNoLine(t, result, payroll.CodeOrdinary)
}

func TestPublicHolidayOverridesDailyOvertime(t *testing.T) {
	// GIVEN: A casual 14h day flagged as a public holiday
	// THEN: All 14h land in PH at 2.5x; no daily split happens
	entry := makeEntry(0, 14, false, true)

	result := payroll.ComputePay([]payroll.TimesheetEntry{entry}, hourlyContract(30, payroll.TypeCasual), nil)

	ph := assertLine(t, result, payroll.CodePublicHoliday, 14, 1050)
	if !ph.Rate.Equal(decimal.NewFromInt(75)) {
		t.Errorf("casual PH rate: expected 75, got %v", ph.Rate)
	}
	assertNoLine(t, result, payroll.CodeOvertime15)
	assertNoLine(t, result, payroll.CodeOvertime20)
}

func TestSundayOverridesDailyOvertime(t *testing.T) {
	// GIVEN: A casual 12h Sunday
	// THEN: All 12h priced as Sunday work, no overtime split
	entry := makeEntry(6, 12, false, false)

	result := payroll.ComputePay([]payroll.TimesheetEntry{entry}, hourlyContract(30, payroll.TypeCasual), nil)

	assertLine(t, result, payroll.CodeSunday, 12, 720)
	assertNoLine(t, result, payroll.CodeOvertime15)
	assertNoLine(t, result, payroll.CodeOvertime20)
}

func TestSaturdayIsOrdinaryUpToCap(t *testing.T) {
	// GIVEN: A casual 8h Saturday (offset 5 from Monday)
	// THEN: Saturday has no penalty of its own; plain ordinary hours
	entry := makeEntry(5, 8, false, false)

	result := payroll.ComputePay([]payroll.TimesheetEntry{entry}, hourlyContract(30, payroll.TypeCasual), nil)

	assertLine(t, result, payroll.CodeOrdinary, 8, 240)
	assertNoLine(t, result, payroll.CodeSunday)
}

// =============================================================================
// WEEKLY ESCALATION BY CONTRACT MODE
// =============================================================================

func TestCasualNeverGetsWeeklyOvertime(t *testing.T) {
	// GIVEN: Casual, 6x9h = 54 ordinary-classified hours
	result := payroll.ComputePay(weekOf(6, 9), hourlyContract(30, payroll.TypeCasual), nil)

	assertLine(t, result, payroll.CodeOrdinary, 54, 1620)
	assertNoLine(t, result, payroll.CodeOvertime15)
	assertNoLine(t, result, payroll.CodeOvertime20)
}

func TestFullTimeWeeklyEscalationBeyondTwoHours(t *testing.T) {
	// GIVEN: Full-time, 5x9h = 45h; excess of 7 over the weekly 38
	// THEN: 2h at 1.5x, remaining 5h at 2.0x
	result := payroll.ComputePay(weekOf(5, 9), hourlyContract(30, payroll.TypeFullTime), nil)

	assertLine(t, result, payroll.CodeOrdinary, 38, 1140)
	assertLine(t, result, payroll.CodeOvertime15, 2, 90)
	assertLine(t, result, payroll.CodeOvertime20, 5, 300)
}

func TestContractorEscalatesLikePermanentStaff(t *testing.T) {
	// GIVEN: Contractor, 5x9h = 45h
	// THEN: Contractors are neither casual nor salaried, so the weekly
	//       pass applies to them exactly as it does to full/part-time
	result := payroll.ComputePay(weekOf(5, 9), hourlyContract(30, payroll.TypeContractor), nil)

	assertLine(t, result, payroll.CodeOrdinary, 38, 1140)
	assertLine(t, result, payroll.CodeOvertime15, 2, 90)
	assertLine(t, result, payroll.CodeOvertime20, 5, 300)
}

func TestDailyOvertimeAccumulatesAcrossEntries(t *testing.T) {
	// GIVEN: Salaried contract with 2x10h days
	// THEN: Each day splits at 7.5h: 2x(2h at 1.5x + 0.5h at 2.0x),
	//       accumulated across entries (no weekly pass for salaried)
	contract := payroll.Contract{
		SalaryAnnual:         78000,
		OrdinaryHoursPerWeek: 38,
		Type:                 payroll.TypeSalary,
	}

	entries := []payroll.TimesheetEntry{makeEntry(0, 10, false, false), makeEntry(1, 10, false, false)}
	result := payroll.ComputePay(entries, contract, nil)

	ot15 := findLine(result, payroll.CodeOvertime15)
	if ot15 == nil || !ot15.Units.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("expected 4h at 1.5x, got %+v", ot15)
	}
	ot20 := findLine(result, payroll.CodeOvertime20)
	if ot20 == nil || !ot20.Units.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("expected 1h at 2.0x, got %+v", ot20)
	}
}

// =============================================================================
// NIGHT LOADING
// =============================================================================

func TestNightLoadingSurvivesWeeklyEscalation(t *testing.T) {
	// GIVEN: Full-time, 5x9h all night-flagged (45h)
	// WHEN: The weekly pass bumps 7 ordinary hours into overtime
	// THEN: Night loading still prices the full 45 pre-escalation ordinary
	//       hours. Intentional source behavior; do not "fix".

	var entries []payroll.TimesheetEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, makeEntry(i, 9, true, false))
	}

	result := payroll.ComputePay(entries, hourlyContract(30, payroll.TypeFullTime), nil)

	assertLine(t, result, payroll.CodeOrdinary, 38, 1140)
	assertLine(t, result, payroll.CodeNight, 45, 202.5)
	assertLine(t, result, payroll.CodeOvertime15, 2, 90)
	assertLine(t, result, payroll.CodeOvertime20, 5, 300)
}

func TestNightLoadingOnlyOnOrdinaryPortion(t *testing.T) {
	// GIVEN: Casual 14h night-flagged day (cap 10)
	// THEN: Night loading covers the 10 ordinary hours, not the 4 OT hours
	entry := makeEntry(0, 14, true, false)

	result := payroll.ComputePay([]payroll.TimesheetEntry{entry}, hourlyContract(30, payroll.TypeCasual), nil)

	assertLine(t, result, payroll.CodeNight, 10, 45)
}

func TestNightFlagIgnoredOnPublicHoliday(t *testing.T) {
	// GIVEN: A night-flagged public holiday entry
	// THEN: PH classification wins; no night loading accrues
	entry := makeEntry(0, 8, true, true)

	result := payroll.ComputePay([]payroll.TimesheetEntry{entry}, hourlyContract(30, payroll.TypeCasual), nil)

	assertNoLine(t, result, payroll.CodeNight)
}

// =============================================================================
// SALARY INFERENCE
// =============================================================================

func TestSalaryInference_CasualTypeString(t *testing.T) {
	// GIVEN: A contract typed "casual" but with salaryAnnual set and no
	//        hourly rate; the documented inference treats it as salaried
	// THEN: SALARY line emitted, weekly overtime skipped, and the daily
	//       cap is the casual 10h (the casual override runs after the
	//       salaried one). Intentional source behavior; do not "fix".

	contract := payroll.Contract{
		BaseRateHourly:       0,
		SalaryAnnual:         78000,
		OrdinaryHoursPerWeek: 38,
		Type:                 payroll.TypeCasual,
	}

	result := payroll.ComputePay([]payroll.TimesheetEntry{makeEntry(0, 12, false, false)}, contract, nil)

	salary := findLine(result, payroll.CodeSalary)
	if salary == nil {
		t.Fatal("expected SALARY line via inference")
	}
	if !salary.Amount.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("SALARY amount: expected 1500, got %v", salary.Amount)
	}
	assertNoLine(t, result, payroll.CodeOrdinary)

	// 12h against the casual 10h cap: 2h at 1.5x, nothing at 2.0x
	ot := findLine(result, payroll.CodeOvertime15)
	if ot == nil || !ot.Units.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("expected 2h at 1.5x under the casual cap, got %+v", ot)
	}
	assertNoLine(t, result, payroll.CodeOvertime20)
}

func TestNoSalaryInferenceWhenHourlyRatePresent(t *testing.T) {
	// GIVEN: salaryAnnual set alongside a non-zero hourly rate
	// THEN: The contract stays hourly; the annual figure is ignored
	contract := payroll.Contract{
		BaseRateHourly: 30,
		SalaryAnnual:   78000,
		Type:           payroll.TypeCasual,
	}

	result := payroll.ComputePay([]payroll.TimesheetEntry{makeEntry(0, 8, false, false)}, contract, nil)

	assertNoLine(t, result, payroll.CodeSalary)
	assertLine(t, result, payroll.CodeOrdinary, 8, 240)
}

func TestParseContractType(t *testing.T) {
	cases := map[string]payroll.ContractType{
		"casual":     payroll.TypeCasual,
		"FULL_TIME":  payroll.TypeFullTime,
		"Part_Time":  payroll.TypePartTime,
		"salary":     payroll.TypeSalary,
		"contractor": payroll.TypeContractor,
		"":           payroll.TypeCasual,
		"gibberish":  payroll.TypeCasual,
	}
	for in, want := range cases {
		if got := payroll.ParseContractType(in); got != want {
			t.Errorf("ParseContractType(%q): expected %s, got %s", in, want, got)
		}
	}
}

// =============================================================================
// SUPERANNUATION BASE
// =============================================================================

func TestSuperExcludesOvertimeLinesOnly(t *testing.T) {
	// GIVEN: A week producing ORD, NIGHT, OT1.5, OT2.0, SUN, PH and an
	//        allowance line
	var entries []payroll.TimesheetEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, makeEntry(i, 9, i == 0, false))
	}
	entries = append(entries, makeEntry(5, 4, false, true)) // Saturday PH
	entries = append(entries, makeEntry(6, 3, false, false)) // Sunday

	contract := hourlyContract(30, payroll.TypeFullTime)
	contract.Allowances = &payroll.Allowances{Meal: true}

	result := payroll.ComputePay(entries, contract, nil)

	// Recompute the OTE base from the emitted lines: every code except
	// the OT-prefixed ones contributes
	expected := decimal.Zero
	for _, l := range result.Lines {
		if l.Code == payroll.CodeOvertime15 || l.Code == payroll.CodeOvertime20 {
			continue
		}
		expected = expected.Add(l.Amount)
	}
	expected = expected.Mul(payroll.SuperGuaranteeRate).Round(2)

	if !result.Super.Equal(expected) {
		t.Errorf("super: expected %v, got %v", expected, result.Super)
	}
	if result.Super.IsZero() {
		t.Error("expected a non-zero super base for this scenario")
	}
}

// =============================================================================
// NIGHT SHIFT DETECTION (boundary heuristic)
// =============================================================================

func TestDetectNightShift(t *testing.T) {
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"day shift", at(8), at(16), false},
		{"starts after 8pm", at(21), at(23), true},
		{"starts before 6am", at(5), at(13), true},
		{"ends after 8pm", at(14), at(22), true},
		{"ends at or before 6am", at(8), day.AddDate(0, 0, 1).Add(5 * time.Hour), true},
		{"spans midnight", at(18), at(2), true}, // end earlier in wall-clock terms
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := payroll.DetectNightShift(c.start, c.end); got != c.want {
				t.Errorf("DetectNightShift(%v, %v): expected %v, got %v", c.start, c.end, c.want, got)
			}
		})
	}
}
