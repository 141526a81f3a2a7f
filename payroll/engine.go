/*
engine.go - ComputePay orchestration and line emission

PURPOSE:
  The single entry point of the pay engine. Classifies hours, runs the
  weekly escalation, prices each bucket into lines in a fixed order, and
  derives the gross/tax/super/net scalars.

LINE EMISSION ORDER (zero buckets skipped):
  1. SALARY (salaried) or ORD (hourly)
  2. NIGHT   base rate x 0.15 loading
  3. OT1.5   base rate x 1.5
  4. OT2.0   base rate x 2.0
  5. SUN     base rate x 2.0
  6. PH      base rate x 2.5 (casual) or x 2.0 (all other types)
  7. Allowances: dog (10.00), horse (15.00), firstAid (5.00), meal (15.00)

ROUNDING:
  Line amounts are stored unrounded; monetary rounding to 2dp happens
  once on the final gross/tax/super/net scalars. Rounding per line first
  would change totals under fractional-hour inputs. The one exception is
  the SALARY line, whose fixed amount is rounded to 2dp (and its display
  rate to 4dp) at emission.

SEE ALSO:
  - classify.go: Bucket classification
  - tax.go: Weekly withholding estimate
*/
package payroll

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RATE CONSTANTS - Approximations based on common awards
// =============================================================================

var (
	nightLoading        = dec(0.15) // 15% loading on top of base
	overtimeRate15      = dec(1.5)
	overtimeRate20      = dec(2.0)
	sundayMultiplier    = dec(2.0)
	phMultiplierCasual  = dec(2.5) // Casuals get the higher public-holiday rate
	phMultiplierDefault = dec(2.0)

	// SuperGuaranteeRate is applied to the OTE-equivalent base.
	SuperGuaranteeRate = dec(0.115)
)

// Flat allowance amounts, per pay period.
var (
	allowanceDog      = dec(10.00)
	allowanceHorse    = dec(15.00)
	allowanceFirstAid = dec(5.00)
	allowanceMeal     = dec(15.00)
)

// =============================================================================
// COMPUTE PAY
// =============================================================================

// ComputePay turns timesheet entries, a contract, and a list of ISO
// YYYY-MM-DD public-holiday dates into an itemized pay result.
//
// The computation is pure and total: it holds no state between calls, does
// no I/O, and never fails: malformed durations degrade to zero hours.
// Structural validation of inputs belongs to the caller.
func ComputePay(entries []TimesheetEntry, contract Contract, publicHolidays []string) PayResult {
	mode := resolveMode(contract)

	holidays := make(map[string]bool, len(publicHolidays))
	for _, d := range publicHolidays {
		holidays[d] = true
	}

	buckets := classifyEntries(entries, mode, holidays)
	buckets = applyWeeklyOvertime(buckets, mode)

	lines := emitLines(buckets, mode, contract.Allowances)

	gross := decimal.Zero
	ote := decimal.Zero // Super base: everything except OT-prefixed lines
	for _, l := range lines {
		gross = gross.Add(l.Amount)
		if !strings.HasPrefix(l.Code, "OT") {
			ote = ote.Add(l.Amount)
		}
	}

	tax := CalculateWeeklyTax(gross)

	return PayResult{
		Gross: gross.Round(2),
		Tax:   tax,
		Super: ote.Mul(SuperGuaranteeRate).Round(2),
		Net:   gross.Sub(tax).Round(2),
		Lines: lines,
	}
}

// emitLines prices the hour buckets and allowances in the fixed order.
func emitLines(b hourBuckets, mode payMode, allowances *Allowances) []PayLine {
	var lines []PayLine

	if mode.Salaried {
		// Fixed weekly amount; units and rate are reported for display only
		weekly := mode.SalaryAnnual.Div(weeksPerYear)
		lines = append(lines, PayLine{
			Code:        CodeSalary,
			Description: "Weekly Salary Base",
			Units:       defaultOrdWeek,
			Rate:        mode.SalaryAnnual.Div(weeksPerYear).Div(mode.OrdinaryWeek).Round(4),
			Amount:      weekly.Round(2),
		})
	} else if b.Ordinary.IsPositive() {
		desc := "Ordinary Hours"
		if mode.isCasual() {
			desc = "Casual Hours"
		}
		lines = append(lines, priced(CodeOrdinary, desc, b.Ordinary, mode.BaseRate))
	}

	if b.Night.IsPositive() {
		lines = append(lines, priced(CodeNight, "Night Shift Loading", b.Night, mode.BaseRate.Mul(nightLoading)))
	}
	if b.OT15.IsPositive() {
		lines = append(lines, priced(CodeOvertime15, "Overtime x1.5", b.OT15, mode.BaseRate.Mul(overtimeRate15)))
	}
	if b.OT20.IsPositive() {
		lines = append(lines, priced(CodeOvertime20, "Overtime x2.0", b.OT20, mode.BaseRate.Mul(overtimeRate20)))
	}
	if b.Sunday.IsPositive() {
		lines = append(lines, priced(CodeSunday, "Sunday Work", b.Sunday, mode.BaseRate.Mul(sundayMultiplier)))
	}
	if b.PublicHoliday.IsPositive() {
		mult := phMultiplierDefault
		if mode.isCasual() {
			mult = phMultiplierCasual
		}
		lines = append(lines, priced(CodePublicHoliday, "Public Holiday", b.PublicHoliday, mode.BaseRate.Mul(mult)))
	}

	if allowances != nil {
		one := decimal.NewFromInt(1)
		if allowances.Dog {
			lines = append(lines, priced(CodeAllowDog, "Dog Allowance", one, allowanceDog))
		}
		if allowances.Horse {
			lines = append(lines, priced(CodeAllowHorse, "Horse Allowance", one, allowanceHorse))
		}
		if allowances.FirstAid {
			lines = append(lines, priced(CodeAllowFirstAid, "First Aid Allowance", one, allowanceFirstAid))
		}
		if allowances.Meal {
			lines = append(lines, priced(CodeAllowMeal, "Meal Allowance", one, allowanceMeal))
		}
	}

	return lines
}

func priced(code, description string, units, rate decimal.Decimal) PayLine {
	return PayLine{
		Code:        code,
		Description: description,
		Units:       units,
		Rate:        rate,
		Amount:      units.Mul(rate),
	}
}

// =============================================================================
// NIGHT SHIFT DETECTION - Boundary-layer heuristic
// =============================================================================

// DetectNightShift reports whether an interval should be treated as a night
// shift: starting at or after 20:00 or before 06:00, ending after 20:00 or
// at/before 06:00, or spanning midnight. The engine itself trusts the
// entry's flag; this helper is for callers that need to derive it.
func DetectNightShift(start, end time.Time) bool {
	s, e := start.Hour(), end.Hour()
	if s >= 20 || s < 6 {
		return true
	}
	if e > 20 || e <= 6 {
		return true
	}
	return end.Before(start)
}
