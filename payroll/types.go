/*
Package payroll implements the pay computation engine.

PURPOSE:
  This package contains the pure, rule-heavy core of the system: turning
  a set of worked-time entries, a contract description, and a list of
  public-holiday dates into an itemized pay result (ordinary/overtime/
  penalty lines, tax withholding estimate, superannuation, net pay).

KEY CONCEPTS IN THIS FILE (types.go):
  - TimesheetEntry: One worked interval (may span midnight)
  - Contract: Pay terms in effect for the period being computed
  - ContractType: Closed variant for casual/full_time/part_time/salary/contractor
  - PayLine: One priced row of the result (hours bucket or flat amount)
  - PayResult: Gross, tax, super, net and the ordered line list

DESIGN PRINCIPLES:
  1. Purity: ComputePay has no I/O, no state between calls, no error path
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Totality: Malformed durations degrade to zero hours, never panic
  4. Immutability: Inputs are value objects; results are built fresh per call

USAGE:
  result := payroll.ComputePay(entries, contract, []string{"2025-12-25"})
  fmt.Println(result.Gross, result.Net)

SEE ALSO:
  - engine.go: ComputePay orchestration and line emission
  - classify.go: Hour bucket classification and overtime passes
  - tax.go: Weekly withholding estimate
*/
package payroll

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// INPUT TYPES
// =============================================================================

// TimesheetEntry is one worked interval. EndTime must already be rolled to
// the next day for shifts crossing midnight; the engine does not detect or
// correct day rollover itself.
type TimesheetEntry struct {
	Date         time.Time // Calendar date; day-of-week drives classification
	StartTime    time.Time
	EndTime      time.Time
	BreakMinutes int    // Unpaid break, subtracted from worked duration
	TaskCode     string // Carried through for reporting only, no effect on pay

	// IsNightShift is independent of the clock time: the engine trusts the
	// caller's flag rather than inspecting the interval. See DetectNightShift
	// for the boundary-layer heuristic.
	IsNightShift bool

	// IsPublicHoliday is ORed with membership in the publicHolidays list.
	IsPublicHoliday bool
}

// ContractType identifies the employment mode driving classification.
type ContractType string

const (
	TypeCasual     ContractType = "casual"
	TypeFullTime   ContractType = "full_time"
	TypePartTime   ContractType = "part_time"
	TypeSalary     ContractType = "salary"
	TypeContractor ContractType = "contractor"
)

// ParseContractType normalizes a raw type string. Unknown or empty strings
// default to casual, matching caller behavior.
func ParseContractType(s string) ContractType {
	switch ContractType(strings.ToLower(s)) {
	case TypeFullTime:
		return TypeFullTime
	case TypePartTime:
		return TypePartTime
	case TypeSalary:
		return TypeSalary
	case TypeContractor:
		return TypeContractor
	default:
		return TypeCasual
	}
}

// OvertimeMode is carried in the contract but does not currently branch
// engine behavior. Forward-compatible metadata.
type OvertimeMode string

const (
	OvertimeAwardDefault OvertimeMode = "award_default"
	OvertimeFlatRate     OvertimeMode = "flat_rate"
)

// Allowances are per-period flat amounts, one line per true flag.
// Tool exists in the data model but is not priced.
type Allowances struct {
	Dog      bool
	Horse    bool
	FirstAid bool
	Meal     bool
	Tool     bool
}

// Contract holds the pay terms in effect for the period being computed.
type Contract struct {
	BaseRateHourly float64 // Ignored (may be 0) when effectively salaried

	// SalaryAnnual is used when Type is salary, or, as an intentional
	// inference, whenever SalaryAnnual > 0 and BaseRateHourly is zero,
	// even if Type says otherwise.
	SalaryAnnual float64

	// OrdinaryHoursPerWeek is the denominator for the salaried hourly
	// equivalent. Defaults to 38 if unset.
	OrdinaryHoursPerWeek float64

	Classification string // Carried through for reporting only
	OvertimeMode   OvertimeMode
	Type           ContractType
	Allowances     *Allowances
}

// =============================================================================
// OUTPUT TYPES
// =============================================================================

// Line codes. Stable short identifiers; the superannuation base excludes
// every code with the "OT" prefix.
const (
	CodeOrdinary      = "ORD"
	CodeNight         = "NIGHT"
	CodeOvertime15    = "OT1.5"
	CodeOvertime20    = "OT2.0"
	CodeSunday        = "SUN"
	CodePublicHoliday = "PH"
	CodeSalary        = "SALARY"
	CodeAllowDog      = "ALL_DOG"
	CodeAllowHorse    = "ALL_HORSE"
	CodeAllowFirstAid = "ALL_FA"
	CodeAllowMeal     = "ALL_MEAL"
)

// PayLine is one priced row. Amount is units*rate for every code except
// SALARY, which is a fixed weekly amount with a reported derived rate.
// Amounts are NOT rounded per line; rounding happens once on the result
// scalars.
type PayLine struct {
	Code        string
	Description string
	Units       decimal.Decimal // Hours; 1 for allowances, ordinary week for salary
	Rate        decimal.Decimal // Dollars per unit
	Amount      decimal.Decimal
}

// PayResult is the computed pay for one period.
type PayResult struct {
	Gross decimal.Decimal // Sum of all line amounts, rounded to 2dp
	Tax   decimal.Decimal // Weekly withholding estimate
	Super decimal.Decimal // Superannuation on the OTE-equivalent base
	Net   decimal.Decimal // gross - tax
	Lines []PayLine       // In emission order
}

// =============================================================================
// DECIMAL HELPERS
// =============================================================================

var (
	sixty          = decimal.NewFromInt(60)
	weeksPerYear   = decimal.NewFromInt(52)
	defaultOrdWeek = decimal.NewFromInt(38)
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }
