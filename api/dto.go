/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the pure engine's domain model from the external API contract and own
  the structural validation the engine deliberately does not do: the
  engine is total and never rejects input, so malformed payloads must be
  rejected here, before it is ever called.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

FIELD CONVENTIONS:
  - Dates: ISO YYYY-MM-DD strings
  - Timestamps: RFC3339
  - isNightShift is optional; when absent the boundary derives it from
    the clock time (the engine itself always trusts the flag)

SEE ALSO:
  - handlers.go: Uses these types
  - payroll: The engine input/output model these map onto
*/
package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/warp/pay-engine/calendar"
	"github.com/warp/pay-engine/payroll"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// PAY CALCULATION
// =============================================================================

// TimesheetEntryDTO is one worked interval in a calculation request.
type TimesheetEntryDTO struct {
	Date            string `json:"date"`      // YYYY-MM-DD
	StartTime       string `json:"startTime"` // RFC3339
	EndTime         string `json:"endTime"`   // RFC3339, already rolled past midnight if needed
	BreakMinutes    int    `json:"breakMinutes"`
	TaskCode        string `json:"taskCode,omitempty"`
	IsNightShift    *bool  `json:"isNightShift,omitempty"` // nil = derive from clock time
	IsPublicHoliday bool   `json:"isPublicHoliday,omitempty"`
}

// AllowancesDTO mirrors the contract allowance flags.
type AllowancesDTO struct {
	Dog      bool `json:"dog,omitempty"`
	Horse    bool `json:"horse,omitempty"`
	FirstAid bool `json:"firstAid,omitempty"`
	Meal     bool `json:"meal,omitempty"`
	Tool     bool `json:"tool,omitempty"` // Accepted but not priced
}

// ContractDTO is the pay terms in a calculation request.
type ContractDTO struct {
	BaseRateHourly       float64        `json:"baseRateHourly"`
	SalaryAnnual         float64        `json:"salaryAnnual,omitempty"`
	OrdinaryHoursPerWeek float64        `json:"ordinaryHoursPerWeek,omitempty"`
	Classification       string         `json:"classification,omitempty"`
	OvertimeMode         string         `json:"overtimeMode,omitempty"`
	Type                 string         `json:"type,omitempty"`
	Allowances           *AllowancesDTO `json:"allowances,omitempty"`
}

// CalculatePayRequest is the body of POST /api/pay/calculate.
//
// Holiday resolution: publicHolidays is used as given; when companyId,
// periodStart and periodEnd are all present, the stored calendar for that
// window is resolved and merged in (the caller-queries-the-calendar step
// done server-side).
type CalculatePayRequest struct {
	Entries        []TimesheetEntryDTO `json:"entries"`
	Contract       *ContractDTO        `json:"contract"`
	PublicHolidays []string            `json:"publicHolidays,omitempty"`
	CompanyID      string              `json:"companyId,omitempty"`
	PeriodStart    string              `json:"periodStart,omitempty"` // YYYY-MM-DD
	PeriodEnd      string              `json:"periodEnd,omitempty"`   // YYYY-MM-DD
}

// PayLineDTO is one priced row in the response. Amount is displayed
// rounded to 2dp; the engine keeps it unrounded internally.
type PayLineDTO struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Units       float64 `json:"units"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// PayResultDTO is the computed pay returned to clients.
type PayResultDTO struct {
	Gross float64      `json:"gross"`
	Tax   float64      `json:"tax"`
	Super float64      `json:"super"`
	Net   float64      `json:"net"`
	Lines []PayLineDTO `json:"lines"`
}

// TaxBracketDTO is one row of the bracket table.
type TaxBracketDTO struct {
	UpTo    float64 `json:"upTo"`
	Rate    float64 `json:"rate"`
	BaseTax float64 `json:"baseTax"`
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayDTO represents a holiday calendar entry in API responses.
type HolidayDTO struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id,omitempty"`
	Date      string `json:"date"` // YYYY-MM-DD
	Name      string `json:"name"`
	Type      string `json:"type"`
}

// CreateHolidayRequest is the request to create a holiday.
type CreateHolidayRequest struct {
	CompanyID string `json:"company_id,omitempty"`
	Date      string `json:"date"` // YYYY-MM-DD
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"` // Defaults to public_holiday
}

// =============================================================================
// CONVERSIONS
// =============================================================================

var errInvalidPayload = errors.New("invalid payload format")

// Validate checks the structural shape the engine assumes the boundary
// has already verified.
func (r *CalculatePayRequest) Validate() error {
	if r.Contract == nil {
		return errInvalidPayload
	}
	if r.Entries == nil {
		return errInvalidPayload
	}
	return nil
}

func (e TimesheetEntryDTO) toDomain() (payroll.TimesheetEntry, error) {
	date, err := time.Parse("2006-01-02", e.Date)
	if err != nil {
		return payroll.TimesheetEntry{}, fmt.Errorf("invalid date %q: %w", e.Date, err)
	}
	start, err := time.Parse(time.RFC3339, e.StartTime)
	if err != nil {
		return payroll.TimesheetEntry{}, fmt.Errorf("invalid startTime %q: %w", e.StartTime, err)
	}
	end, err := time.Parse(time.RFC3339, e.EndTime)
	if err != nil {
		return payroll.TimesheetEntry{}, fmt.Errorf("invalid endTime %q: %w", e.EndTime, err)
	}

	night := payroll.DetectNightShift(start, end)
	if e.IsNightShift != nil {
		night = *e.IsNightShift
	}

	return payroll.TimesheetEntry{
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		BreakMinutes:    e.BreakMinutes,
		TaskCode:        e.TaskCode,
		IsNightShift:    night,
		IsPublicHoliday: e.IsPublicHoliday,
	}, nil
}

func (c ContractDTO) toDomain() payroll.Contract {
	contract := payroll.Contract{
		BaseRateHourly:       c.BaseRateHourly,
		SalaryAnnual:         c.SalaryAnnual,
		OrdinaryHoursPerWeek: c.OrdinaryHoursPerWeek,
		Classification:       c.Classification,
		OvertimeMode:         payroll.OvertimeMode(c.OvertimeMode),
		Type:                 payroll.ParseContractType(c.Type),
	}
	if c.OvertimeMode != string(payroll.OvertimeFlatRate) {
		contract.OvertimeMode = payroll.OvertimeAwardDefault
	}
	if c.Allowances != nil {
		contract.Allowances = &payroll.Allowances{
			Dog:      c.Allowances.Dog,
			Horse:    c.Allowances.Horse,
			FirstAid: c.Allowances.FirstAid,
			Meal:     c.Allowances.Meal,
			Tool:     c.Allowances.Tool,
		}
	}
	return contract
}

func toResultDTO(r payroll.PayResult) PayResultDTO {
	lines := make([]PayLineDTO, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, PayLineDTO{
			Code:        l.Code,
			Description: l.Description,
			Units:       l.Units.InexactFloat64(),
			Rate:        l.Rate.InexactFloat64(),
			Amount:      l.Amount.Round(2).InexactFloat64(),
		})
	}
	return PayResultDTO{
		Gross: r.Gross.InexactFloat64(),
		Tax:   r.Tax.InexactFloat64(),
		Super: r.Super.InexactFloat64(),
		Net:   r.Net.InexactFloat64(),
		Lines: lines,
	}
}

func toHolidayDTO(h calendar.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:        h.ID,
		CompanyID: h.CompanyID,
		Date:      h.DateKey(),
		Name:      h.Name,
		Type:      string(h.Type),
	}
}
