/*
scenarios.go - Canned demo computations

PURPOSE:
  Ships the engine's pinned behavior matrix as runnable demos: each
  scenario bundles a realistic week of entries with a contract, and
  running one returns the computed pay result. Used by the demo UI and
  by anyone exploring how the classification rules interact.

SEE ALSO:
  - handlers.go: ListScenarios / RunScenario endpoints
  - payroll engine tests: The same matrix pinned as assertions
*/
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/pay-engine/payroll"
)

// Scenario is a canned calculation demo.
type Scenario struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	entries  func() []payroll.TimesheetEntry
	contract payroll.Contract
	holidays []string
}

// ScenarioResultDTO is a scenario plus its computed result.
type ScenarioResultDTO struct {
	Scenario
	Result PayResultDTO `json:"result"`
}

// scenarioWeek builds entries starting Monday 2025-06-02 at 08:00.
func scenarioWeek(hoursPerDay []float64, nightDay, phDay int) func() []payroll.TimesheetEntry {
	return func() []payroll.TimesheetEntry {
		monday := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
		var entries []payroll.TimesheetEntry
		for i, hours := range hoursPerDay {
			if hours == 0 {
				continue
			}
			day := monday.AddDate(0, 0, i)
			start := day.Add(8 * time.Hour)
			entries = append(entries, payroll.TimesheetEntry{
				Date:            day,
				StartTime:       start,
				EndTime:         start.Add(time.Duration(hours * float64(time.Hour))),
				IsNightShift:    i == nightDay,
				IsPublicHoliday: i == phDay,
			})
		}
		return entries
	}
}

var scenarios = []Scenario{
	{
		ID:          "casual-night-week",
		Name:        "Casual 45h with night shift",
		Description: "Casual at $30/hr, five 9h weekdays with Monday night-flagged. No weekly overtime for casuals; 9h of night loading.",
		entries:     scenarioWeek([]float64{9, 9, 9, 9, 9, 0, 0}, 0, -1),
		contract: payroll.Contract{
			BaseRateHourly: 30, OrdinaryHoursPerWeek: 38,
			Classification: "Casual L1", OvertimeMode: payroll.OvertimeFlatRate, Type: payroll.TypeCasual,
		},
	},
	{
		ID:          "fulltime-public-holiday",
		Name:        "Full-time 50h with public holiday",
		Description: "Full-time at $40/hr, five 10h days with Wednesday a public holiday. PH hours leave the weekly count; the rest escalates past 38h.",
		entries:     scenarioWeek([]float64{10, 10, 10, 10, 10, 0, 0}, -1, 2),
		contract: payroll.Contract{
			BaseRateHourly: 40, OrdinaryHoursPerWeek: 38,
			Classification: "FT L2", OvertimeMode: payroll.OvertimeAwardDefault, Type: payroll.TypeFullTime,
		},
	},
	{
		ID:          "parttime-overtime",
		Name:        "Part-time 40h week",
		Description: "Part-time at $35/hr, five 8h days. Two hours of weekly overtime at 1.5x.",
		entries:     scenarioWeek([]float64{8, 8, 8, 8, 8, 0, 0}, -1, -1),
		contract: payroll.Contract{
			BaseRateHourly: 35, OrdinaryHoursPerWeek: 38,
			Classification: "PT L1", OvertimeMode: payroll.OvertimeAwardDefault, Type: payroll.TypePartTime,
		},
	},
	{
		ID:          "salary-long-day",
		Name:        "Salaried manager, one long day",
		Description: "Salary $78,000/yr with one 9h day. Fixed weekly salary line plus 1.5h daily overtime above the 7.5h cap.",
		entries:     scenarioWeek([]float64{9, 0, 0, 0, 0, 0, 0}, -1, -1),
		contract: payroll.Contract{
			SalaryAnnual: 78000, OrdinaryHoursPerWeek: 38,
			Classification: "Manager", OvertimeMode: payroll.OvertimeAwardDefault, Type: payroll.TypeSalary,
		},
	},
	{
		ID:          "sunday-and-allowances",
		Name:        "Sunday work with allowances",
		Description: "Casual at $30/hr working 5h on Sunday, with dog and first-aid allowances.",
		entries:     scenarioWeek([]float64{0, 0, 0, 0, 0, 0, 5}, -1, -1),
		contract: payroll.Contract{
			BaseRateHourly: 30, OrdinaryHoursPerWeek: 38,
			Classification: "Casual L1", Type: payroll.TypeCasual,
			Allowances: &payroll.Allowances{Dog: true, FirstAid: true},
		},
	},
}

// ListScenarios handles GET /api/scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// RunScenario handles POST /api/scenarios/{id}/run.
func (h *Handler) RunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	for _, s := range scenarios {
		if s.ID != id {
			continue
		}
		result := payroll.ComputePay(s.entries(), s.contract, s.holidays)
		writeJSON(w, http.StatusOK, ScenarioResultDTO{Scenario: s, Result: toResultDTO(result)})
		return
	}

	writeError(w, http.StatusNotFound, "Unknown scenario", nil)
}
