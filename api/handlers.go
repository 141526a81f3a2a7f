/*
handlers.go - HTTP API handlers for the pay computation service

PURPOSE:
  Exposes the pure pay engine via REST. Handles HTTP request/response,
  JSON serialization, payload validation, and holiday-calendar lookups;
  delegates all pay rules to the payroll package.

ENDPOINTS:
  Pay:
    POST   /api/pay/calculate      Compute pay for entries + contract
    GET    /api/tax/brackets       The withholding bracket table

  Holidays:
    GET    /api/holidays           List holidays (?company_id=...)
    POST   /api/holidays           Create holiday
    POST   /api/holidays/defaults  Seed national defaults (?year=...)
    DELETE /api/holidays/{id}      Delete holiday

  Scenarios:
    GET    /api/scenarios          List demo scenarios
    POST   /api/scenarios/{id}/run Compute a demo scenario

  Misc:
    GET    /api/health             Liveness check

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate payload shape (the engine is total and never rejects, so
     rejection MUST happen here)
  3. Resolve holiday dates from the store when a company/period is given
  4. Call the engine
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures and validation
  - scenarios.go: Canned demo computations
  - server.go: Router setup and middleware
*/
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/pay-engine/calendar"
	"github.com/warp/pay-engine/payroll"
	"github.com/warp/pay-engine/store/sqlite"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// PAY CALCULATION
// =============================================================================

// CalculatePay handles POST /api/pay/calculate.
func (h *Handler) CalculatePay(w http.ResponseWriter, r *http.Request) {
	var req CalculatePayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload format", err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload format", nil)
		return
	}

	entries := make([]payroll.TimesheetEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entry, err := e.toDomain()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid payload format", err)
			return
		}
		entries = append(entries, entry)
	}

	holidays, err := h.resolveHolidays(r, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	result := payroll.ComputePay(entries, req.Contract.toDomain(), holidays)
	writeJSON(w, http.StatusOK, toResultDTO(result))
}

// resolveHolidays merges the request's explicit holiday dates with the
// stored calendar for the requested company and period, if given.
func (h *Handler) resolveHolidays(r *http.Request, req CalculatePayRequest) ([]string, error) {
	dates := req.PublicHolidays

	if req.CompanyID == "" || req.PeriodStart == "" || req.PeriodEnd == "" {
		return dates, nil
	}

	from, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return nil, err
	}
	to, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return nil, err
	}

	stored, err := h.Store.DatesInRange(r.Context(), req.CompanyID, from, to)
	if err != nil {
		return nil, err
	}
	return append(dates, stored...), nil
}

// ListTaxBrackets handles GET /api/tax/brackets.
func (h *Handler) ListTaxBrackets(w http.ResponseWriter, r *http.Request) {
	dtos := make([]TaxBracketDTO, 0, len(payroll.TaxBrackets2025))
	for _, b := range payroll.TaxBrackets2025 {
		dtos = append(dtos, TaxBracketDTO{
			UpTo:    b.UpTo.InexactFloat64(),
			Rate:    b.Rate.InexactFloat64(),
			BaseTax: b.BaseTax.InexactFloat64(),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// ListHolidays handles GET /api/holidays.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")

	holidays, err := h.Store.ListHolidays(r.Context(), companyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}

	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, toHolidayDTO(hol))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateHoliday handles POST /api/holidays.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Holiday name is required", nil)
		return
	}

	typ := calendar.Type(req.Type)
	if req.Type == "" {
		typ = calendar.TypePublicHoliday
	}
	switch typ {
	case calendar.TypePublicHoliday, calendar.TypeLocalPublicHoliday, calendar.TypeObservance:
	default:
		writeError(w, http.StatusBadRequest, "Unknown holiday type", nil)
		return
	}

	holiday := calendar.Holiday{
		ID:        uuid.NewString(),
		CompanyID: req.CompanyID,
		Date:      date,
		Name:      req.Name,
		Type:      typ,
	}
	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}

	writeJSON(w, http.StatusCreated, toHolidayDTO(holiday))
}

// SeedDefaultHolidays handles POST /api/holidays/defaults.
func (h *Handler) SeedDefaultHolidays(w http.ResponseWriter, r *http.Request) {
	year := time.Now().UTC().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := time.Parse("2006", y)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed.Year()
	}

	created := make([]HolidayDTO, 0)
	for _, holiday := range calendar.NationalDefaults(year) {
		holiday.ID = uuid.NewString()
		if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to seed holidays", err)
			return
		}
		created = append(created, toHolidayDTO(holiday))
	}

	writeJSON(w, http.StatusCreated, created)
}

// DeleteHoliday handles DELETE /api/holidays/{id}.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Holiday not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// MISC
// =============================================================================

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
