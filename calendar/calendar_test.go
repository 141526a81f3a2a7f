package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/pay-engine/calendar"
)

func TestPayableDates_FiltersAndDeduplicates(t *testing.T) {
	holidays := []calendar.Holiday{
		{Date: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), Name: "Christmas Day", Type: calendar.TypePublicHoliday},
		{Date: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), Name: "Show Day", Type: calendar.TypeLocalPublicHoliday, CompanyID: "farm-1"},
		{Date: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), Name: "Show Day (duplicate)", Type: calendar.TypePublicHoliday},
		{Date: time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC), Name: "Mother's Day", Type: calendar.TypeObservance},
	}

	dates := calendar.PayableDates(holidays)

	assert.Equal(t, []string{"2025-06-09", "2025-12-25"}, dates)
}

func TestPayableDates_Empty(t *testing.T) {
	assert.Empty(t, calendar.PayableDates(nil))
	assert.Empty(t, calendar.PayableDates([]calendar.Holiday{
		{Date: time.Now(), Type: calendar.TypeObservance},
	}))
}

func TestNationalDefaults(t *testing.T) {
	defaults := calendar.NationalDefaults(2025)

	assert.Len(t, defaults, 5)
	for _, h := range defaults {
		assert.Equal(t, calendar.TypePublicHoliday, h.Type)
		assert.Equal(t, 2025, h.Date.Year())
		assert.Empty(t, h.CompanyID, "defaults are global")
	}
	assert.Equal(t, "2025-01-01", defaults[0].DateKey())
}
