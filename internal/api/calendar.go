package api

import (
	"net/http"
	"time"

	"github.com/erazemk/bamboorat/internal/calendar"
	"github.com/erazemk/bamboorat/internal/datefield"
)

// CalendarHandler serves the date helpers used by clients.
type CalendarHandler struct {
	Now func() time.Time
}

type dayResponse struct {
	Date         string `json:"date"`
	Day          int    `json:"day"`
	CurrentMonth bool   `json:"currentMonth"`
	Today        bool   `json:"today"`
}

type calendarResponse struct {
	Month    string          `json:"month"`
	Label    string          `json:"label"`
	Prev     string          `json:"prev"`
	Next     string          `json:"next"`
	Weekdays []string        `json:"weekdays"`
	Weeks    [][]dayResponse `json:"weeks"`
}

type dateFieldResponse struct {
	Formatted string `json:"formatted"`
	Valid     bool   `json:"valid"`
}

// Month handles GET /api/calendar?month=YYYY-MM. The current month is used
// when the parameter is missing.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	today := h.Now()

	ref := calendar.MonthOf(today)
	if v := r.URL.Query().Get("month"); v != "" {
		m, ok := calendar.ParseMonth(v)
		if !ok {
			jsonError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
		ref = m
	}

	grid := calendar.Generate(ref, today)
	resp := calendarResponse{
		Month:    grid.Month.Key(),
		Label:    grid.Month.Label(),
		Prev:     grid.Month.Add(-1).Key(),
		Next:     grid.Month.Add(1).Key(),
		Weekdays: calendar.WeekdayNames(),
	}
	for _, week := range grid.Weeks() {
		row := make([]dayResponse, 0, len(week))
		for _, c := range week {
			row = append(row, dayResponse{
				Date:         c.DateString,
				Day:          c.Day,
				CurrentMonth: c.IsCurrentMonth,
				Today:        c.IsToday,
			})
		}
		resp.Weeks = append(resp.Weeks, row)
	}

	jsonResponse(w, http.StatusOK, resp)
}

// DateField handles GET /api/datefield?value=...[&prev=...]. With prev the
// value is treated as one keystroke after prev; without it the value is
// formatted in one go.
func (h *CalendarHandler) DateField(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	value := q.Get("value")

	var formatted string
	if q.Has("prev") {
		formatted = datefield.Normalize(q.Get("prev"), value)
	} else {
		formatted = datefield.Format(value)
	}

	jsonResponse(w, http.StatusOK, dateFieldResponse{
		Formatted: formatted,
		Valid:     datefield.IsValid(formatted),
	})
}
