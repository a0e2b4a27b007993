// Package calendar builds month grids for the date picker.
package calendar

import (
	"fmt"
	"time"

	"github.com/erazemk/bamboorat/internal/datefield"
)

// GridSize is the number of cells in a month grid (six weeks).
const GridSize = 42

var monthNames = [12]string{
	"ມັງກອນ", "ກຸມພາ", "ມີນາ", "ເມສາ", "ພຶດສະພາ", "ມິຖຸນາ",
	"ກໍລະກົດ", "ສິງຫາ", "ກັນຍາ", "ຕຸລາ", "ພະຈິກ", "ທັນວາ",
}

var weekdayNames = [7]string{"ອາທິດ", "ຈັນ", "ອັງຄານ", "ພຸດ", "ພະຫັດ", "ສຸກ", "ເສົາ"}

// Month is a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a YYYY-MM month key.
func ParseMonth(s string) (Month, bool) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, false
	}
	return MonthOf(t), true
}

// Add returns the month n months after m; n may be negative.
func (m Month) Add(n int) Month {
	return MonthOf(time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}

// Key returns m as YYYY-MM.
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label returns the month name and year for display.
func (m Month) Label() string {
	return MonthName(m.Month) + " " + fmt.Sprint(m.Year)
}

// MonthName returns the display name of a month.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return m.String()
	}
	return monthNames[m-1]
}

// WeekdayNames returns the column headers, Sunday first.
func WeekdayNames() []string {
	return weekdayNames[:]
}

// Cell is one day of a month grid.
type Cell struct {
	Date           time.Time
	Day            int
	IsCurrentMonth bool
	IsToday        bool
	DateString     string
}

// Grid is a six-week block of days starting on a Sunday.
type Grid struct {
	Month Month
	Cells []Cell
}

// Weeks splits the grid into rows of seven cells.
func (g Grid) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(g.Cells)/7)
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		weeks = append(weeks, g.Cells[i:i+7])
	}
	return weeks
}

// Generate returns the 42-day grid for ref. The grid starts on the Sunday on
// or before the first of the month. Dates are in today's location.
func Generate(ref Month, today time.Time) Grid {
	loc := today.Location()
	first := time.Date(ref.Year, ref.Month, 1, 0, 0, 0, 0, loc)
	ref = MonthOf(first)

	// align first column to Sunday
	start := first.AddDate(0, 0, -int(first.Weekday()))

	ty, tm, td := today.Date()
	cells := make([]Cell, GridSize)
	for i := range cells {
		d := start.AddDate(0, 0, i)
		y, m, day := d.Date()
		cells[i] = Cell{
			Date:           d,
			Day:            day,
			IsCurrentMonth: y == ref.Year && m == ref.Month,
			IsToday:        y == ty && m == tm && day == td,
			DateString:     datefield.FormatDate(day, int(m), y),
		}
	}

	return Grid{Month: ref, Cells: cells}
}
