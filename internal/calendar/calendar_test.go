package calendar

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestGenerateMarch2024(t *testing.T) {
	today := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	g := Generate(Month{Year: 2024, Month: time.March}, today)

	if len(g.Cells) != GridSize {
		t.Fatalf("expected %d cells, got %d", GridSize, len(g.Cells))
	}

	// 1 March 2024 is a Friday, so the grid starts on Sunday 25 February.
	first := g.Cells[0]
	if first.DateString != "25/02/2024" {
		t.Errorf("expected first cell 25/02/2024, got %s", first.DateString)
	}
	if first.IsCurrentMonth {
		t.Error("expected first cell to belong to February")
	}
	if first.Date.Weekday() != time.Sunday {
		t.Errorf("expected Sunday, got %s", first.Date.Weekday())
	}

	if c := g.Cells[5]; c.Day != 1 || !c.IsCurrentMonth {
		t.Errorf("expected 1 March at index 5, got %+v", c)
	}

	last := g.Cells[GridSize-1]
	if last.DateString != "06/04/2024" {
		t.Errorf("expected last cell 06/04/2024, got %s", last.DateString)
	}

	todayCount := 0
	for _, c := range g.Cells {
		if c.IsToday {
			todayCount++
			if c.DateString != "15/03/2024" {
				t.Errorf("unexpected today cell %s", c.DateString)
			}
		}
	}
	if todayCount != 1 {
		t.Errorf("expected exactly one today cell, got %d", todayCount)
	}

	if len(g.Weeks()) != 6 {
		t.Errorf("expected 6 weeks, got %d", len(g.Weeks()))
	}
}

func TestGenerateMonthStartingSunday(t *testing.T) {
	// 1 September 2024 is a Sunday.
	g := Generate(Month{Year: 2024, Month: time.September}, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	if g.Cells[0].DateString != "01/09/2024" {
		t.Errorf("expected grid to start on the 1st, got %s", g.Cells[0].DateString)
	}
	for _, c := range g.Cells {
		if c.IsToday {
			t.Errorf("unexpected today cell %s", c.DateString)
		}
	}
}

func TestMonthAdd(t *testing.T) {
	tests := []struct {
		m    Month
		n    int
		want Month
	}{
		{Month{2024, time.December}, 1, Month{2025, time.January}},
		{Month{2024, time.January}, -1, Month{2023, time.December}},
		{Month{2024, time.June}, 0, Month{2024, time.June}},
		{Month{2024, time.March}, 14, Month{2025, time.May}},
	}

	for _, tt := range tests {
		if got := tt.m.Add(tt.n); got != tt.want {
			t.Errorf("%v.Add(%d) = %v, want %v", tt.m, tt.n, got, tt.want)
		}
	}
}

func TestParseMonth(t *testing.T) {
	m, ok := ParseMonth("2024-02")
	if !ok || m != (Month{2024, time.February}) {
		t.Errorf("ParseMonth = %v, %v", m, ok)
	}
	if m.Key() != "2024-02" {
		t.Errorf("Key = %q", m.Key())
	}
	if m.Label() != "ກຸມພາ 2024" {
		t.Errorf("Label = %q", m.Label())
	}
	if _, ok := ParseMonth("2024-13"); ok {
		t.Error("expected invalid month")
	}
}

func TestGridProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ref := Month{
			Year:  rapid.IntRange(1900, 2200).Draw(t, "year"),
			Month: time.Month(rapid.IntRange(1, 12).Draw(t, "month")),
		}
		today := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, rapid.IntRange(0, 365*150).Draw(t, "today"))

		g := Generate(ref, today)
		if len(g.Cells) != GridSize {
			t.Fatalf("expected %d cells, got %d", GridSize, len(g.Cells))
		}

		first := time.Date(ref.Year, ref.Month, 1, 0, 0, 0, 0, time.UTC)
		start := first.AddDate(0, 0, -int(first.Weekday()))
		if !g.Cells[0].Date.Equal(start) {
			t.Fatalf("expected grid start %v, got %v", start, g.Cells[0].Date)
		}
		if g.Cells[0].Date.Weekday() != time.Sunday {
			t.Fatalf("grid starts on %s", g.Cells[0].Date.Weekday())
		}

		end := start.AddDate(0, 0, GridSize)
		inWindow := !today.Before(start) && today.Before(end)
		count := 0
		inMonth := 0
		for i, c := range g.Cells {
			if c.IsToday {
				count++
			}
			if c.IsCurrentMonth {
				inMonth++
			}
			if i > 0 && !c.Date.Equal(g.Cells[i-1].Date.AddDate(0, 0, 1)) {
				t.Fatalf("cell %d is not consecutive", i)
			}
		}
		if inWindow && count != 1 || !inWindow && count != 0 {
			t.Fatalf("today in window=%v but %d today cells", inWindow, count)
		}
		if days := first.AddDate(0, 1, -1).Day(); inMonth != days {
			t.Fatalf("expected %d in-month cells, got %d", days, inMonth)
		}
	})
}
