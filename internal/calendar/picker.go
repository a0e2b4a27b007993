package calendar

import (
	"time"

	"github.com/erazemk/bamboorat/internal/datefield"
	"github.com/erazemk/bamboorat/internal/model"
)

// Picker is the state of the date picker shared by the date fields of a form.
// Target is the field that receives the next selection.
type Picker struct {
	Target model.DateField
	Ref    Month
	Open   bool
}

// Msg is a picker event.
type Msg interface {
	pickerMsg()
}

// OpenMsg opens the picker for a field. Current is the field's value; a valid
// date selects its month, anything else selects the current month.
type OpenMsg struct {
	Field   model.DateField
	Current string
}

// NavigateMsg moves the displayed month by Delta months.
type NavigateMsg struct {
	Delta int
}

// SelectMsg picks a day by its DD/MM/YYYY string.
type SelectMsg struct {
	DateString string
}

// CloseMsg closes the picker without a selection.
type CloseMsg struct{}

func (OpenMsg) pickerMsg()     {}
func (NavigateMsg) pickerMsg() {}
func (SelectMsg) pickerMsg()   {}
func (CloseMsg) pickerMsg()    {}

// Selection is a value chosen for a field.
type Selection struct {
	Field model.DateField
	Value string
}

// Update applies msg and returns the new state. A non-nil Selection is
// returned when a day was picked for an open picker.
func (p Picker) Update(msg Msg, today time.Time) (Picker, *Selection) {
	switch msg := msg.(type) {
	case OpenMsg:
		ref := MonthOf(today)
		if d, ok := datefield.Parse(msg.Current); ok {
			ref = MonthOf(d)
		}
		return Picker{Target: msg.Field, Ref: ref, Open: true}, nil

	case NavigateMsg:
		if !p.Open {
			return p, nil
		}
		p.Ref = p.Ref.Add(msg.Delta)
		return p, nil

	case SelectMsg:
		if !p.Open {
			return p, nil
		}
		sel := &Selection{Field: p.Target, Value: msg.DateString}
		p.Open = false
		return p, sel

	case CloseMsg:
		p.Open = false
		return p, nil
	}
	return p, nil
}

// Grid returns the grid for the displayed month.
func (p Picker) Grid(today time.Time) Grid {
	return Generate(p.Ref, today)
}
