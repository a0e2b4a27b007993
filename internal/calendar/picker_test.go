package calendar

import (
	"testing"
	"time"

	"github.com/erazemk/bamboorat/internal/model"
)

var pickerToday = time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

func TestPickerOpenUsesFieldMonth(t *testing.T) {
	var p Picker
	p, sel := p.Update(OpenMsg{Field: model.FieldBirthDate, Current: "10/01/2023"}, pickerToday)
	if sel != nil {
		t.Fatal("unexpected selection on open")
	}
	if !p.Open || p.Target != model.FieldBirthDate {
		t.Errorf("unexpected state %+v", p)
	}
	if p.Ref != (Month{2023, time.January}) {
		t.Errorf("expected January 2023, got %v", p.Ref)
	}
}

func TestPickerOpenInvalidFallsBackToToday(t *testing.T) {
	for _, current := range []string{"", "31/02/2024", "12/0"} {
		var p Picker
		p, _ = p.Update(OpenMsg{Field: model.FieldEstrusDate, Current: current}, pickerToday)
		if p.Ref != (Month{2024, time.May}) {
			t.Errorf("Current %q: expected May 2024, got %v", current, p.Ref)
		}
	}
}

func TestPickerNavigateAndSelect(t *testing.T) {
	var p Picker
	p, _ = p.Update(OpenMsg{Field: model.FieldBreedingDate, Current: "15/12/2023"}, pickerToday)
	p, _ = p.Update(NavigateMsg{Delta: 1}, pickerToday)
	if p.Ref != (Month{2024, time.January}) {
		t.Fatalf("expected January 2024, got %v", p.Ref)
	}
	p, _ = p.Update(NavigateMsg{Delta: -2}, pickerToday)
	if p.Ref != (Month{2023, time.November}) {
		t.Fatalf("expected November 2023, got %v", p.Ref)
	}

	p, sel := p.Update(SelectMsg{DateString: "07/11/2023"}, pickerToday)
	if sel == nil {
		t.Fatal("expected selection")
	}
	if sel.Field != model.FieldBreedingDate || sel.Value != "07/11/2023" {
		t.Errorf("unexpected selection %+v", sel)
	}
	if p.Open {
		t.Error("expected picker to close after selection")
	}
}

func TestPickerRetargets(t *testing.T) {
	var p Picker
	p, _ = p.Update(OpenMsg{Field: model.FieldBirthDate}, pickerToday)
	p, _ = p.Update(OpenMsg{Field: model.FieldSeparationDate}, pickerToday)

	_, sel := p.Update(SelectMsg{DateString: "01/05/2024"}, pickerToday)
	if sel == nil || sel.Field != model.FieldSeparationDate {
		t.Errorf("expected selection for the most recent field, got %+v", sel)
	}
}

func TestPickerClosedIgnoresEvents(t *testing.T) {
	var p Picker
	p, _ = p.Update(OpenMsg{Field: model.FieldBirthDate}, pickerToday)
	p, _ = p.Update(CloseMsg{}, pickerToday)

	if p.Open {
		t.Fatal("expected closed picker")
	}
	if _, sel := p.Update(SelectMsg{DateString: "01/05/2024"}, pickerToday); sel != nil {
		t.Error("expected no selection from a closed picker")
	}
}
