package model

// NeutralColor is used for status values outside the known set.
const NeutralColor = "#9e9e9e"

type statusInfo struct {
	label string
	color string
}

var statusInfos = map[string]statusInfo{
	StatusMixing:     {"ປະສົມ", "#ff9800"},
	StatusPregnant:   {"ຖືພາ", "#4caf50"},
	StatusNursing:    {"ລ້ຽງລູກ", "#2196f3"},
	StatusRecovering: {"ພັກຟື້ນ", "#9c27b0"},
}

// Statuses lists the selectable status values in display order.
func Statuses() []string {
	return []string{StatusMixing, StatusPregnant, StatusNursing, StatusRecovering}
}

// Owners lists the selectable owner values.
func Owners() []string {
	return []string{OwnerTay, OwnerTer}
}

// StatusLabel returns the display label for a status. Unknown values are
// returned verbatim.
func StatusLabel(status string) string {
	if info, ok := statusInfos[status]; ok {
		return info.label
	}
	return status
}

// StatusColor returns the chip colour for a status.
func StatusColor(status string) string {
	if info, ok := statusInfos[status]; ok {
		return info.color
	}
	return NeutralColor
}

// FieldLabel returns the form label of a date field.
func FieldLabel(f DateField) string {
	switch f {
	case FieldBreedingDate:
		return "ວັນປະສົມພັນ"
	case FieldBirthDate:
		return "ວັນເກີດ"
	case FieldSeparationDate:
		return "ວັນແຍກອອກຈາກແມ່"
	case FieldEstrusDate:
		return "ວັນດິ້ນເອົາ"
	}
	return string(f)
}
