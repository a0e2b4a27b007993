package model

import "time"

// Record status values.
const (
	StatusMixing     = "mixing"
	StatusPregnant   = "pregnant"
	StatusNursing    = "nursing"
	StatusRecovering = "recovering"
)

// Record owner values.
const (
	OwnerTay = "Tay"
	OwnerTer = "Ter"
)

// Record is a stored bamboo rat record.
type Record struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	Owner          string    `json:"owner"`
	BreedingDate   string    `json:"breedingDate"`
	BirthDate      string    `json:"birthDate"`
	SeparationDate string    `json:"separationDate"`
	EstrusDate     string    `json:"estrusDate"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Draft holds the user-editable fields of a record before it is saved.
type Draft struct {
	Name           string `json:"name"`
	Status         string `json:"status"`
	Owner          string `json:"owner"`
	BreedingDate   string `json:"breedingDate"`
	BirthDate      string `json:"birthDate"`
	SeparationDate string `json:"separationDate"`
	EstrusDate     string `json:"estrusDate"`
}

// Draft returns the editable part of the record.
func (r Record) Draft() Draft {
	return Draft{
		Name:           r.Name,
		Status:         r.Status,
		Owner:          r.Owner,
		BreedingDate:   r.BreedingDate,
		BirthDate:      r.BirthDate,
		SeparationDate: r.SeparationDate,
		EstrusDate:     r.EstrusDate,
	}
}

// Fields is a partial update. Nil fields are left untouched.
type Fields struct {
	Name           *string `json:"name,omitempty"`
	Status         *string `json:"status,omitempty"`
	Owner          *string `json:"owner,omitempty"`
	BreedingDate   *string `json:"breedingDate,omitempty"`
	BirthDate      *string `json:"birthDate,omitempty"`
	SeparationDate *string `json:"separationDate,omitempty"`
	EstrusDate     *string `json:"estrusDate,omitempty"`
}

// AllFields returns an update setting every editable field from d.
func AllFields(d Draft) Fields {
	return Fields{
		Name:           &d.Name,
		Status:         &d.Status,
		Owner:          &d.Owner,
		BreedingDate:   &d.BreedingDate,
		BirthDate:      &d.BirthDate,
		SeparationDate: &d.SeparationDate,
		EstrusDate:     &d.EstrusDate,
	}
}

// Empty reports whether no field is set.
func (f Fields) Empty() bool {
	return f.Name == nil && f.Status == nil && f.Owner == nil &&
		f.BreedingDate == nil && f.BirthDate == nil &&
		f.SeparationDate == nil && f.EstrusDate == nil
}

// DateField identifies one of the four date fields of a record.
type DateField string

// Date fields.
const (
	FieldBreedingDate   DateField = "breedingDate"
	FieldBirthDate      DateField = "birthDate"
	FieldSeparationDate DateField = "separationDate"
	FieldEstrusDate     DateField = "estrusDate"
)

// DateFields lists the date fields in form order.
func DateFields() []DateField {
	return []DateField{FieldBreedingDate, FieldBirthDate, FieldSeparationDate, FieldEstrusDate}
}

// Valid reports whether f names a known date field.
func (f DateField) Valid() bool {
	switch f {
	case FieldBreedingDate, FieldBirthDate, FieldSeparationDate, FieldEstrusDate:
		return true
	}
	return false
}

// Get returns the value of field f in d.
func (d *Draft) Get(f DateField) string {
	switch f {
	case FieldBreedingDate:
		return d.BreedingDate
	case FieldBirthDate:
		return d.BirthDate
	case FieldSeparationDate:
		return d.SeparationDate
	case FieldEstrusDate:
		return d.EstrusDate
	}
	return ""
}

// Set assigns v to field f in d. Unknown fields are ignored.
func (d *Draft) Set(f DateField, v string) {
	switch f {
	case FieldBreedingDate:
		d.BreedingDate = v
	case FieldBirthDate:
		d.BirthDate = v
	case FieldSeparationDate:
		d.SeparationDate = v
	case FieldEstrusDate:
		d.EstrusDate = v
	}
}
