package pets

import (
	"time"

	"cloud.google.com/go/civil"
)

// Species define las especies soportadas.
// @Enum dog, cat, bird, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesBird  Species = "bird"
	SpeciesOther Species = "other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesOther:
		return true
	}
	return false
}

// Pet representa el perfil básico de una mascota registrada en el sistema.
type Pet struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id,omitempty"`

	Name    string  `json:"name"`
	Species Species `json:"species"`
	Breed   string  `json:"breed,omitempty"`
	Color   string  `json:"color,omitempty"`

	BirthDate *civil.Date `json:"birth_date,omitempty"`
	Weight    float64     `json:"weight,omitempty"` // kg

	Notes string `json:"notes,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// AgeYears devuelve la edad en años cumplidos, o -1 si no hay fecha.
func (p Pet) AgeYears(today civil.Date) int {
	if p.BirthDate == nil {
		return -1
	}
	b := *p.BirthDate
	age := today.Year - b.Year
	if today.Month < b.Month || (today.Month == b.Month && today.Day < b.Day) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
