// Package health clasifica el estado de recordatorios de una mascota
// (vacunas y preventivos) en verde / amarillo / rojo.
package health

import (
	"strings"

	"cloud.google.com/go/civil"
)

// DueSoonDays es la ventana (inclusive) para "vence pronto".
const DueSoonDays = 7

type Level string

const (
	Green  Level = "green"
	Yellow Level = "yellow"
	Red    Level = "red"
)

func (l Level) rank() int {
	switch l {
	case Red:
		return 2
	case Yellow:
		return 1
	default:
		return 0
	}
}

// Dated es lo que el evaluador necesita de un registro.
type Dated interface {
	PetRef() string
	Due() *civil.Date
	Label() string
}

// Status es el resultado de Evaluate.
type Status struct {
	Level   Level    `json:"level"`
	Reasons []string `json:"reasons"`
}

// Evaluate recorre vacunas y luego preventivos de la mascota, en el orden
// recibido. Registros sin próxima fecha se ignoran.
//   - due < today                  => vencido (red)
//   - today <= due <= today+7 días => vence pronto (yellow)
func Evaluate[V, P Dated](petRef string, vaccines []V, preventives []P, today civil.Date) Status {
	st := Status{Level: Green, Reasons: []string{}}
	for _, v := range vaccines {
		st.check(petRef, v, today)
	}
	for _, p := range preventives {
		st.check(petRef, p, today)
	}
	return st
}

func (s *Status) check(petRef string, r Dated, today civil.Date) {
	if r.PetRef() != petRef {
		return
	}
	due := r.Due()
	if due == nil {
		return
	}
	switch {
	case due.Before(today):
		s.raise(Red)
		s.Reasons = append(s.Reasons, r.Label()+" overdue")
	case !due.After(today.AddDays(DueSoonDays)):
		s.raise(Yellow)
		s.Reasons = append(s.Reasons, r.Label()+" due soon")
	}
}

// raise nunca baja el nivel.
func (s *Status) raise(l Level) {
	if l.rank() > s.Level.rank() {
		s.Level = l
	}
}

// Headline es la línea corta que muestran las tarjetas: a lo sumo dos motivos.
func (s Status) Headline() string {
	if s.Level == Green || len(s.Reasons) == 0 {
		return "All up to date"
	}
	n := len(s.Reasons)
	if n > 2 {
		n = 2
	}
	return strings.Join(s.Reasons[:n], ", ")
}
