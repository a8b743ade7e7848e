package medications

import (
	"fmt"

	"cloud.google.com/go/civil"

	"petcontrol/internal/errs"
)

// Límites de un curso. MaxDoses acota el producto duración × tomas diarias.
const (
	MaxDosesPerDay  = 10
	MaxDurationDays = 365
	MaxDoses        = 1000
)

// InvalidScheduleError: duración o dosis diarias fuera de [1, Max].
// Se comporta como *errs.ValidationError para el mapeo HTTP.
type InvalidScheduleError struct {
	Field string
	Value int
	Max   int
}

func (e *InvalidScheduleError) Error() string {
	return "invalid schedule: " + e.message()
}

func (e *InvalidScheduleError) Unwrap() error {
	return &errs.ValidationError{Field: e.Field, Message: e.message()}
}

func (e *InvalidScheduleError) message() string {
	if e.Value < 1 {
		return fmt.Sprintf("%s must be >= 1 (got %d)", e.Field, e.Value)
	}
	return fmt.Sprintf("%s must be <= %d (got %d)", e.Field, e.Max, e.Value)
}

// ValidateSchedule controla rangos antes de multiplicar.
func ValidateSchedule(durationDays, dosesPerDay int) error {
	switch {
	case durationDays < 1 || durationDays > MaxDurationDays:
		return &InvalidScheduleError{Field: "duration_days", Value: durationDays, Max: MaxDurationDays}
	case dosesPerDay < 1 || dosesPerDay > MaxDosesPerDay:
		return &InvalidScheduleError{Field: "doses_per_day", Value: dosesPerDay, Max: MaxDosesPerDay}
	case durationDays*dosesPerDay > MaxDoses:
		return &InvalidScheduleError{Field: "doses", Value: durationDays * dosesPerDay, Max: MaxDoses}
	}
	return nil
}

// Generate expande un curso en durationDays × dosesPerDay tomas.
// La toma i (1-based) vence en start + (i-1)/dosesPerDay días; todas arrancan sin tomar.
func Generate(start civil.Date, durationDays, dosesPerDay int) ([]Dose, error) {
	if err := ValidateSchedule(durationDays, dosesPerDay); err != nil {
		return nil, err
	}

	total := durationDays * dosesPerDay
	out := make([]Dose, total)
	for i := 1; i <= total; i++ {
		out[i-1] = Dose{
			Index:   i,
			DueDate: start.AddDays((i - 1) / dosesPerDay),
		}
	}
	return out, nil
}

func EndDate(start civil.Date, durationDays int) civil.Date {
	return start.AddDays(durationDays)
}

// IsFinished: end_date < today.
func IsFinished(end, today civil.Date) bool {
	return end.Before(today)
}
