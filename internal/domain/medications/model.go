package medications

import (
	"time"

	"cloud.google.com/go/civil"
)

// Course es un tratamiento con duración y dosis diarias fijas.
// EndDate = StartDate + DurationDays (no se edita).
type Course struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id,omitempty"`
	PetID  string `json:"pet_id"`

	Drug      string `json:"drug"`
	Dosage    string `json:"dosage,omitempty"`    // "1 comprimido", "5 ml"
	Frequency string `json:"frequency,omitempty"` // "cada 12h"
	Schedule  string `json:"schedule,omitempty"`  // horarios en texto libre

	DosesPerDay  int        `json:"doses_per_day"`
	DurationDays int        `json:"duration_days"`
	StartDate    civil.Date `json:"start_date"`
	EndDate      civil.Date `json:"end_date"`

	Done bool `json:"done"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Finished es una comparación pura; no se persiste.
func (c Course) Finished(today civil.Date) bool {
	return IsFinished(c.EndDate, today)
}

// Dose es una toma individual dentro de un Course.
type Dose struct {
	ID       string `json:"id,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	CourseID string `json:"course_id"`

	Index   int        `json:"index"` // 1-based
	DueDate civil.Date `json:"due_date"`
	Done    bool       `json:"done"`
}
