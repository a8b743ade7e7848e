package care

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"petcontrol/internal/errs"
)

// Vaccine es una aplicación de vacuna. NextDue nil => sin refuerzo programado.
type Vaccine struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id,omitempty"`
	PetID  string `json:"pet_id"`

	Name      string      `json:"name"`
	Lot       string      `json:"lot,omitempty"`
	Vet       string      `json:"vet,omitempty"`
	AppliedOn civil.Date  `json:"applied_on"`
	NextDue   *civil.Date `json:"next_due,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	Done      bool        `json:"done"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (v Vaccine) PetRef() string { return v.PetID }
func (v Vaccine) Due() *civil.Date { return v.NextDue }
func (v Vaccine) Label() string { return "Vaccine " + v.Name }

func (v Vaccine) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return errs.Invalid("name", "vaccine name is required")
	}
	if !v.AppliedOn.IsValid() {
		return errs.Invalid("applied_on", "applied_on must be YYYY-MM-DD")
	}
	return nil
}

// PreventiveCategory
// @Enum flea, dewormer, combo
type PreventiveCategory string

const (
	CategoryFlea     PreventiveCategory = "flea"
	CategoryDewormer PreventiveCategory = "dewormer"
	CategoryCombo    PreventiveCategory = "combo"
)

func (c PreventiveCategory) title() string {
	switch c {
	case CategoryFlea:
		return "Flea/tick treatment"
	case CategoryDewormer:
		return "Dewormer"
	case CategoryCombo:
		return "Flea/tick + dewormer"
	}
	return string(c)
}

type Preventive struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id,omitempty"`
	PetID  string `json:"pet_id"`

	Product   string             `json:"product"`
	Category  PreventiveCategory `json:"category"`
	AppliedOn civil.Date         `json:"applied_on"`
	NextDue   *civil.Date        `json:"next_due,omitempty"`
	Done      bool               `json:"done"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (p Preventive) PetRef() string { return p.PetID }
func (p Preventive) Due() *civil.Date { return p.NextDue }
func (p Preventive) Label() string { return p.Category.title() }

func (p Preventive) Validate() error {
	if strings.TrimSpace(p.Product) == "" {
		return errs.Invalid("product", "product is required")
	}
	switch p.Category {
	case CategoryFlea, CategoryDewormer, CategoryCombo:
	default:
		return errs.Invalid("category", "category must be one of flea, dewormer, combo")
	}
	if !p.AppliedOn.IsValid() {
		return errs.Invalid("applied_on", "applied_on must be YYYY-MM-DD")
	}
	return nil
}

// FoodType
// @Enum kibble, wet, natural, mixed
type FoodType string

const (
	FoodKibble  FoodType = "kibble"
	FoodWet     FoodType = "wet"
	FoodNatural FoodType = "natural"
	FoodMixed   FoodType = "mixed"
)

type FeedingPlan struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id,omitempty"`
	PetID  string `json:"pet_id"`

	FoodType     FoodType `json:"food_type"`
	Brand        string   `json:"brand,omitempty"`
	GramsPerMeal int      `json:"grams_per_meal"`
	MealsPerDay  int      `json:"meals_per_day"`
	Times        string   `json:"times,omitempty"` // "08:00, 18:00"
	Notes        string   `json:"notes,omitempty"`
	Done         bool     `json:"done"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (f FeedingPlan) PetRef() string { return f.PetID }

// DailyGrams total por día.
func (f FeedingPlan) DailyGrams() int { return f.GramsPerMeal * f.MealsPerDay }

func (f FeedingPlan) Validate() error {
	switch f.FoodType {
	case FoodKibble, FoodWet, FoodNatural, FoodMixed:
	default:
		return errs.Invalid("food_type", "food_type must be one of kibble, wet, natural, mixed")
	}
	if f.GramsPerMeal <= 0 {
		return errs.Invalid("grams_per_meal", "grams_per_meal must be > 0")
	}
	if f.MealsPerDay < 1 {
		return errs.Invalid("meals_per_day", "meals_per_day must be >= 1")
	}
	return nil
}

// VisitReason
// @Enum routine, emergency, follow_up, surgery, exam
type VisitReason string

const (
	ReasonRoutine   VisitReason = "routine"
	ReasonEmergency VisitReason = "emergency"
	ReasonFollowUp  VisitReason = "follow_up"
	ReasonSurgery   VisitReason = "surgery"
	ReasonExam      VisitReason = "exam"
)

type VetVisit struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id,omitempty"`
	PetID  string `json:"pet_id"`

	Vet           string      `json:"vet"`
	Reason        VisitReason `json:"reason"`
	VisitDate     civil.Date  `json:"visit_date"`
	Diagnosis     string      `json:"diagnosis,omitempty"`
	Prescriptions string      `json:"prescriptions,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (v VetVisit) PetRef() string { return v.PetID }

func (v VetVisit) Validate() error {
	if strings.TrimSpace(v.Vet) == "" {
		return errs.Invalid("vet", "vet is required")
	}
	switch v.Reason {
	case ReasonRoutine, ReasonEmergency, ReasonFollowUp, ReasonSurgery, ReasonExam:
	default:
		return errs.Invalid("reason", "reason must be one of routine, emergency, follow_up, surgery, exam")
	}
	if !v.VisitDate.IsValid() {
		return errs.Invalid("visit_date", "visit_date must be YYYY-MM-DD")
	}
	return nil
}

type WeightSample struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id,omitempty"`
	PetID  string `json:"pet_id"`

	WeighedOn civil.Date `json:"weighed_on"`
	Weight    float64    `json:"weight"` // kg

	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (w WeightSample) PetRef() string { return w.PetID }

func (w WeightSample) Validate() error {
	if w.Weight <= 0 {
		return errs.Invalid("weight", "weight must be > 0")
	}
	if !w.WeighedOn.IsValid() {
		return errs.Invalid("weighed_on", "weighed_on must be YYYY-MM-DD")
	}
	return nil
}

type Note struct {
	ID     string `json:"id,omitempty"`
	UserID string `json:"user_id,omitempty"`
	PetID  string `json:"pet_id"`

	Title string `json:"title"`
	Body  string `json:"body"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (n Note) PetRef() string { return n.PetID }

func (n Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return errs.Invalid("title", "title is required")
	}
	if strings.TrimSpace(n.Body) == "" {
		return errs.Invalid("body", "body is required")
	}
	return nil
}
