package medications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"petcontrol/internal/errs"
	"petcontrol/internal/platform/wire"
	"petcontrol/internal/ports/records"
)

// PetChecker valida que pet_id exista y sea de la cuenta.
type PetChecker interface {
	RequireOwned(ctx context.Context, petID string) error
}

type Service struct {
	store records.Store
	pets  PetChecker
	now   func() time.Time
}

func NewService(store records.Store, pets PetChecker) *Service {
	return &Service{store: store, pets: pets, now: time.Now}
}

type CreateInput struct {
	PetID     string
	Drug      string
	Dosage    string
	Frequency string
	Schedule  string

	DosesPerDay  int
	DurationDays int
	StartDate    string // YYYY-MM-DD
}

// CourseView es un curso con su avance.
type CourseView struct {
	Course
	Finished bool     `json:"finished"`
	Progress Progress `json:"progress"`
}

// Create genera el cronograma, inserta el curso y luego todas las tomas en
// un solo batch. Si el batch falla, el curso se borra.
func (s *Service) Create(ctx context.Context, in CreateInput) (CourseView, error) {
	c, doses, err := in.plan()
	if err != nil {
		return CourseView{}, err
	}
	if err := s.pets.RequireOwned(ctx, c.PetID); err != nil {
		return CourseView{}, err
	}

	row, err := wire.FromStruct(c)
	if err != nil {
		return CourseView{}, err
	}
	saved, err := s.store.Insert(ctx, records.Medications, row)
	if err != nil {
		return CourseView{}, err
	}
	if err := wire.Into(saved, &c); err != nil {
		return CourseView{}, err
	}

	rows := make([]records.Row, 0, len(doses))
	for i := range doses {
		doses[i].CourseID = c.ID
		r, err := wire.FromStruct(doses[i])
		if err != nil {
			return CourseView{}, s.undo(ctx, c.ID, err)
		}
		rows = append(rows, r)
	}
	savedDoses, err := s.store.InsertMany(ctx, records.DoseLog, rows)
	if err != nil {
		return CourseView{}, s.undo(ctx, c.ID, err)
	}
	ds, err := wire.DecodeAll[Dose](savedDoses)
	if err != nil {
		return CourseView{}, err
	}
	return s.view(c, ds), nil
}

func (s *Service) undo(ctx context.Context, courseID string, cause error) error {
	if err := s.store.Delete(ctx, records.Medications, courseID); err != nil {
		return fmt.Errorf("create schedule: %w (course %s left without doses: %v)", cause, courseID, err)
	}
	return fmt.Errorf("create schedule: %w", cause)
}

func (in CreateInput) plan() (Course, []Dose, error) {
	c := Course{
		PetID:        strings.TrimSpace(in.PetID),
		Drug:         strings.TrimSpace(in.Drug),
		Dosage:       strings.TrimSpace(in.Dosage),
		Frequency:    strings.TrimSpace(in.Frequency),
		Schedule:     strings.TrimSpace(in.Schedule),
		DosesPerDay:  in.DosesPerDay,
		DurationDays: in.DurationDays,
	}
	if c.PetID == "" {
		return Course{}, nil, errs.Invalid("pet_id", "pet is required")
	}
	if c.Drug == "" {
		return Course{}, nil, errs.Invalid("drug", "drug is required")
	}
	start, err := wire.DecodeDate(in.StartDate)
	if err != nil {
		return Course{}, nil, errs.Invalid("start_date", "start_date must be YYYY-MM-DD")
	}
	doses, err := Generate(start, c.DurationDays, c.DosesPerDay)
	if err != nil {
		return Course{}, nil, err
	}
	c.StartDate = start
	c.EndDate = EndDate(start, c.DurationDays)
	return c, doses, nil
}

// Overview separa cursos activos y terminados (end_date < today).
type Overview struct {
	Active   []CourseView `json:"active"`
	Finished []CourseView `json:"finished"`
}

func (s *Service) Overview(ctx context.Context, petID string, today civil.Date) (Overview, error) {
	courses, err := s.Courses(ctx, petID)
	if err != nil {
		return Overview{}, err
	}
	doses, err := s.AllDoses(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Summarize(courses, doses, today), nil
}

// Summarize arma el Overview con datos ya cargados.
func Summarize(courses []Course, doses []Dose, today civil.Date) Overview {
	byCourse := make(map[string][]Dose)
	for _, d := range doses {
		byCourse[d.CourseID] = append(byCourse[d.CourseID], d)
	}
	ov := Overview{Active: []CourseView{}, Finished: []CourseView{}}
	for _, c := range courses {
		v := CourseView{Course: c, Finished: c.Finished(today), Progress: ProgressOf(byCourse[c.ID])}
		if v.Finished {
			ov.Finished = append(ov.Finished, v)
		} else {
			ov.Active = append(ov.Active, v)
		}
	}
	return ov
}

func (s *Service) view(c Course, doses []Dose) CourseView {
	return CourseView{Course: c, Finished: c.Finished(civil.DateOf(s.now())), Progress: ProgressOf(doses)}
}

func (s *Service) Courses(ctx context.Context, petID string) ([]Course, error) {
	var filters []records.Filter
	if petID = strings.TrimSpace(petID); petID != "" {
		filters = append(filters, records.Eq("pet_id", petID))
	}
	rows, err := s.store.List(ctx, records.Medications, filters...)
	if err != nil {
		return nil, err
	}
	return wire.DecodeAll[Course](rows)
}

func (s *Service) AllDoses(ctx context.Context) ([]Dose, error) {
	rows, err := s.store.List(ctx, records.DoseLog)
	if err != nil {
		return nil, err
	}
	return wire.DecodeAll[Dose](rows)
}

func (s *Service) Doses(ctx context.Context, courseID string) ([]Dose, error) {
	rows, err := s.store.List(ctx, records.DoseLog, records.Eq("course_id", courseID))
	if err != nil {
		return nil, err
	}
	return wire.DecodeAll[Dose](rows)
}

func (s *Service) SetDoseDone(ctx context.Context, id string, done bool) error {
	return s.store.Patch(ctx, records.DoseLog, id, records.Row{"done": done})
}

func (s *Service) SetCourseDone(ctx context.Context, id string, done bool) error {
	return s.store.Patch(ctx, records.Medications, id, records.Row{"done": done})
}

// Delete borra primero las tomas y después el curso.
func (s *Service) Delete(ctx context.Context, id string) error {
	doses, err := s.Doses(ctx, id)
	if err != nil {
		return err
	}
	for _, d := range doses {
		if err := s.store.Delete(ctx, records.DoseLog, d.ID); err != nil && !errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("delete dose %s: %w", d.ID, err)
		}
	}
	return s.store.Delete(ctx, records.Medications, id)
}
