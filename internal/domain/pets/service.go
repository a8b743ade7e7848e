package pets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"petcontrol/internal/errs"
	"petcontrol/internal/platform/wire"
	"petcontrol/internal/ports/records"
)

// Quota resuelve el plan de la cuenta de la sesión y su cupo de mascotas.
type Quota interface {
	PetQuota(ctx context.Context) (plan string, limit int, err error)
}

type Service struct {
	store records.Store
	quota Quota
	now   func() time.Time
}

func NewService(store records.Store, quota Quota) *Service {
	return &Service{
		store: store,
		quota: quota,
		now:   time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	rows, err := s.store.List(ctx, records.Pets)
	if err != nil {
		return nil, err
	}
	return Decode(rows)
}

func (s *Service) Get(ctx context.Context, id string) (Pet, error) {
	rows, err := s.store.List(ctx, records.Pets, records.Eq("id", id))
	if err != nil {
		return Pet{}, err
	}
	if len(rows) == 0 {
		return Pet{}, fmt.Errorf("pet %s: %w", id, errs.ErrNotFound)
	}
	var p Pet
	if err := wire.Into(rows[0], &p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type CreateInput struct {
	Name    string
	Species string
	Breed   string
	Color   string
	Weight  float64
	Notes   string

	BirthDate string // YYYY-MM-DD opcional
}

// Create valida, controla el cupo del plan y persiste.
func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	p, err := in.toPet()
	if err != nil {
		return Pet{}, err
	}

	if s.quota != nil {
		plan, limit, err := s.quota.PetQuota(ctx)
		if err != nil {
			return Pet{}, err
		}
		current, err := s.store.List(ctx, records.Pets)
		if err != nil {
			return Pet{}, err
		}
		if len(current) >= limit {
			return Pet{}, LimitReached(plan, limit)
		}
	}

	row, err := wire.FromStruct(p)
	if err != nil {
		return Pet{}, err
	}
	saved, err := s.store.Insert(ctx, records.Pets, row)
	if err != nil {
		return Pet{}, err
	}
	var out Pet
	if err := wire.Into(saved, &out); err != nil {
		return Pet{}, err
	}
	return out, nil
}

// LimitReached arma el error de cupo con el mensaje de upgrade.
func LimitReached(plan string, limit int) error {
	noun := "pet"
	if limit != 1 {
		noun = "pets"
	}
	return &errs.LimitError{
		Plan:    plan,
		Limit:   limit,
		Message: fmt.Sprintf("your %s plan allows up to %d %s, upgrade to register more", plan, limit, noun),
	}
}

func (in CreateInput) toPet() (Pet, error) {
	p := Pet{
		Name:    strings.TrimSpace(in.Name),
		Species: Species(strings.ToLower(strings.TrimSpace(in.Species))),
		Breed:   strings.TrimSpace(in.Breed),
		Color:   strings.TrimSpace(in.Color),
		Weight:  in.Weight,
		Notes:   strings.TrimSpace(in.Notes),
	}
	if p.Name == "" {
		return Pet{}, errs.Invalid("name", "name is required")
	}
	if !p.Species.Valid() {
		return Pet{}, errs.Invalid("species", "species must be one of dog, cat, bird, other")
	}
	if p.Weight < 0 {
		return Pet{}, errs.Invalid("weight", "weight must be >= 0")
	}
	if strings.TrimSpace(in.BirthDate) != "" {
		d, err := wire.DecodeDate(in.BirthDate)
		if err != nil {
			return Pet{}, errs.Invalid("birth_date", "birth_date must be YYYY-MM-DD")
		}
		p.BirthDate = &d
	}
	return p, nil
}

// Decode convierte filas del store en Pets.
func Decode(rows []records.Row) ([]Pet, error) {
	return wire.DecodeAll[Pet](rows)
}
