package app

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/civil"

	"petcontrol/internal/domain/accounts"
	"petcontrol/internal/domain/health"
	"petcontrol/internal/domain/pets"
	"petcontrol/internal/errs"
	"petcontrol/internal/ports/records"
)

// DeletePet borra la mascota y todo lo que cuelga de ella (las tomas de
// cada curso incluidas). El store no hace cascada; la hacemos acá.
func (s *State) DeletePet(ctx context.Context, petID string) (Outcome, error) {
	if _, ok := s.pet(petID); !ok {
		return Unchanged, fmt.Errorf("pet %s: %w", petID, errs.ErrNotFound)
	}

	var targets []target
	for _, v := range s.Vaccines {
		if v.PetID == petID {
			targets = append(targets, target{records.Vaccines, v.ID})
		}
	}
	for _, p := range s.Preventives {
		if p.PetID == petID {
			targets = append(targets, target{records.Preventives, p.ID})
		}
	}
	for _, f := range s.FeedingPlans {
		if f.PetID == petID {
			targets = append(targets, target{records.FeedingPlans, f.ID})
		}
	}
	for _, v := range s.VetVisits {
		if v.PetID == petID {
			targets = append(targets, target{records.VetVisits, v.ID})
		}
	}
	for _, w := range s.Weights {
		if w.PetID == petID {
			targets = append(targets, target{records.WeightSamples, w.ID})
		}
	}
	for _, n := range s.Notes {
		if n.PetID == petID {
			targets = append(targets, target{records.Notes, n.ID})
		}
	}
	for _, c := range s.Courses {
		if c.PetID != petID {
			continue
		}
		for _, d := range s.Doses {
			if d.CourseID == c.ID {
				targets = append(targets, target{records.DoseLog, d.ID})
			}
		}
		targets = append(targets, target{records.Medications, c.ID})
	}
	targets = append(targets, target{records.Pets, petID})

	for i, t := range targets {
		if err := s.store.Delete(ctx, t.coll, t.id); err != nil && !errors.Is(err, errs.ErrNotFound) {
			if i == 0 {
				return Unchanged, err
			}
			// algo ya se borró: el caller tiene que recargar
			return ReloadRequired, fmt.Errorf("delete pet %s: %s %s: %w", petID, t.coll, t.id, err)
		}
	}
	return ReloadRequired, nil
}

type target struct {
	coll records.Collection
	id   string
}

// ClearAll borra todas las mascotas de la cuenta con su cascada.
func (s *State) ClearAll(ctx context.Context) (Outcome, error) {
	out := Unchanged
	for _, p := range append([]pets.Pet(nil), s.Pets...) {
		o, err := s.DeletePet(ctx, p.ID)
		if o == ReloadRequired {
			out = ReloadRequired
		}
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// PetStatus evalúa vacunas y preventivos de la mascota.
func (s *State) PetStatus(petID string, today civil.Date) (health.Status, error) {
	if _, ok := s.pet(petID); !ok {
		return health.Status{}, fmt.Errorf("pet %s: %w", petID, errs.ErrNotFound)
	}
	return health.Evaluate(petID, s.Vaccines, s.Preventives, today), nil
}

// Usage es el consumo del plan actual.
func (s *State) Usage() accounts.PlanUsage {
	return accounts.Usage(s.Profile.Plan, s.PetLimit, len(s.Pets))
}

// PetCard es la tarjeta del dashboard.
type PetCard struct {
	Pet      pets.Pet      `json:"pet"`
	Age      *int          `json:"age_years,omitempty"`
	Status   health.Status `json:"status"`
	Headline string        `json:"headline"`

	ActiveCourses int `json:"active_courses"`
}

type Dashboard struct {
	Usage accounts.PlanUsage `json:"usage"`
	Cards []PetCard          `json:"pets"`
}

func (s *State) Dashboard(today civil.Date) Dashboard {
	d := Dashboard{Usage: s.Usage(), Cards: make([]PetCard, 0, len(s.Pets))}
	for _, p := range s.Pets {
		st := health.Evaluate(p.ID, s.Vaccines, s.Preventives, today)
		card := PetCard{Pet: p, Status: st, Headline: st.Headline()}
		if age := p.AgeYears(today); age >= 0 {
			card.Age = &age
		}
		for _, c := range s.Courses {
			if c.PetID == p.ID && !c.Finished(today) {
				card.ActiveCourses++
			}
		}
		d.Cards = append(d.Cards, card)
	}
	return d
}

func (s *State) pet(id string) (pets.Pet, bool) {
	for _, p := range s.Pets {
		if p.ID == id {
			return p, true
		}
	}
	return pets.Pet{}, false
}
