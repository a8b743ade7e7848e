// Package app mantiene el estado explícito de una sesión: perfil, cupo y
// todas las colecciones cargadas. Las acciones reciben el State y devuelven
// un Outcome que indica si hay que recargar.
package app

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"golang.org/x/sync/errgroup"

	"petcontrol/internal/domain/accounts"
	"petcontrol/internal/domain/care"
	"petcontrol/internal/domain/medications"
	"petcontrol/internal/domain/pets"
	"petcontrol/internal/errs"
	"petcontrol/internal/platform/wire"
	"petcontrol/internal/ports/auth"
	"petcontrol/internal/ports/plans"
	"petcontrol/internal/ports/records"
)

// Outcome le dice al caller qué hacer después de una acción.
type Outcome int

const (
	Unchanged Outcome = iota
	ReloadRequired
)

func (o Outcome) String() string {
	if o == ReloadRequired {
		return "reload_required"
	}
	return "unchanged"
}

// Authorizer resuelve y valida el perfil de la sesión.
type Authorizer interface {
	Authorize(ctx context.Context) (accounts.Profile, error)
}

// Loader arma States para la sesión que viene en el contexto.
type Loader struct {
	store records.Store
	auth  Authorizer
	plans plans.Resolver
	now   func() time.Time
}

func NewLoader(store records.Store, authz Authorizer, resolver plans.Resolver) *Loader {
	return &Loader{store: store, auth: authz, plans: resolver, now: time.Now}
}

// State es todo lo que la sesión tiene cargado. No es compartido entre requests.
type State struct {
	Claims   auth.Claims
	Profile  accounts.Profile
	PetLimit int

	Pets         []pets.Pet
	Vaccines     []care.Vaccine
	Preventives  []care.Preventive
	FeedingPlans []care.FeedingPlan
	VetVisits    []care.VetVisit
	Weights      []care.WeightSample
	Notes        []care.Note
	Courses      []medications.Course
	Doses        []medications.Dose

	store records.Store
}

// Load valida la sesión y trae todas las colecciones.
func (l *Loader) Load(ctx context.Context) (*State, error) {
	claims, ok := auth.ClaimsFrom(ctx)
	if !ok {
		return nil, errs.ErrUnauthorized
	}
	profile, err := l.auth.Authorize(ctx)
	if err != nil {
		return nil, err
	}
	limit, err := l.plans.PetLimit(ctx, profile.Plan)
	if err != nil {
		return nil, err
	}

	st := &State{Claims: claims, Profile: profile, PetLimit: limit, store: l.store}
	if err := st.Reload(ctx); err != nil {
		return nil, err
	}
	return st, nil
}

// Today es la fecha calendario local del Loader.
func (l *Loader) Today() civil.Date {
	return civil.DateOf(l.now())
}

// Reload vuelve a traer todas las colecciones en paralelo. Si alguna falla
// el State queda como estaba.
func (s *State) Reload(ctx context.Context) error {
	var next State
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		next.Pets, err = fetch[pets.Pet](gctx, s.store, records.Pets)
		return
	})
	g.Go(func() (err error) {
		next.Vaccines, err = fetch[care.Vaccine](gctx, s.store, records.Vaccines)
		return
	})
	g.Go(func() (err error) {
		next.Preventives, err = fetch[care.Preventive](gctx, s.store, records.Preventives)
		return
	})
	g.Go(func() (err error) {
		next.FeedingPlans, err = fetch[care.FeedingPlan](gctx, s.store, records.FeedingPlans)
		return
	})
	g.Go(func() (err error) {
		next.VetVisits, err = fetch[care.VetVisit](gctx, s.store, records.VetVisits)
		return
	})
	g.Go(func() (err error) {
		next.Weights, err = fetch[care.WeightSample](gctx, s.store, records.WeightSamples)
		return
	})
	g.Go(func() (err error) {
		next.Notes, err = fetch[care.Note](gctx, s.store, records.Notes)
		return
	})
	g.Go(func() (err error) {
		next.Courses, err = fetch[medications.Course](gctx, s.store, records.Medications)
		return
	})
	g.Go(func() (err error) {
		next.Doses, err = fetch[medications.Dose](gctx, s.store, records.DoseLog)
		return
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}

	s.Pets, s.Vaccines, s.Preventives = next.Pets, next.Vaccines, next.Preventives
	s.FeedingPlans, s.VetVisits, s.Weights = next.FeedingPlans, next.VetVisits, next.Weights
	s.Notes, s.Courses, s.Doses = next.Notes, next.Courses, next.Doses
	return nil
}

// ReloadCollection refresca una sola colección.
func (s *State) ReloadCollection(ctx context.Context, c records.Collection) error {
	var err error
	switch c {
	case records.Pets:
		err = refetch(ctx, s.store, c, &s.Pets)
	case records.Vaccines:
		err = refetch(ctx, s.store, c, &s.Vaccines)
	case records.Preventives:
		err = refetch(ctx, s.store, c, &s.Preventives)
	case records.FeedingPlans:
		err = refetch(ctx, s.store, c, &s.FeedingPlans)
	case records.VetVisits:
		err = refetch(ctx, s.store, c, &s.VetVisits)
	case records.WeightSamples:
		err = refetch(ctx, s.store, c, &s.Weights)
	case records.Notes:
		err = refetch(ctx, s.store, c, &s.Notes)
	case records.Medications:
		err = refetch(ctx, s.store, c, &s.Courses)
	case records.DoseLog:
		err = refetch(ctx, s.store, c, &s.Doses)
	default:
		return fmt.Errorf("reload: unknown collection %q", c)
	}
	return err
}

func fetch[T any](ctx context.Context, store records.Store, c records.Collection) ([]T, error) {
	rows, err := store.List(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c, err)
	}
	out, err := wire.DecodeAll[T](rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c, err)
	}
	return out, nil
}

func refetch[T any](ctx context.Context, store records.Store, c records.Collection, dst *[]T) error {
	out, err := fetch[T](ctx, store, c)
	if err != nil {
		return err
	}
	*dst = out
	return nil
}
