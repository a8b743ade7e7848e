// Package care agrupa los registros simples por mascota: vacunas,
// preventivos, alimentación, consultas, peso y notas.
package care

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/civil"

	"petcontrol/internal/errs"
	"petcontrol/internal/platform/wire"
	"petcontrol/internal/ports/records"
)

// Entry es cualquier registro que cuelga de una mascota.
type Entry interface {
	PetRef() string
	Validate() error
}

// PetChecker valida que pet_id exista y sea de la cuenta.
type PetChecker interface {
	RequireOwned(ctx context.Context, petID string) error
}

// Book es el CRUD de una colección tipada.
type Book[T Entry] struct {
	coll     records.Collection
	store    records.Store
	pets     PetChecker
	hasDone  bool
	sortFunc func([]T)
}

func newBook[T Entry](store records.Store, pets PetChecker, coll records.Collection, hasDone bool, sortFunc func([]T)) *Book[T] {
	return &Book[T]{coll: coll, store: store, pets: pets, hasDone: hasDone, sortFunc: sortFunc}
}

func (b *Book[T]) Collection() records.Collection { return b.coll }

// HasDone indica si la colección tiene flag de completado.
func (b *Book[T]) HasDone() bool { return b.hasDone }

// List devuelve los registros (de una mascota si petID != "") en orden de display.
func (b *Book[T]) List(ctx context.Context, petID string) ([]T, error) {
	var filters []records.Filter
	if petID = strings.TrimSpace(petID); petID != "" {
		filters = append(filters, records.Eq("pet_id", petID))
	}
	rows, err := b.store.List(ctx, b.coll, filters...)
	if err != nil {
		return nil, err
	}
	out, err := wire.DecodeAll[T](rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.coll, err)
	}
	if b.sortFunc != nil {
		b.sortFunc(out)
	}
	return out, nil
}

// Add valida antes de tocar la red, chequea la mascota y persiste.
func (b *Book[T]) Add(ctx context.Context, in T) (T, error) {
	var zero T
	if err := in.Validate(); err != nil {
		return zero, err
	}
	if err := b.pets.RequireOwned(ctx, in.PetRef()); err != nil {
		return zero, err
	}

	row, err := wire.FromStruct(in)
	if err != nil {
		return zero, err
	}
	delete(row, "id")
	delete(row, "created_at")
	delete(row, records.OwnerField)

	saved, err := b.store.Insert(ctx, b.coll, row)
	if err != nil {
		return zero, err
	}
	var out T
	if err := wire.Into(saved, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// SetDone cambia el flag; cualquier valor vale en cualquier momento.
func (b *Book[T]) SetDone(ctx context.Context, id string, done bool) error {
	if !b.hasDone {
		return errs.Invalid("done", fmt.Sprintf("%s have no completion flag", b.coll))
	}
	return b.store.Patch(ctx, b.coll, id, records.Row{"done": done})
}

func (b *Book[T]) Delete(ctx context.Context, id string) error {
	return b.store.Delete(ctx, b.coll, id)
}

// Service expone un Book por colección.
type Service struct {
	Vaccines     *Book[Vaccine]
	Preventives  *Book[Preventive]
	FeedingPlans *Book[FeedingPlan]
	VetVisits    *Book[VetVisit]
	Weights      *Book[WeightSample]
	Notes        *Book[Note]
}

func NewService(store records.Store, pets PetChecker) *Service {
	return &Service{
		Vaccines:     newBook[Vaccine](store, pets, records.Vaccines, true, nil),
		Preventives:  newBook(store, pets, records.Preventives, true, SortPreventives),
		FeedingPlans: newBook[FeedingPlan](store, pets, records.FeedingPlans, true, nil),
		VetVisits:    newBook(store, pets, records.VetVisits, false, SortVisits),
		Weights:      newBook(store, pets, records.WeightSamples, false, SortWeights),
		Notes:        newBook(store, pets, records.Notes, false, SortNotes),
	}
}

// SortVisits: más reciente primero.
func SortVisits(v []VetVisit) {
	slices.SortStableFunc(v, func(a, b VetVisit) int { return compareDates(b.VisitDate, a.VisitDate) })
}

// SortPreventives: próximo vencimiento primero, sin fecha al final.
func SortPreventives(p []Preventive) {
	slices.SortStableFunc(p, func(a, b Preventive) int {
		switch {
		case a.NextDue == nil && b.NextDue == nil:
			return 0
		case a.NextDue == nil:
			return 1
		case b.NextDue == nil:
			return -1
		}
		return compareDates(*a.NextDue, *b.NextDue)
	})
}

// SortWeights: pesaje más reciente primero.
func SortWeights(w []WeightSample) {
	slices.SortStableFunc(w, func(a, b WeightSample) int { return compareDates(b.WeighedOn, a.WeighedOn) })
}

// SortNotes: creación más reciente primero, sin timestamp al final.
func SortNotes(n []Note) {
	slices.SortStableFunc(n, func(a, b Note) int {
		switch {
		case a.CreatedAt == nil && b.CreatedAt == nil:
			return 0
		case a.CreatedAt == nil:
			return 1
		case b.CreatedAt == nil:
			return -1
		}
		return b.CreatedAt.Compare(*a.CreatedAt)
	})
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
