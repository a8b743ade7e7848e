package care

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"

	"petcontrol/internal/adapters/storage/memory"
	"petcontrol/internal/errs"
	"petcontrol/internal/ports/auth"
	"petcontrol/internal/ports/records"
)

type knownPets map[string]bool

func (k knownPets) RequireOwned(_ context.Context, petID string) error {
	if !k[petID] {
		return errs.Invalid("pet_id", "pet "+petID+" not found")
	}
	return nil
}

func userCtx() context.Context {
	return auth.WithClaims(context.Background(), auth.Claims{UserID: "u1"})
}

func date(y int, m time.Month, d int) civil.Date { return civil.Date{Year: y, Month: m, Day: d} }

func ptr[T any](v T) *T { return &v }

func TestBook_AddListSetDoneDelete(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, knownPets{"p1": true})
	ctx := userCtx()

	v, err := svc.Vaccines.Add(ctx, Vaccine{
		PetID: "p1", Name: "V10", AppliedOn: date(2024, 1, 10),
		NextDue: ptr(date(2025, 1, 10)), ID: "client-id", UserID: "someone-else",
	})
	require.NoError(t, err)
	require.NotEqual(t, "client-id", v.ID)
	require.Equal(t, "u1", v.UserID)
	require.Equal(t, date(2025, 1, 10), *v.NextDue)
	require.False(t, v.Done)

	require.NoError(t, svc.Vaccines.SetDone(ctx, v.ID, true))
	list, err := svc.Vaccines.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].Done)

	require.NoError(t, svc.Vaccines.SetDone(ctx, v.ID, false))
	list, _ = svc.Vaccines.List(ctx, "")
	require.False(t, list[0].Done)

	require.NoError(t, svc.Vaccines.Delete(ctx, v.ID))
	require.Equal(t, 0, store.Count(records.Vaccines))
	require.ErrorIs(t, svc.Vaccines.Delete(ctx, v.ID), errs.ErrNotFound)
}

func TestBook_ValidationBeforeNetwork(t *testing.T) {
	store := memory.NewStore()
	store.FailNext(records.Notes, errors.New("must not be called"))
	svc := NewService(store, knownPets{"p1": true})
	ctx := userCtx()

	_, err := svc.Notes.Add(ctx, Note{PetID: "p1", Body: "x"})
	var ve *errs.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Equal(t, "title", ve.Field)

	_, err = svc.Notes.Add(ctx, Note{PetID: "ghost", Title: "t", Body: "b"})
	require.True(t, errors.As(err, &ve))
	require.Equal(t, "pet_id", ve.Field)

	_, err = svc.FeedingPlans.Add(ctx, FeedingPlan{PetID: "p1", FoodType: "pizza", GramsPerMeal: 10, MealsPerDay: 2})
	require.True(t, errors.As(err, &ve))

	// notas no tienen flag de completado
	require.True(t, errors.As(svc.Notes.SetDone(ctx, "x", true), &ve))
}

func TestBook_UpstreamFailureLeavesNothing(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, knownPets{"p1": true})
	store.FailNext(records.Vaccines, errs.ErrUpstream)

	_, err := svc.Vaccines.Add(userCtx(), Vaccine{PetID: "p1", Name: "V10", AppliedOn: date(2024, 1, 1)})
	require.ErrorIs(t, err, errs.ErrUpstream)
	require.Equal(t, 0, store.Count(records.Vaccines))
}

func TestSortOrders(t *testing.T) {
	visits := []VetVisit{
		{Vet: "a", VisitDate: date(2024, 1, 1)},
		{Vet: "b", VisitDate: date(2024, 3, 1)},
		{Vet: "c", VisitDate: date(2024, 2, 1)},
	}
	SortVisits(visits)
	require.Equal(t, []string{"b", "c", "a"}, []string{visits[0].Vet, visits[1].Vet, visits[2].Vet})

	prev := []Preventive{
		{Product: "none"},
		{Product: "late", NextDue: ptr(date(2024, 5, 1))},
		{Product: "soon", NextDue: ptr(date(2024, 4, 1))},
	}
	SortPreventives(prev)
	require.Equal(t, []string{"soon", "late", "none"}, []string{prev[0].Product, prev[1].Product, prev[2].Product})

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	notes := []Note{{Title: "old", CreatedAt: &t1}, {Title: "new", CreatedAt: &t2}}
	SortNotes(notes)
	require.Equal(t, "new", notes[0].Title)
}

func TestSortNotes_MissingTimestampLast(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	notes := []Note{
		{Title: "a", CreatedAt: &t1},
		{Title: "undated-1"},
		{Title: "c", CreatedAt: &t3},
		{Title: "undated-2"},
		{Title: "b", CreatedAt: &t2},
	}
	SortNotes(notes)

	var got []string
	for _, n := range notes {
		got = append(got, n.Title)
	}
	require.Equal(t, []string{"c", "b", "a", "undated-1", "undated-2"}, got)
}

func TestTrend(t *testing.T) {
	samples := []WeightSample{
		{WeighedOn: date(2024, 1, 1), Weight: 10},
		{WeighedOn: date(2024, 3, 1), Weight: 11.2},
		{WeighedOn: date(2024, 2, 1), Weight: 10.5},
	}
	SortWeights(samples)
	pts := Trend(samples)

	require.Len(t, pts, 3)
	require.Equal(t, 11.2, pts[0].Weight)
	require.InDelta(t, 0.7, *pts[0].Delta, 1e-9)
	require.InDelta(t, 0.5, *pts[1].Delta, 1e-9)
	require.Nil(t, pts[2].Delta)
}

func TestPreventiveLabelAndFeeding(t *testing.T) {
	require.Equal(t, "Dewormer", Preventive{Category: CategoryDewormer}.Label())
	require.Equal(t, "Vaccine V10", Vaccine{Name: "V10"}.Label())
	require.Equal(t, 300, FeedingPlan{GramsPerMeal: 150, MealsPerDay: 2}.DailyGrams())
}
