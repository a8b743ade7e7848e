package medications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"petcontrol/internal/adapters/storage/memory"
	"petcontrol/internal/errs"
	"petcontrol/internal/ports/auth"
	"petcontrol/internal/ports/records"
)

type anyPet struct{}

func (anyPet) RequireOwned(_ context.Context, petID string) error {
	if petID == "ghost" {
		return errs.Invalid("pet_id", "pet ghost not found")
	}
	return nil
}

func userCtx() context.Context {
	return auth.WithClaims(context.Background(), auth.Claims{UserID: "u1"})
}

func newService(store *memory.Store) *Service {
	s := NewService(store, anyPet{})
	s.now = func() time.Time { return time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestService_CreateGeneratesDoses(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := userCtx()

	v, err := svc.Create(ctx, CreateInput{
		PetID: "p1", Drug: "Amoxicilina", Dosage: "1 comprimido",
		DosesPerDay: 2, DurationDays: 5, StartDate: "2024-01-01",
	})
	require.NoError(t, err)
	require.NotEmpty(t, v.ID)
	require.Equal(t, date(2024, 1, 6), v.EndDate)
	require.False(t, v.Finished)
	require.Equal(t, 10, v.Progress.Total)
	require.Equal(t, 10, store.Count(records.DoseLog))

	doses, err := svc.Doses(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, doses, 10)
	for _, d := range doses {
		require.Equal(t, v.ID, d.CourseID)
	}
}

func TestService_CreateValidatesBeforeNetwork(t *testing.T) {
	store := memory.NewStore()
	store.FailNext(records.Medications, errors.New("must not be called"))
	svc := newService(store)

	_, err := svc.Create(userCtx(), CreateInput{PetID: "p1", Drug: "X", StartDate: "2024-01-01", DurationDays: 0, DosesPerDay: 1})
	var ise *InvalidScheduleError
	require.True(t, errors.As(err, &ise))
	require.Equal(t, 400, errs.HTTPStatus(err))

	_, err = svc.Create(userCtx(), CreateInput{PetID: "p1", Drug: "X", StartDate: "2024-01-01", DurationDays: 1 << 62, DosesPerDay: 4})
	require.True(t, errors.As(err, &ise))
	require.Equal(t, 0, store.Count(records.Medications))
	require.Equal(t, 0, store.Count(records.DoseLog))

	_, err = svc.Create(userCtx(), CreateInput{PetID: "p1", Drug: "X", StartDate: "01/01/2024", DurationDays: 1, DosesPerDay: 1})
	require.Equal(t, 400, errs.HTTPStatus(err))

	_, err = svc.Create(userCtx(), CreateInput{PetID: "ghost", Drug: "X", StartDate: "2024-01-01", DurationDays: 1, DosesPerDay: 1})
	require.Equal(t, 400, errs.HTTPStatus(err))
}

func TestService_CreateUndoesCourseWhenDosesFail(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	store.FailNext(records.DoseLog, errs.ErrUpstream)

	_, err := svc.Create(userCtx(), CreateInput{PetID: "p1", Drug: "X", StartDate: "2024-01-01", DurationDays: 3, DosesPerDay: 1})
	require.ErrorIs(t, err, errs.ErrUpstream)
	require.Equal(t, 0, store.Count(records.Medications))
	require.Equal(t, 0, store.Count(records.DoseLog))
}

func TestService_OverviewToggleDelete(t *testing.T) {
	store := memory.NewStore()
	svc := newService(store)
	ctx := userCtx()

	old, err := svc.Create(ctx, CreateInput{PetID: "p1", Drug: "Old", StartDate: "2023-12-01", DurationDays: 3, DosesPerDay: 1})
	require.NoError(t, err)
	cur, err := svc.Create(ctx, CreateInput{PetID: "p1", Drug: "Cur", StartDate: "2024-01-02", DurationDays: 2, DosesPerDay: 3})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{PetID: "p2", Drug: "Other", StartDate: "2024-01-02", DurationDays: 1, DosesPerDay: 1})
	require.NoError(t, err)

	doses, _ := svc.Doses(ctx, cur.ID)
	require.NoError(t, svc.SetDoseDone(ctx, doses[0].ID, true))
	require.NoError(t, svc.SetCourseDone(ctx, old.ID, true))

	ov, err := svc.Overview(ctx, "p1", date(2024, 1, 3))
	require.NoError(t, err)
	require.Len(t, ov.Active, 1)
	require.Len(t, ov.Finished, 1)
	require.Equal(t, "Cur", ov.Active[0].Drug)
	require.Equal(t, 1, ov.Active[0].Progress.Taken)
	require.True(t, ov.Finished[0].Done)

	// toggle libre: se puede desmarcar
	require.NoError(t, svc.SetDoseDone(ctx, doses[0].ID, false))

	require.NoError(t, svc.Delete(ctx, cur.ID))
	left, _ := svc.Doses(ctx, cur.ID)
	require.Empty(t, left)
	require.Equal(t, 4, store.Count(records.DoseLog))
	require.Equal(t, 2, store.Count(records.Medications))
}
