package pets

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
)

type fixedQuota struct {
	plan  string
	limit int
}

func (q fixedQuota) PetQuota(context.Context) (string, int, error) { return q.plan, q.limit, nil }

func userCtx(id string) context.Context {
	return auth.WithClaims(context.Background(), auth.Claims{UserID: id})
}

func TestService_CreateAndGet(t *testing.T) {
	svc := NewService(memory.NewStore(), fixedQuota{"Plus", 4})
	ctx := userCtx("u1")

	p, err := svc.Create(ctx, CreateInput{Name: " Rex ", Species: "Dog", BirthDate: "2020-06-01", Weight: 12.5})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.Equal(t, "Rex", p.Name)
	require.Equal(t, SpeciesDog, p.Species)
	require.Equal(t, "u1", p.UserID)
	require.Equal(t, civil.Date{Year: 2020, Month: time.June, Day: 1}, *p.BirthDate)
	require.NotNil(t, p.CreatedAt)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
	require.Equal(t, 3, got.AgeYears(civil.Date{Year: 2024, Month: time.March, Day: 10}))

	// otra cuenta no la ve
	_, err = svc.Get(userCtx("u2"), p.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(memory.NewStore(), nil)
	ctx := userCtx("u1")

	cases := map[string]CreateInput{
		"name":       {Species: "dog"},
		"species":    {Name: "Rex", Species: "fish"},
		"birth_date": {Name: "Rex", Species: "cat", BirthDate: "01/02/2020"},
		"weight":     {Name: "Rex", Species: "cat", Weight: -1},
	}
	for field, in := range cases {
		_, err := svc.Create(ctx, in)
		var ve *errs.ValidationError
		require.True(t, errors.As(err, &ve), field)
		require.Equal(t, field, ve.Field)
	}
}

func TestService_PlanLimit(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, fixedQuota{"Essencial", 1})
	ctx := userCtx("u1")

	_, err := svc.Create(ctx, CreateInput{Name: "Rex", Species: "dog"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Name: "Luna", Species: "cat"})
	var le *errs.LimitError
	require.True(t, errors.As(err, &le))
	require.Equal(t, 1, le.Limit)
	require.Equal(t, "your Essencial plan allows up to 1 pet, upgrade to register more", le.Message)

	// el cupo es por cuenta
	_, err = svc.Create(userCtx("u2"), CreateInput{Name: "Thor", Species: "dog"})
	require.NoError(t, err)
}

func TestService_RequireOwned(t *testing.T) {
	svc := NewService(memory.NewStore(), nil)
	ctx := userCtx("u1")
	p, err := svc.Create(ctx, CreateInput{Name: "Rex", Species: "dog"})
	require.NoError(t, err)

	require.NoError(t, svc.RequireOwned(ctx, p.ID))
	require.Error(t, svc.RequireOwned(userCtx("u2"), p.ID))
	require.Error(t, svc.RequireOwned(ctx, ""))
}
