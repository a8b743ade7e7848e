package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"petcontrol/internal/errs"
	"petcontrol/internal/ports/auth"
	"petcontrol/internal/ports/records"
)

func userCtx(id string) context.Context {
	return auth.WithClaims(context.Background(), auth.Claims{UserID: id})
}

func TestStore_InsertListKeepsOrderAndOwner(t *testing.T) {
	s := NewStore()
	ctx := userCtx("u1")

	for _, name := range []string{"Rex", "Luna", "Thor"} {
		_, err := s.Insert(ctx, records.Pets, records.Row{"name": name})
		require.NoError(t, err)
	}
	_, err := s.Insert(userCtx("u2"), records.Pets, records.Row{"name": "Other"})
	require.NoError(t, err)

	rows, err := s.List(ctx, records.Pets)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Rex", rows[0]["name"])
	require.Equal(t, "Thor", rows[2]["name"])
	require.Equal(t, "u1", rows[0][records.OwnerField])
	require.NotEmpty(t, rows[0].ID())
	require.NotEmpty(t, rows[0]["created_at"])

	rows, err = s.List(ctx, records.Pets, records.Eq("name", "Luna"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestStore_PatchDeleteScopedToOwner(t *testing.T) {
	s := NewStore()
	row, err := s.Insert(userCtx("u1"), records.Vaccines, records.Row{"name": "V10", "done": false})
	require.NoError(t, err)

	require.ErrorIs(t, s.Patch(userCtx("u2"), records.Vaccines, row.ID(), records.Row{"done": true}), errs.ErrNotFound)
	require.NoError(t, s.Patch(userCtx("u1"), records.Vaccines, row.ID(), records.Row{"done": true, "user_id": "hijack"}))

	rows, _ := s.List(userCtx("u1"), records.Vaccines)
	require.Equal(t, true, rows[0]["done"])
	require.Equal(t, "u1", rows[0][records.OwnerField])

	require.ErrorIs(t, s.Delete(userCtx("u2"), records.Vaccines, row.ID()), errs.ErrNotFound)
	require.NoError(t, s.Delete(userCtx("u1"), records.Vaccines, row.ID()))
	require.Equal(t, 0, s.Count(records.Vaccines))
}

func TestStore_InsertManyAllOrNothing(t *testing.T) {
	s := NewStore()
	ctx := userCtx("u1")

	rows := []records.Row{{"index": 1}, {"index": 2}, {"id": "dup", "index": 3}, {"id": "dup", "index": 4}}
	_, err := s.InsertMany(ctx, records.DoseLog, rows)
	require.Error(t, err)
	require.Equal(t, 0, s.Count(records.DoseLog))

	out, err := s.InsertMany(ctx, records.DoseLog, rows[:3])
	require.NoError(t, err)
	require.Len(t, out, 3)
}

func TestStore_FailNext(t *testing.T) {
	s := NewStore()
	boom := errors.New("boom")
	s.FailNext(records.Notes, boom)

	_, err := s.Insert(userCtx("u1"), records.Notes, records.Row{"title": "x"})
	require.ErrorIs(t, err, boom)

	_, err = s.Insert(userCtx("u1"), records.Notes, records.Row{"title": "x"})
	require.NoError(t, err)
}

func TestStore_ProfilesAreNotScoped(t *testing.T) {
	s := NewStore()
	_, err := s.Insert(context.Background(), records.Profiles, records.Row{"email": "a@b.c", "status": "active"})
	require.NoError(t, err)

	rows, err := s.List(userCtx("u9"), records.Profiles, records.Eq("email", "a@b.c"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
