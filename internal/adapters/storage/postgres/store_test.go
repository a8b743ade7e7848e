package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"petcontrol/internal/errs"
	"petcontrol/internal/ports/auth"
	"petcontrol/internal/ports/records"
)

func newStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	s := NewStore(mock)
	s.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	return s, mock
}

func userCtx(id string) context.Context {
	return auth.WithClaims(context.Background(), auth.Claims{UserID: id})
}

func TestStore_ListScopedAndFiltered(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT data FROM records WHERE collection = \$1 AND user_id = \$2 AND data->>\$3 = \$4 ORDER BY seq`).
		WithArgs("vaccines", "u1", "pet_id", "p1").
		WillReturnRows(pgxmock.NewRows([]string{"data"}).
			AddRow([]byte(`{"id":"v1","name":"V10","pet_id":"p1"}`)).
			AddRow([]byte(`{"id":"v2","name":"Raiva","pet_id":"p1"}`)))

	rows, err := s.List(userCtx("u1"), records.Vaccines, records.Eq("pet_id", "p1"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "V10", rows[0]["name"])
	require.Equal(t, "v2", rows[1].ID())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListProfilesNotScoped(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT data FROM records WHERE collection = \$1 AND data->>\$2 = \$3 ORDER BY seq`).
		WithArgs("profiles", "email", "ana@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"data"}))

	rows, err := s.List(userCtx("u1"), records.Profiles, records.Eq("email", "ana@example.com"))
	require.NoError(t, err)
	require.Empty(t, rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InsertStampsOwnerAndID(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO records \(collection, id, user_id, data, created_at\)`).
		WithArgs("pets", pgxmock.AnyArg(), "u1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	row, err := s.Insert(userCtx("u1"), records.Pets, records.Row{"name": "Rex"})
	require.NoError(t, err)
	require.NotEmpty(t, row.ID())
	require.Equal(t, "u1", row[records.OwnerField])
	require.Equal(t, "2024-03-10T12:00:00Z", row["created_at"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InsertMany_RollsBackOnFailure(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO records`).
		WithArgs("dose_log", pgxmock.AnyArg(), "u1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO records`).
		WithArgs("dose_log", pgxmock.AnyArg(), "u1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := s.InsertMany(userCtx("u1"), records.DoseLog, []records.Row{
		{"medication_id": "m1", "dose_index": 1},
		{"medication_id": "m1", "dose_index": 2},
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_InsertMany_Commit(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectBegin()
	for i := 0; i < 3; i++ {
		mock.ExpectExec(`INSERT INTO records`).
			WithArgs("dose_log", pgxmock.AnyArg(), "u1", pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	rows, err := s.InsertMany(userCtx("u1"), records.DoseLog, []records.Row{{"n": 1}, {"n": 2}, {"n": 3}})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_PatchAndDelete_NotFound(t *testing.T) {
	s, mock := newStore(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE records SET data = data \|\| \$3 WHERE collection = \$1 AND id = \$2 AND user_id = \$4`).
		WithArgs("vaccines", "v1", []byte(`{"done":true}`), "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(`DELETE FROM records WHERE collection = \$1 AND id = \$2 AND user_id = \$3`).
		WithArgs("vaccines", "v1", "u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := s.Patch(userCtx("u1"), records.Vaccines, "v1", records.Row{"done": true, "id": "x"})
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, s.Delete(userCtx("u1"), records.Vaccines, "v1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
