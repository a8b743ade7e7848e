package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"petcontrol/internal/errs"
	"petcontrol/internal/ports/records"
)

var ErrDuplicate = errors.New("record already exists")

// Store guarda todas las colecciones en una tabla records (data jsonb).
// Ver migrations/00001_records.sql.
type Store struct {
	db  PgxPool
	now func() time.Time
}

var _ records.Store = (*Store)(nil)

func NewStore(db PgxPool) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) List(ctx context.Context, c records.Collection, filters ...records.Filter) ([]records.Row, error) {
	var (
		sb   strings.Builder
		args = []any{string(c)}
	)
	sb.WriteString(`SELECT data FROM records WHERE collection = $1`)
	if owner, ok := records.OwnerScope(ctx, c); ok {
		args = append(args, owner)
		fmt.Fprintf(&sb, ` AND user_id = $%d`, len(args))
	}
	for _, f := range filters {
		args = append(args, f.Field, f.Value)
		fmt.Fprintf(&sb, ` AND data->>$%d = $%d`, len(args)-1, len(args))
	}
	sb.WriteString(` ORDER BY seq`)

	rows, err := s.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c, err)
	}
	defer rows.Close()

	out := make([]records.Row, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var r records.Row
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("list %s: decode: %w", c, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const insertSQL = `
INSERT INTO records (collection, id, user_id, data, created_at)
VALUES ($1, $2, $3, $4, $5)`

func (s *Store) Insert(ctx context.Context, c records.Collection, row records.Row) (records.Row, error) {
	r, args, err := s.prepare(ctx, c, row)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.Exec(ctx, insertSQL, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert %s: %w", c, err)
	}
	return r, nil
}

// InsertMany corre todos los INSERT en una transacción.
func (s *Store) InsertMany(ctx context.Context, c records.Collection, rows []records.Row) (out []records.Row, err error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("insert %s: begin: %w", c, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	out = make([]records.Row, 0, len(rows))
	for _, row := range rows {
		r, args, perr := s.prepare(ctx, c, row)
		if perr != nil {
			return nil, perr
		}
		if _, xerr := tx.Exec(ctx, insertSQL, args...); xerr != nil {
			if isUniqueViolation(xerr) {
				return nil, ErrDuplicate
			}
			return nil, fmt.Errorf("insert %s: %w", c, xerr)
		}
		out = append(out, r)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("insert %s: commit: %w", c, err)
	}
	return out, nil
}

func (s *Store) prepare(ctx context.Context, c records.Collection, row records.Row) (records.Row, []any, error) {
	r := make(records.Row, len(row)+3)
	for k, v := range row {
		r[k] = v
	}
	r = records.StampOwner(ctx, c, r)

	id := r.ID()
	if id == "" {
		id = uuid.NewString()
		r["id"] = id
	}
	created := s.now().UTC()
	if _, ok := r["created_at"]; !ok {
		r["created_at"] = created.Format(time.RFC3339Nano)
	}
	owner, _ := r[records.OwnerField].(string)

	data, err := json.Marshal(r)
	if err != nil {
		return nil, nil, fmt.Errorf("insert %s: encode: %w", c, err)
	}
	return r, []any{string(c), id, owner, data, created}, nil
}

func (s *Store) Patch(ctx context.Context, c records.Collection, id string, fields records.Row) error {
	patch := make(records.Row, len(fields))
	for k, v := range fields {
		if k == "id" || k == records.OwnerField {
			continue
		}
		patch[k] = v
	}
	data, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("patch %s: encode: %w", c, err)
	}

	q := `UPDATE records SET data = data || $3 WHERE collection = $1 AND id = $2`
	args := []any{string(c), id, data}
	if owner, ok := records.OwnerScope(ctx, c); ok {
		q += ` AND user_id = $4`
		args = append(args, owner)
	}

	tag, err := s.db.Exec(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("patch %s: %w", c, err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, c records.Collection, id string) error {
	q := `DELETE FROM records WHERE collection = $1 AND id = $2`
	args := []any{string(c), id}
	if owner, ok := records.OwnerScope(ctx, c); ok {
		q += ` AND user_id = $3`
		args = append(args, owner)
	}

	tag, err := s.db.Exec(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c, err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
