package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"petcontrol/internal/errs"
	"petcontrol/internal/ports/records"
)

// Store es un record store en memoria para modo dev y tests.
// Conserva el orden de inserción por colección.
type Store struct {
	mu    sync.RWMutex
	byID  map[records.Collection]map[string]records.Row
	order map[records.Collection][]string
	now   func() time.Time

	// errores programados por colección (ver FailNext)
	failNext map[records.Collection]error
}

func NewStore() *Store {
	return &Store{
		byID:     make(map[records.Collection]map[string]records.Row),
		order:    make(map[records.Collection][]string),
		now:      time.Now,
		failNext: make(map[records.Collection]error),
	}
}

var _ records.Store = (*Store)(nil)

// FailNext programa un error para la próxima mutación en c (útil en tests).
func (s *Store) FailNext(c records.Collection, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext[c] = err
}

func (s *Store) takeFailure(c records.Collection) error {
	err := s.failNext[c]
	delete(s.failNext, c)
	return err
}

func (s *Store) List(ctx context.Context, c records.Collection, filters ...records.Filter) ([]records.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owner, scoped := records.OwnerScope(ctx, c)

	out := make([]records.Row, 0)
	for _, id := range s.order[c] {
		row := s.byID[c][id]
		if scoped && row[records.OwnerField] != owner {
			continue
		}
		if !matchesAll(row, filters) {
			continue
		}
		out = append(out, clone(row))
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, c records.Collection, row records.Row) (records.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(c); err != nil {
		return nil, err
	}
	return s.insertLocked(ctx, c, row)
}

func (s *Store) InsertMany(ctx context.Context, c records.Collection, rows []records.Row) ([]records.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(c); err != nil {
		return nil, err
	}
	out := make([]records.Row, 0, len(rows))
	for _, r := range rows {
		inserted, err := s.insertLocked(ctx, c, r)
		if err != nil {
			// todo o nada
			for _, done := range out {
				s.removeLocked(c, done.ID())
			}
			return nil, err
		}
		out = append(out, inserted)
	}
	return out, nil
}

func (s *Store) insertLocked(ctx context.Context, c records.Collection, row records.Row) (records.Row, error) {
	r := records.StampOwner(ctx, c, clone(row))

	id := strings.TrimSpace(r.ID())
	if id == "" {
		id = uuid.NewString()
		r["id"] = id
	}
	if _, ok := r["created_at"]; !ok {
		r["created_at"] = s.now().UTC().Format(time.RFC3339Nano)
	}

	if s.byID[c] == nil {
		s.byID[c] = make(map[string]records.Row)
	}
	if _, exists := s.byID[c][id]; exists {
		return nil, errors.New("record already exists")
	}
	s.byID[c][id] = r
	s.order[c] = append(s.order[c], id)
	return clone(r), nil
}

func (s *Store) Patch(ctx context.Context, c records.Collection, id string, fields records.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(c); err != nil {
		return err
	}
	row, ok := s.ownedLocked(ctx, c, id)
	if !ok {
		return errs.ErrNotFound
	}
	for k, v := range fields {
		if k == "id" || k == records.OwnerField {
			continue
		}
		row[k] = v
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, c records.Collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(c); err != nil {
		return err
	}
	if _, ok := s.ownedLocked(ctx, c, id); !ok {
		return errs.ErrNotFound
	}
	s.removeLocked(c, id)
	return nil
}

// Count devuelve cuántas filas hay en c, sin importar el dueño.
func (s *Store) Count(c records.Collection) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order[c])
}

func (s *Store) ownedLocked(ctx context.Context, c records.Collection, id string) (records.Row, bool) {
	row, ok := s.byID[c][id]
	if !ok {
		return nil, false
	}
	if owner, scoped := records.OwnerScope(ctx, c); scoped && row[records.OwnerField] != owner {
		return nil, false
	}
	return row, true
}

func (s *Store) removeLocked(c records.Collection, id string) {
	delete(s.byID[c], id)
	ids := s.order[c]
	for i, v := range ids {
		if v == id {
			s.order[c] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
}

func matchesAll(r records.Row, filters []records.Filter) bool {
	for _, f := range filters {
		if !f.Matches(r) {
			return false
		}
	}
	return true
}

func clone(r records.Row) records.Row {
	out := make(records.Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
