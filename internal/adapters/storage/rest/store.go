// Package rest implementa records.Store contra una API PostgREST
// (el /rest/v1 de Supabase).
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"petcontrol/internal/errs"
	"petcontrol/internal/platform/httpclient"
	"petcontrol/internal/ports/auth"
	"petcontrol/internal/ports/records"
)

var ErrRESTNotConfigured = errors.New("rest store not configured")

type Config struct {
	// BaseURL del proyecto (sin /rest/v1).
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Log     *zap.Logger
}

type Store struct {
	http   *httpclient.Client
	apiKey string
}

var _ records.Store = (*Store)(nil)

func NewStore(cfg Config) (*Store, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	key := strings.TrimSpace(cfg.APIKey)
	if base == "" || key == "" {
		return nil, ErrRESTNotConfigured
	}

	c, err := httpclient.NewWithBaseURL(base+"/rest/v1", cfg.Timeout)
	if err != nil {
		return nil, err
	}
	c.Headers = map[string]string{"apikey": key}
	if cfg.Log != nil {
		c.Log = cfg.Log
	}
	return &Store{http: c, apiKey: key}, nil
}

// headers: bearer de la sesión si hay; si no, la API key (acceso anónimo).
func (s *Store) headers(ctx context.Context, representation bool) map[string]string {
	token := s.apiKey
	if claims, ok := auth.ClaimsFrom(ctx); ok && strings.TrimSpace(claims.AccessToken) != "" {
		token = claims.AccessToken
	}
	h := map[string]string{"Authorization": "Bearer " + token}
	if representation {
		h["Prefer"] = "return=representation"
	}
	return h
}

func path(c records.Collection, filters []records.Filter) string {
	q := url.Values{}
	for _, f := range filters {
		q.Add(f.Field, "eq."+f.Value)
	}
	p := "/" + string(c)
	if len(q) > 0 {
		p += "?" + q.Encode()
	}
	return p
}

func (s *Store) List(ctx context.Context, c records.Collection, filters ...records.Filter) ([]records.Row, error) {
	var out []records.Row
	if err := s.http.DoJSON(ctx, http.MethodGet, path(c, filters), s.headers(ctx, false), nil, &out); err != nil {
		return nil, upstream("list "+string(c), err)
	}
	if out == nil {
		out = []records.Row{}
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, c records.Collection, row records.Row) (records.Row, error) {
	rows, err := s.InsertMany(ctx, c, []records.Row{row})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: insert %s returned no rows", errs.ErrUpstream, c)
	}
	return rows[0], nil
}

// InsertMany manda un array en un solo POST; PostgREST lo inserta en una sola sentencia.
func (s *Store) InsertMany(ctx context.Context, c records.Collection, rows []records.Row) ([]records.Row, error) {
	if len(rows) == 0 {
		return []records.Row{}, nil
	}
	body := make([]records.Row, 0, len(rows))
	for _, r := range rows {
		body = append(body, records.StampOwner(ctx, c, r))
	}

	var out []records.Row
	if err := s.http.DoJSON(ctx, http.MethodPost, path(c, nil), s.headers(ctx, true), body, &out); err != nil {
		return nil, upstream("insert "+string(c), err)
	}
	return out, nil
}

func (s *Store) Patch(ctx context.Context, c records.Collection, id string, fields records.Row) error {
	var out []records.Row
	err := s.http.DoJSON(ctx, http.MethodPatch, path(c, []records.Filter{records.Eq("id", id)}), s.headers(ctx, true), fields, &out)
	if err != nil {
		return upstream("patch "+string(c), err)
	}
	if len(out) == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, c records.Collection, id string) error {
	var out []records.Row
	err := s.http.DoJSON(ctx, http.MethodDelete, path(c, []records.Filter{records.Eq("id", id)}), s.headers(ctx, true), nil, &out)
	if err != nil {
		return upstream("delete "+string(c), err)
	}
	if len(out) == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func upstream(op string, err error) error {
	switch httpclient.StatusCode(err) {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", op, errs.ErrUnauthorized)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, errs.ErrNotFound)
	}
	return fmt.Errorf("%w: %s: %v", errs.ErrUpstream, op, err)
}
