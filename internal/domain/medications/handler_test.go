package medications

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"petcontrol/internal/adapters/storage/memory"
	"petcontrol/internal/errs"
)

func TestHandlers_DoneFlagRequired(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, newService(memory.NewStore()))

	for _, path := range []string{"/doses/d1", "/medications/c1"} {
		req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(`{}`))
		req = req.WithContext(userCtx())
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, path)
		var body errs.Body
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, errs.Body{Error: "done is required", Field: "done"}, body)
	}
}

func TestHandlers_CreateRejectsHugeSchedule(t *testing.T) {
	store := memory.NewStore()
	r := chi.NewRouter()
	RegisterRoutes(r, newService(store))

	payload := `{"pet_id":"p1","drug":"X","start_date":"2024-01-01","duration_days":4611686018427387904,"doses_per_day":4}`
	req := httptest.NewRequest(http.MethodPost, "/medications", strings.NewReader(payload)).WithContext(userCtx())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errs.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "duration_days", body.Field)
	require.Equal(t, 0, store.Count("medications"))
}
