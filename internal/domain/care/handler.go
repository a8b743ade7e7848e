package care

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"petcontrol/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	mountBook(r, "/vaccines", svc.Vaccines)
	mountBook(r, "/preventives", svc.Preventives)
	mountBook(r, "/feeding-plans", svc.FeedingPlans)
	mountBook(r, "/vet-visits", svc.VetVisits)
	mountBook(r, "/weights", svc.Weights)
	mountBook(r, "/notes", svc.Notes)

	r.Get("/weights/trend", weightTrendHandler(svc))
}

func mountBook[T Entry](r chi.Router, path string, b *Book[T]) {
	r.Get(path, listHandler(b))
	r.Post(path, addHandler(b))
	r.Patch(path+"/{id}", setDoneHandler(b))
	r.Delete(path+"/{id}", deleteHandler(b))
}

// listHandler godoc
// @Summary  Listar registros de una colección
// @Tags     care
// @Produce  json
// @Param    pet_id  query  string  false  "Filtrar por mascota"
// @Router   /vaccines [get]
func listHandler[T Entry](b *Book[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := b.List(r.Context(), r.URL.Query().Get("pet_id"))
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
	}
}

func addHandler[T Entry](b *Book[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in T
		if err := respond.Decode(r, &in); err != nil {
			respond.Error(w, r, err)
			return
		}
		saved, err := b.Add(r.Context(), in)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusCreated, saved)
	}
}

type doneRequest struct {
	Done *bool `json:"done"`
}

func setDoneHandler[T Entry](b *Book[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req doneRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}
		if req.Done == nil {
			respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "done is required", "field": "done"})
			return
		}
		if err := b.SetDone(r.Context(), chi.URLParam(r, "id"), *req.Done); err != nil {
			respond.Error(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteHandler[T Entry](b *Book[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := b.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respond.Error(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// weightTrendHandler godoc
// @Summary  Historial de peso con variación
// @Tags     care
// @Produce  json
// @Param    pet_id  query  string  true  "Mascota"
// @Success  200  {array}  WeightPoint
// @Router   /weights/trend [get]
func weightTrendHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		samples, err := svc.Weights.List(r.Context(), r.URL.Query().Get("pet_id"))
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, Trend(samples))
	}
}
