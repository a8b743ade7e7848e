package medications

import (
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"

	"petcontrol/internal/errs"
	"petcontrol/internal/platform/respond"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/medications", overviewHandler(svc))
	r.Post("/medications", createCourseHandler(svc))
	r.Get("/medications/{id}/doses", listDosesHandler(svc))
	r.Patch("/medications/{id}", setCourseDoneHandler(svc))
	r.Delete("/medications/{id}", deleteCourseHandler(svc))
	r.Patch("/doses/{id}", setDoseDoneHandler(svc))
}

type createCourseRequest struct {
	PetID        string `json:"pet_id"`
	Drug         string `json:"drug"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Schedule     string `json:"schedule"`
	DosesPerDay  int    `json:"doses_per_day"`
	DurationDays int    `json:"duration_days"`
	StartDate    string `json:"start_date"` // YYYY-MM-DD
}

// createCourseHandler godoc
// @Summary      Crear tratamiento
// @Description  Crea el curso y genera todas sus tomas (duration_days × doses_per_day).
// @Tags         medications
// @Accept       json
// @Produce      json
// @Param        body  body      createCourseRequest  true  "Curso"
// @Success      201   {object}  CourseView
// @Failure      400   {object}  errs.Body
// @Failure      502   {object}  errs.Body
// @Router       /medications [post]
func createCourseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCourseRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}
		v, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusCreated, v)
	}
}

// overviewHandler godoc
// @Summary  Tratamientos activos y terminados
// @Tags     medications
// @Produce  json
// @Param    pet_id  query     string  false  "Filtrar por mascota"
// @Success  200     {object}  Overview
// @Router   /medications [get]
func overviewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ov, err := svc.Overview(r.Context(), r.URL.Query().Get("pet_id"), civil.DateOf(svc.now()))
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, ov)
	}
}

func listDosesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doses, err := svc.Doses(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, ProgressOf(doses))
	}
}

type doneRequest struct {
	Done *bool `json:"done"`
}

func decodeDone(w http.ResponseWriter, r *http.Request) (bool, bool) {
	var req doneRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return false, false
	}
	if req.Done == nil {
		respond.Error(w, r, errs.Invalid("done", "done is required"))
		return false, false
	}
	return *req.Done, true
}

func setCourseDoneHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		done, ok := decodeDone(w, r)
		if !ok {
			return
		}
		if err := svc.SetCourseDone(r.Context(), chi.URLParam(r, "id"), done); err != nil {
			respond.Error(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func setDoseDoneHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		done, ok := decodeDone(w, r)
		if !ok {
			return
		}
		if err := svc.SetDoseDone(r.Context(), chi.URLParam(r, "id"), done); err != nil {
			respond.Error(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteCourseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respond.Error(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
