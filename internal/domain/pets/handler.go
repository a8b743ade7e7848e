package pets

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"petcontrol/internal/platform/respond"
)

// RegisterRoutes monta las rutas de lectura/alta. El borrado en cascada
// y el estado de salud los monta app.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets", listPetsHandler(svc))
	r.Post("/pets", createPetHandler(svc))
	r.Get("/pets/{petID}", getPetHandler(svc))
}

type createPetRequest struct {
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	Breed     string  `json:"breed"`
	Color     string  `json:"color"`
	Weight    float64 `json:"weight"`
	BirthDate string  `json:"birth_date"` // YYYY-MM-DD opcional
	Notes     string  `json:"notes"`
}

// createPetHandler godoc
// @Summary      Registrar mascota
// @Description  Crea una mascota respetando el cupo del plan de la cuenta.
// @Tags         pets
// @Accept       json
// @Produce      json
// @Param        body  body      createPetRequest  true  "Mascota"
// @Success      201   {object}  Pet
// @Failure      400   {object}  errs.Body
// @Failure      403   {object}  errs.Body  "cupo del plan alcanzado"
// @Router       /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Color:     req.Color,
			Weight:    req.Weight,
			BirthDate: req.BirthDate,
			Notes:     req.Notes,
		})
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		respond.JSON(w, http.StatusCreated, p)
	}
}

// listPetsHandler godoc
// @Summary  Listar mascotas
// @Tags     pets
// @Produce  json
// @Success  200  {array}  Pet
// @Router   /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, p)
	}
}
