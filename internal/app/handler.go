package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"petcontrol/internal/domain/accounts"
	"petcontrol/internal/platform/logger"
	"petcontrol/internal/platform/respond"
)

// Guidance arma el link de upgrade para un plan.
type Guidance interface {
	UpgradeGuidance(plan string) string
}

func RegisterRoutes(r chi.Router, loader *Loader, guide Guidance) {
	r.Get("/me", meHandler(loader, guide))
	r.Get("/dashboard", dashboardHandler(loader))
	r.Get("/pets/{petID}/status", petStatusHandler(loader))
	r.Delete("/pets/{petID}", deletePetHandler(loader))
	r.Delete("/data", clearAllHandler(loader))
}

type meResponse struct {
	UserID   string             `json:"user_id"`
	Email    string             `json:"email,omitempty"`
	Profile  accounts.Profile   `json:"profile"`
	Usage    accounts.PlanUsage `json:"usage"`
	Guidance string             `json:"upgrade_guidance,omitempty"`
}

// meHandler godoc
// @Summary  Perfil y uso del plan
// @Tags     account
// @Produce  json
// @Success  200  {object}  meResponse
// @Failure  401  {object}  errs.Body
// @Router   /me [get]
func meHandler(loader *Loader, guide Guidance) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := loader.Load(r.Context())
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		out := meResponse{
			UserID:  st.Claims.UserID,
			Email:   st.Claims.Email,
			Profile: st.Profile,
			Usage:   st.Usage(),
		}
		if out.Usage.AtLimit && guide != nil {
			out.Guidance = guide.UpgradeGuidance(st.Profile.Plan)
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// dashboardHandler godoc
// @Summary  Tarjetas de mascotas con estado de salud
// @Tags     dashboard
// @Produce  json
// @Success  200  {object}  Dashboard
// @Router   /dashboard [get]
func dashboardHandler(loader *Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := loader.Load(r.Context())
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, st.Dashboard(loader.Today()))
	}
}

// petStatusHandler godoc
// @Summary  Estado de salud (verde/amarillo/rojo)
// @Tags     pets
// @Produce  json
// @Param    petID  path      string  true  "Mascota"
// @Success  200    {object}  health.Status
// @Failure  404    {object}  errs.Body
// @Router   /pets/{petID}/status [get]
func petStatusHandler(loader *Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := loader.Load(r.Context())
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		status, err := st.PetStatus(chi.URLParam(r, "petID"), loader.Today())
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, map[string]any{
			"level":    status.Level,
			"reasons":  status.Reasons,
			"headline": status.Headline(),
		})
	}
}

// deletePetHandler godoc
// @Summary      Borrar mascota
// @Description  Borra la mascota y todos sus registros (incluidas las tomas). Devuelve el dashboard recargado.
// @Tags         pets
// @Produce      json
// @Param        petID  path      string  true  "Mascota"
// @Success      200    {object}  Dashboard
// @Router       /pets/{petID} [delete]
func deletePetHandler(loader *Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := loader.Load(r.Context())
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		outcome, err := st.DeletePet(r.Context(), chi.URLParam(r, "petID"))
		finish(w, r, loader, st, outcome, err)
	}
}

func clearAllHandler(loader *Loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := loader.Load(r.Context())
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		outcome, err := st.ClearAll(r.Context())
		finish(w, r, loader, st, outcome, err)
	}
}

// finish recarga si la acción lo pidió y responde el dashboard.
func finish(w http.ResponseWriter, r *http.Request, loader *Loader, st *State, outcome Outcome, actionErr error) {
	if outcome == ReloadRequired {
		if err := st.Reload(r.Context()); err != nil {
			logger.FromContext(r.Context()).Warn("reload after mutation failed", zap.Error(err))
		}
	}
	if actionErr != nil {
		respond.Error(w, r, actionErr)
		return
	}
	respond.JSON(w, http.StatusOK, st.Dashboard(loader.Today()))
}
