package accounts

import (
	"crypto/subtle"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"petcontrol/internal/errs"
	"petcontrol/internal/platform/logger"
	"petcontrol/internal/platform/respond"
)

// WebhookSecretHeader lleva el secreto compartido con la plataforma de pagos.
const WebhookSecretHeader = "X-Webhook-Secret"

// RegisterPublicRoutes monta las rutas que no requieren sesión.
func RegisterPublicRoutes(r chi.Router, svc *Service, webhookSecret string) {
	r.Post("/auth/login", loginHandler(svc))
	r.Post("/auth/signup", signupHandler(svc))
	r.Post("/auth/logout", logoutHandler())
	r.Post("/webhooks/billing", billingWebhookHandler(svc, webhookSecret))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string  `json:"access_token"`
	ExpiresAt   string  `json:"expires_at,omitempty"`
	UserID      string  `json:"user_id"`
	Email       string  `json:"email"`
	Profile     Profile `json:"profile"`
}

// loginHandler godoc
// @Summary      Login
// @Description  Intercambia email/password por un access token. La cuenta debe tener perfil activo.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credenciales"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errs.Body
// @Failure      401   {object}  errs.Body
// @Router       /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}
		res, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		out := loginResponse{
			AccessToken: res.Session.AccessToken,
			UserID:      res.Session.UserID,
			Email:       res.Session.Email,
			Profile:     res.Profile,
		}
		if !res.Session.ExpiresAt.IsZero() {
			out.ExpiresAt = res.Session.ExpiresAt.Format(time.RFC3339)
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

type signupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// signupHandler godoc
// @Summary      Crear cuenta
// @Description  Solo para emails con un perfil activo (aprovisionado por billing).
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  signupRequest  true  "Datos"
// @Success      201
// @Failure      400   {object}  errs.Body
// @Failure      401   {object}  errs.Body  "email no autorizado (incluye guidance)"
// @Router       /auth/signup [post]
func signupHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}
		if err := svc.Signup(r.Context(), SignupInput(req)); err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusCreated, map[string]string{"message": "account created, you can log in now"})
	}
}

// logoutHandler: no hay estado de sesión del lado del servidor; el cliente descarta el token.
func logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

// billingWebhookHandler godoc
// @Summary      Webhook de billing (Kiwify / Hotmart)
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Secret  header  string  true  "Secreto compartido"
// @Success      200  {object}  Profile
// @Failure      400  {object}  errs.Body
// @Failure      401  {object}  errs.Body
// @Router       /webhooks/billing [post]
func billingWebhookHandler(svc *Service, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSpace(secret) == "" {
			respond.Error(w, r, errs.ErrNotConfigured)
			return
		}
		got := r.Header.Get(WebhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			respond.Error(w, r, errs.ErrUnauthorized)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			respond.Error(w, r, errs.Invalid("", "unreadable body"))
			return
		}
		ev, err := ParsePurchase(body)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		p, err := svc.Provision(r.Context(), ev)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		logger.FromContext(r.Context()).Info("profile provisioned",
			zap.String("source", ev.Source),
			zap.String("event", ev.Raw),
			zap.String("plan", p.Plan),
			zap.String("status", string(p.Status)),
		)
		respond.JSON(w, http.StatusOK, p)
	}
}
