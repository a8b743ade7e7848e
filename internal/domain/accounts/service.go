// Package accounts es el gate de acceso: solo cuentas con un perfil
// pre-aprovisionado y activo pueden crear cuenta o entrar.
package accounts

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"petcontrol/internal/errs"
	"petcontrol/internal/platform/wire"
	"petcontrol/internal/ports/auth"
	"petcontrol/internal/ports/plans"
	"petcontrol/internal/ports/records"
)

const MinPasswordLen = 6

// ProductPlans mapea el producto comprado a un plan.
type ProductPlans interface {
	PlanForProduct(productID string) string
}

type Options struct {
	// Contact es el canal de aprovisionamiento (número de WhatsApp o URL).
	Contact string
	// DevPlan se usa cuando la sesión no trae email (modo dev sin identity provider).
	DevPlan string
}

type Service struct {
	store    records.Store
	idp      auth.IdentityProvider // nil => modo dev
	plans    plans.Resolver
	products ProductPlans
	opts     Options
	now      func() time.Time
}

func NewService(store records.Store, idp auth.IdentityProvider, resolver plans.Resolver, products ProductPlans, opts Options) *Service {
	return &Service{
		store:    store,
		idp:      idp,
		plans:    resolver,
		products: products,
		opts:     opts,
		now:      time.Now,
	}
}

// ProfileByEmail busca el perfil; ok=false si no existe.
func (s *Service) ProfileByEmail(ctx context.Context, email string) (Profile, bool, error) {
	rows, err := s.store.List(ctx, records.Profiles, records.Eq("email", normalizeEmail(email)))
	if err != nil {
		return Profile{}, false, err
	}
	if len(rows) == 0 {
		return Profile{}, false, nil
	}
	var p Profile
	if err := wire.Into(rows[0], &p); err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

type SignupInput struct {
	Email           string
	Password        string
	ConfirmPassword string
}

func (in SignupInput) validate() error {
	if err := validateCredentials(in.Email, in.Password); err != nil {
		return err
	}
	if len(in.Password) < MinPasswordLen {
		return errs.Invalid("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLen))
	}
	if in.Password != in.ConfirmPassword {
		return errs.Invalid("confirm_password", "passwords do not match")
	}
	return nil
}

// Signup exige un perfil activo para el email antes de crear la cuenta.
func (s *Service) Signup(ctx context.Context, in SignupInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	if s.idp == nil {
		return fmt.Errorf("signup: identity provider %w", errs.ErrNotConfigured)
	}

	p, ok, err := s.ProfileByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if !ok || !p.Active() {
		return &errs.AuthorizationError{
			Message:  "email not authorized, you need to acquire a plan first",
			Guidance: s.guidance("Hi! I would like to get a PetControl plan."),
		}
	}
	return s.idp.Signup(ctx, normalizeEmail(in.Email), in.Password)
}

type LoginResult struct {
	Session auth.Session `json:"session"`
	Profile Profile      `json:"profile"`
}

// Login intercambia credenciales y descarta la sesión si el perfil no está activo.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if err := validateCredentials(email, password); err != nil {
		return LoginResult{}, err
	}
	if s.idp == nil {
		return LoginResult{}, fmt.Errorf("login: identity provider %w", errs.ErrNotConfigured)
	}

	sess, err := s.idp.Login(ctx, normalizeEmail(email), password)
	if err != nil {
		return LoginResult{}, err
	}
	if sess.Email == "" {
		sess.Email = normalizeEmail(email)
	}

	p, err := s.authorizeEmail(auth.WithClaims(ctx, sess.Claims()), sess.Email)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Session: sess, Profile: p}, nil
}

// Authorize resuelve el perfil de la sesión en ctx y exige que esté activo.
func (s *Service) Authorize(ctx context.Context) (Profile, error) {
	claims, ok := auth.ClaimsFrom(ctx)
	if !ok || claims.UserID == "" {
		return Profile{}, errs.ErrUnauthorized
	}
	if claims.Email == "" && s.idp == nil {
		plan := s.opts.DevPlan
		if plan == "" {
			plan = "Elite"
		}
		return Profile{ID: claims.UserID, Plan: plan, Status: StatusActive, Source: "dev"}, nil
	}
	return s.authorizeEmail(ctx, claims.Email)
}

func (s *Service) authorizeEmail(ctx context.Context, email string) (Profile, error) {
	p, ok, err := s.ProfileByEmail(ctx, email)
	if err != nil {
		return Profile{}, err
	}
	if !ok {
		return Profile{}, &errs.AuthorizationError{
			Message:  "access denied, your email is not authorized: acquire a plan first",
			Guidance: s.guidance("Hi! I would like to get a PetControl plan."),
		}
	}
	if !p.Active() {
		return Profile{}, &errs.AuthorizationError{
			Message:  "your account is inactive, contact us to activate your plan",
			Guidance: s.guidance("Hi! I would like to reactivate my PetControl plan."),
		}
	}
	return p, nil
}

// PetQuota implementa pets.Quota.
func (s *Service) PetQuota(ctx context.Context) (string, int, error) {
	p, err := s.Authorize(ctx)
	if err != nil {
		return "", 0, err
	}
	limit, err := s.plans.PetLimit(ctx, p.Plan)
	if err != nil {
		return "", 0, err
	}
	return p.Plan, limit, nil
}

// UpgradeGuidance es el link de contacto para subir de plan.
func (s *Service) UpgradeGuidance(plan string) string {
	return s.guidance(fmt.Sprintf("Hi! I would like to upgrade my %s plan on PetControl.", plan))
}

// Provision crea o actualiza el perfil a partir de un evento de billing.
func (s *Service) Provision(ctx context.Context, ev PurchaseEvent) (Profile, error) {
	plan := "Essencial"
	if s.products != nil {
		plan = s.products.PlanForProduct(ev.ProductID)
	}
	now := s.now().UTC()

	existing, ok, err := s.ProfileByEmail(ctx, ev.Email)
	if err != nil {
		return Profile{}, err
	}
	if ok {
		patch := records.Row{
			"plan":       plan,
			"status":     string(ev.Status),
			"source":     ev.Source,
			"updated_at": now.Format(time.RFC3339Nano),
		}
		if err := s.store.Patch(ctx, records.Profiles, existing.ID, patch); err != nil {
			return Profile{}, err
		}
		existing.Plan, existing.Status, existing.Source, existing.UpdatedAt = plan, ev.Status, ev.Source, &now
		return existing, nil
	}

	row, err := wire.FromStruct(Profile{Email: ev.Email, Plan: plan, Status: ev.Status, Source: ev.Source, UpdatedAt: &now})
	if err != nil {
		return Profile{}, err
	}
	saved, err := s.store.Insert(ctx, records.Profiles, row)
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	if err := wire.Into(saved, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// guidance arma el link de contacto; un número se convierte en link de WhatsApp.
func (s *Service) guidance(message string) string {
	c := strings.TrimSpace(s.opts.Contact)
	if c == "" {
		return ""
	}
	if strings.Trim(c, "+0123456789") == "" {
		return "https://wa.me/" + strings.TrimPrefix(c, "+") + "?text=" + url.QueryEscape(message)
	}
	return c
}

func validateCredentials(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.Invalid("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return errs.Invalid("email", "email is invalid")
	}
	if password == "" {
		return errs.Invalid("password", "password is required")
	}
	return nil
}
