package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"petcontrol/internal/adapters/plans/static"
	"petcontrol/internal/app"
	"petcontrol/internal/domain/accounts"
	"petcontrol/internal/domain/care"
	"petcontrol/internal/domain/medications"
	"petcontrol/internal/domain/pets"
	"petcontrol/internal/middleware"
	"petcontrol/internal/ports/auth"
	"petcontrol/internal/ports/records"

	_ "petcontrol/docs"
)

type Options struct {
	Logger *zap.Logger

	// Store es obligatorio (memory, rest o postgres).
	Store records.Store

	Verifier auth.AuthVerifier     // puede ser nil (modo dev)
	IdP      auth.IdentityProvider // puede ser nil: login/signup responden 503

	// Plans: si viene nil se usan los planes por defecto.
	Plans *static.Resolver

	Contact       string
	WebhookSecret string
	DevPlan       string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	resolver := opts.Plans
	if resolver == nil {
		resolver = static.Default()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover)

	r.Use(middleware.AuthContext(opts.Verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	accountsSvc := accounts.NewService(opts.Store, opts.IdP, resolver, resolver, accounts.Options{
		Contact: opts.Contact,
		DevPlan: opts.DevPlan,
	})
	petsSvc := pets.NewService(opts.Store, accountsSvc)
	careSvc := care.NewService(opts.Store, petsSvc)
	medsSvc := medications.NewService(opts.Store, petsSvc)
	loader := app.NewLoader(opts.Store, accountsSvc, resolver)

	// Rutas públicas
	accounts.RegisterPublicRoutes(r, accountsSvc, opts.WebhookSecret)

	// Rutas con sesión
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireClaims)
		r.Use(middleware.RequireActiveProfile(func(ctx context.Context) error {
			_, err := accountsSvc.Authorize(ctx)
			return err
		}))

		pets.RegisterRoutes(r, petsSvc)
		care.RegisterRoutes(r, careSvc)
		medications.RegisterRoutes(r, medsSvc)
		app.RegisterRoutes(r, loader, accountsSvc)
	})

	return r
}
