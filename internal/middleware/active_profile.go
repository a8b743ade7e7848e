package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"petcontrol/internal/platform/logger"
	"petcontrol/internal/platform/respond"
)

// ProfileCheck falla si la cuenta de la sesión no puede operar
// (perfil inexistente o inactivo).
type ProfileCheck func(ctx context.Context) error

// RequireActiveProfile va después de RequireClaims. Si check falla responde
// con ese error (401 + guidance para perfiles inactivos).
func RequireActiveProfile(check ProfileCheck) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if check == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := check(r.Context()); err != nil {
				logger.FromContext(r.Context()).Debug("profile rejected", zap.Error(err))
				respond.Error(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
