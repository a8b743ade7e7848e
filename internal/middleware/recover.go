package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"petcontrol/internal/platform/logger"
	"petcontrol/internal/platform/respond"
)

// Recover reemplaza a chi/middleware.Recoverer: loguea el panic con zap
// y responde 500 en JSON.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.FromContext(r.Context()).Error("panic",
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()),
			)
			respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}()
		next.ServeHTTP(w, r)
	})
}
