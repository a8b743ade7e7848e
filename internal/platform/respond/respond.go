// Package respond escribe respuestas JSON y errores de dominio.
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"petcontrol/internal/errs"
	"petcontrol/internal/platform/logger"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error mapea err a status + errs.Body. Los 5xx se loguean con el logger del request.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed",
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	JSON(w, status, errs.ToBody(err))
}

// Decode lee el body JSON; un body inválido es un *errs.ValidationError.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.Invalid("", "invalid json")
	}
	return nil
}
