package accounts

import "time"

// Status del perfil aprovisionado.
// @Enum active, inactive, canceled
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusCanceled Status = "canceled"
)

// Profile es el registro pre-aprovisionado que habilita una cuenta.
// Lo escribe el webhook de billing, nunca el usuario.
type Profile struct {
	ID     string `json:"id,omitempty"`
	Email  string `json:"email"`
	Plan   string `json:"plan"`
	Status Status `json:"status"`
	Source string `json:"source,omitempty"` // kiwify, hotmart, manual

	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (p Profile) Active() bool { return p.Status == StatusActive }

// PlanUsage es el resumen de cupo que muestran /me y /dashboard.
type PlanUsage struct {
	Plan    string  `json:"plan"`
	Limit   int     `json:"limit"`
	Used    int     `json:"used"`
	Percent float64 `json:"percent"`
	AtLimit bool    `json:"at_limit"`
}

func Usage(plan string, limit, used int) PlanUsage {
	u := PlanUsage{Plan: plan, Limit: limit, Used: used, AtLimit: used >= limit}
	if limit > 0 {
		u.Percent = float64(used) / float64(limit) * 100
	}
	return u
}
