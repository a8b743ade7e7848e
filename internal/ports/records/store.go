// Package records define el puerto del record store externo: colecciones
// de filas JSON con list/insert/patch/delete.
package records

import (
	"context"
	"fmt"
	"strings"

	"petcontrol/internal/ports/auth"
)

type Collection string

const (
	Pets          Collection = "pets"
	Vaccines      Collection = "vaccines"
	Preventives   Collection = "preventives"
	FeedingPlans  Collection = "feeding_plans"
	VetVisits     Collection = "vet_visits"
	Medications   Collection = "medications"
	DoseLog       Collection = "dose_log"
	WeightSamples Collection = "weight_samples"
	Notes         Collection = "notes"
	Profiles      Collection = "profiles"
)

// PetScoped son las colecciones que referencian una mascota via pet_id.
var PetScoped = []Collection{Vaccines, Preventives, FeedingPlans, VetVisits, Medications, WeightSamples, Notes}

// Row es una fila tal cual viaja por el wire.
type Row map[string]any

// ID devuelve el id de la fila como string (los backends pueden usar números).
func (r Row) ID() string {
	switch v := r["id"].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}

// Filter es una igualdad campo = valor.
type Filter struct {
	Field string
	Value string
}

func Eq(field, value string) Filter {
	return Filter{Field: field, Value: value}
}

// Matches compara el campo de la fila contra el filtro usando su forma texto.
func (f Filter) Matches(r Row) bool {
	v, ok := r[f.Field]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case string:
		return t == f.Value
	case bool:
		return strings.EqualFold(f.Value, fmt.Sprint(t))
	case float64:
		return fmt.Sprintf("%v", t) == f.Value
	default:
		return fmt.Sprint(t) == f.Value
	}
}

// Store es el record store. Cada llamada es independiente; el core nunca
// reintenta y, tras mutar, vuelve a leer la colección afectada.
type Store interface {
	List(ctx context.Context, c Collection, filters ...Filter) ([]Row, error)
	Insert(ctx context.Context, c Collection, row Row) (Row, error)
	// InsertMany inserta todas las filas en una sola llamada atómica.
	InsertMany(ctx context.Context, c Collection, rows []Row) ([]Row, error)
	Patch(ctx context.Context, c Collection, id string, fields Row) error
	Delete(ctx context.Context, c Collection, id string) error
}

// OwnerField es el campo que identifica la cuenta dueña de una fila.
const OwnerField = "user_id"

// StampOwner completa user_id con la cuenta de la sesión si no viene.
// Profiles no se estampa: lo escribe el aprovisionamiento, no el usuario.
func StampOwner(ctx context.Context, c Collection, row Row) Row {
	if c == Profiles {
		return row
	}
	if v, ok := row[OwnerField]; ok && v != nil && v != "" {
		return row
	}
	if claims, ok := auth.ClaimsFrom(ctx); ok && claims.UserID != "" {
		row[OwnerField] = claims.UserID
	}
	return row
}

// OwnerScope devuelve la cuenta por la que hay que filtrar, si corresponde.
func OwnerScope(ctx context.Context, c Collection) (string, bool) {
	if c == Profiles {
		return "", false
	}
	claims, ok := auth.ClaimsFrom(ctx)
	if !ok || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}
