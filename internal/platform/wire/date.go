// Package wire convierte filas del record store a valores tipados y de vuelta.
package wire

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// DateFields son los campos que viajan como YYYY-MM-DD y se leen como fecha calendario.
var DateFields = map[string]struct{}{
	"birth_date": {},
	"applied_on": {},
	"next_due":   {},
	"visit_date": {},
	"start_date": {},
	"end_date":   {},
	"weighed_on": {},
	"due_date":   {},
}

// TimestampFields se leen como time.Time.
var TimestampFields = map[string]struct{}{
	"created_at": {},
	"updated_at": {},
}

// EncodeDate devuelve la forma ISO-8601 (YYYY-MM-DD).
func EncodeDate(d civil.Date) string {
	return d.String()
}

// DecodeDate acepta YYYY-MM-DD o un timestamp ISO completo (se queda con la fecha).
func DecodeDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if d, err := civil.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := DecodeTimestamp(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("wire: invalid date %q", s)
	}
	return civil.DateOf(t), nil
}

// DecodeTimestamp acepta RFC3339 con o sin zona ("Z" incluida).
func DecodeTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999-07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("wire: invalid timestamp %q", s)
}
