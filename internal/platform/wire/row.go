package wire

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"petcontrol/internal/ports/records"
)

// DecodeRow convierte los campos de fecha y timestamp conocidos.
// Lo que no está en esos sets, o no parsea, pasa sin cambios.
func DecodeRow(in records.Row) records.Row {
	out := make(records.Row, len(in))
	for k, v := range in {
		s, ok := v.(string)
		if !ok {
			out[k] = v
			continue
		}
		if _, isDate := DateFields[k]; isDate {
			if d, err := DecodeDate(s); err == nil {
				out[k] = d
				continue
			}
		}
		if _, isTS := TimestampFields[k]; isTS {
			if t, err := DecodeTimestamp(s); err == nil {
				out[k] = t
				continue
			}
		}
		out[k] = v
	}
	return out
}

// Into decodifica una fila al struct destino usando sus tags json.
// civil.Date y time.Time se re-serializan en su forma canónica; los ids
// numéricos (bigint en el backend) se pasan a string. Una fecha o timestamp
// vacío o ilegible se descarta: el campo queda en su valor cero (nil si es puntero).
func Into(row records.Row, dst any) error {
	decoded := DecodeRow(row)
	for k, v := range decoded {
		if n, ok := v.(float64); ok && isIDField(k) {
			decoded[k] = strconv.FormatFloat(n, 'f', -1, 64)
		}
		if _, ok := v.(string); ok && isTemporalField(k) {
			delete(decoded, k)
		}
	}
	b, err := json.Marshal(decoded)
	if err != nil {
		return fmt.Errorf("wire: marshal row: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("wire: decode row: %w", err)
	}
	return nil
}

// FromStruct es la inversa: struct con tags json => fila.
func FromStruct(v any) (records.Row, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal struct: %w", err)
	}
	var row records.Row
	if err := json.Unmarshal(b, &row); err != nil {
		return nil, fmt.Errorf("wire: encode row: %w", err)
	}
	return row, nil
}

func isTemporalField(k string) bool {
	_, isDate := DateFields[k]
	_, isTS := TimestampFields[k]
	return isDate || isTS
}

func isIDField(k string) bool {
	return k == "id" || strings.HasSuffix(k, "_id")
}

// DecodeAll aplica Into a cada fila.
func DecodeAll[T any](rows []records.Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		var v T
		if err := Into(r, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
