package postgres

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// sourceKind is the closed set of source column types the marshaller
// understands. Types outside the set fall back to kindText.
type sourceKind int

const (
	kindText sourceKind = iota // textual representation
	kindBool
	kindInt32 // 2- and 4-byte integers
	kindInt64
	kindFloat
	kindJSON
	kindUUID
)

// kindOf maps a declared Postgres type name to its source kind. The match
// is case-sensitive against the names the driver reports.
func kindOf(typeName string) sourceKind {
	switch typeName {
	case "BOOL":
		return kindBool
	case "INT2", "INT4":
		return kindInt32
	case "INT8":
		return kindInt64
	case "FLOAT4", "FLOAT8":
		return kindFloat
	case "JSON", "JSONB":
		return kindJSON
	case "UUID":
		return kindUUID
	default:
		return kindText
	}
}

// coerce converts a raw driver value into its JSON-compatible form.
// Coercion is best-effort and never fails: a value that cannot be
// converted degrades to nil instead of voiding the surrounding result.
func (k sourceKind) coerce(v any) any {
	if v == nil {
		return nil
	}
	switch k {
	case kindBool:
		return coerceBool(v)
	case kindInt32:
		return coerceInt32(v)
	case kindInt64:
		return coerceInt64(v)
	case kindFloat:
		return coerceFloat(v)
	case kindJSON:
		return coerceJSON(v)
	case kindUUID:
		return coerceUUID(v)
	default:
		return coerceText(v)
	}
}

func coerceBool(v any) any {
	if b, ok := v.(bool); ok {
		return b
	}
	return nil
}

// coerceInt32 narrows to the 32-bit signed domain. The driver hands over
// int64 regardless of the column width.
func coerceInt32(v any) any {
	n, ok := v.(int64)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return nil
	}
	return int32(n)
}

func coerceInt64(v any) any {
	if n, ok := v.(int64); ok {
		return n
	}
	return nil
}

// coerceFloat rejects values that have no JSON number representation:
// NaN and the infinities degrade to nil.
func coerceFloat(v any) any {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

// coerceJSON passes native JSON columns through as structured values.
func coerceJSON(v any) any {
	var raw []byte
	switch b := v.(type) {
	case []byte:
		raw = b
	case string:
		raw = []byte(b)
	default:
		return nil
	}

	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// coerceUUID renders the canonical textual form.
func coerceUUID(v any) any {
	switch u := v.(type) {
	case [16]byte:
		return uuid.UUID(u).String()
	case []byte:
		if id, err := uuid.ParseBytes(u); err == nil {
			return id.String()
		}
		if id, err := uuid.FromBytes(u); err == nil {
			return id.String()
		}
		return nil
	case string:
		if id, err := uuid.Parse(u); err == nil {
			return id.String()
		}
		return nil
	default:
		return nil
	}
}

func coerceText(v any) any {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.Format(time.RFC3339Nano)
	case bool:
		return strconv.FormatBool(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
