package predicate

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/go-gorm/wherex/dialect"
)

// CompileJSONAny compiles a match of rows whose JSON array column contains at
// least one of req.Values. An empty value set compiles to False.
//
// Values must be JSON scalars, anything else fails with ErrInvalidArgument.
func CompileJSONAny(req JSONAnyRequest, d dialect.Dialect, quotedColumn string) (Fragment, error) {
	if len(req.Values) == 0 {
		return False, nil
	}

	encoded, err := encodeAll(req.Values)
	if err != nil {
		return Fragment{}, err
	}

	var (
		conds = make([]string, 0, len(req.Values))
		vars  = make([]interface{}, 0, len(req.Values))
	)

	switch d {
	case dialect.PostgreSQL:
		// `?|` only tests top level string elements, so every value is compared as text
		vars = lo.Map(req.Values, func(v interface{}, idx int) interface{} {
			if s, ok := v.(string); ok {
				return s
			}
			return encoded[idx]
		})
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(vars)), ", ")
		return Fragment{SQL: "(" + quotedColumn + "::jsonb ??| array[" + placeholders + "]::text[])", Vars: vars}, nil
	case dialect.SQLite:
		for idx, v := range req.Values {
			switch v := v.(type) {
			case string:
				conds = append(conds, "EXISTS (SELECT 1 FROM json_each("+quotedColumn+") WHERE json_each.value = ?)")
				vars = append(vars, v)
			case bool:
				conds = append(conds, "EXISTS (SELECT 1 FROM json_each("+quotedColumn+") WHERE json_each.value = ?)")
				vars = append(vars, lo.Ternary(v, 1, 0))
			case json.Number, nil:
				conds = append(conds, "EXISTS (SELECT 1 FROM json_each("+quotedColumn+") WHERE json_quote(json_each.value) = json(?))")
				vars = append(vars, encoded[idx])
			default:
				conds = append(conds, "EXISTS (SELECT 1 FROM json_each("+quotedColumn+") WHERE json_each.value = ?)")
				vars = append(vars, sqliteNumber(v))
			}
		}
	case dialect.SQLServer:
		for idx, v := range req.Values {
			conds = append(conds, "EXISTS (SELECT 1 FROM OPENJSON("+quotedColumn+") WHERE value = ?)")
			if s, ok := v.(string); ok {
				vars = append(vars, s)
			} else {
				vars = append(vars, encoded[idx])
			}
		}
	default:
		// mysql, mariadb and unknown drivers
		for idx := range req.Values {
			conds = append(conds, "JSON_CONTAINS("+quotedColumn+", ?)")
			vars = append(vars, encoded[idx])
		}
	}

	return Fragment{SQL: orJoin(conds), Vars: vars}, nil
}

// IsScalar reports whether v can be an element of a JSON any-of value set
func IsScalar(v interface{}) bool {
	switch v.(type) {
	case nil, string, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}

// sqliteNumber keeps integers out of range for int64 bindable, sqlite reads them back as reals
func sqliteNumber(v interface{}) interface{} {
	switch n := v.(type) {
	case uint64:
		if n > math.MaxInt64 {
			return float64(n)
		}
	case uint:
		if uint64(n) > math.MaxInt64 {
			return float64(n)
		}
	}
	return v
}

func encodeAll(values []interface{}) ([]string, error) {
	encoded := make([]string, len(values))
	for idx, v := range values {
		if !IsScalar(v) {
			return nil, invalidArgument("values[%d] is %T, not a JSON scalar", idx, v)
		}

		s, err := encodeScalar(v)
		if err != nil {
			return nil, invalidArgument("values[%d]: %v", idx, err)
		}
		encoded[idx] = s
	}
	return encoded, nil
}

func encodeScalar(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
