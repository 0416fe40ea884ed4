package logger

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const tmFmt = "2006-01-02 15:04:05.999"

func isPrintable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// ExplainSQL inlines vars into sql for logging, never execute the result.
//
// numericPlaceholder matches numbered placeholders like $1 or @p1 and
// captures the 1 based index, nil means `?` placeholders.
func ExplainSQL(sql string, numericPlaceholder *regexp.Regexp, escaper string, vars ...interface{}) string {
	quote := func(s string) string {
		return escaper + strings.ReplaceAll(s, escaper, escaper+escaper) + escaper
	}

	values := make([]string, len(vars))
	for idx, v := range vars {
		if valuer, ok := v.(driver.Valuer); ok {
			v, _ = valuer.Value()
		}

		switch v := v.(type) {
		case nil:
			values[idx] = "NULL"
		case bool:
			values[idx] = strconv.FormatBool(v)
		case time.Time:
			values[idx] = quote(v.Format(tmFmt))
		case *time.Time:
			if v == nil {
				values[idx] = "NULL"
			} else {
				values[idx] = quote(v.Format(tmFmt))
			}
		case []byte:
			if s := string(v); isPrintable(s) {
				values[idx] = quote(s)
			} else {
				values[idx] = quote("<binary>")
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			values[idx] = fmt.Sprintf("%d", v)
		case float32:
			values[idx] = strconv.FormatFloat(float64(v), 'f', -1, 32)
		case float64:
			values[idx] = strconv.FormatFloat(v, 'f', -1, 64)
		case string:
			values[idx] = quote(v)
		default:
			values[idx] = quote(fmt.Sprint(v))
		}
	}

	if numericPlaceholder == nil {
		var (
			builder strings.Builder
			idx     int
		)
		for i := 0; i < len(sql); i++ {
			if sql[i] == '?' && idx < len(values) {
				builder.WriteString(values[idx])
				idx++
				continue
			}
			builder.WriteByte(sql[i])
		}
		return builder.String()
	}

	return numericPlaceholder.ReplaceAllStringFunc(sql, func(placeholder string) string {
		match := numericPlaceholder.FindStringSubmatch(placeholder)
		if len(match) < 2 {
			return placeholder
		}

		n, err := strconv.Atoi(match[1])
		if err != nil || n < 1 || n > len(values) {
			return placeholder
		}
		return values[n-1]
	})
}
