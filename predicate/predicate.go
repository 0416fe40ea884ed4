// Package predicate compiles substring and JSON-array membership predicates
// into dialect specific SQL fragments.
//
// Compilation is pure: it performs no I/O, keeps no state and is safe for
// concurrent use. Identifier quoting and dialect discovery are left to the
// caller, see package dialect.
package predicate

import (
	"regexp"
	"strings"
)

// Fragment a boolean sql expression plus its bound values.
//
// A single `?` is a positional placeholder, `??` is a literal question mark.
// Vars are aligned with placeholders in order of appearance.
type Fragment struct {
	SQL  string
	Vars []interface{}
}

// False the fragment compiled for an empty value set
var False = Fragment{SQL: "1 = 0"}

// Placeholders returns the number of positional placeholders in SQL
func (f Fragment) Placeholders() (n int) {
	for i := 0; i < len(f.SQL); i++ {
		if f.SQL[i] == '?' {
			if i+1 < len(f.SQL) && f.SQL[i+1] == '?' {
				i++
				continue
			}
			n++
		}
	}
	return
}

// LikeRequest substring search on a single column
type LikeRequest struct {
	Column          string
	Pattern         string
	CaseSensitive   bool
	EscapeWildcards bool
	// Disjunctive joins the predicate with OR instead of AND, it is handled by the host builder
	Disjunctive bool
}

// Validate checks the column identifier
func (req LikeRequest) Validate() error {
	return validateColumn(req.Column)
}

// JSONAnyRequest matches rows whose JSON array column contains any of Values
type JSONAnyRequest struct {
	Column      string
	Values      []interface{}
	Disjunctive bool
}

// Validate checks the column identifier and that every value is a JSON scalar
func (req JSONAnyRequest) Validate() error {
	if err := validateColumn(req.Column); err != nil {
		return err
	}
	_, err := encodeAll(req.Values)
	return err
}

var columnRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*)*$`)

// ValidColumn reports whether name is an identifier, optionally dot-qualified
func ValidColumn(name string) bool {
	return columnRegexp.MatchString(name)
}

func validateColumn(name string) error {
	if !ValidColumn(name) {
		return invalidArgument("invalid column name %q", name)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards with a backslash, backslash itself first
func EscapeLike(pattern string) string {
	return likeEscaper.Replace(pattern)
}

func orJoin(conds []string) string {
	return "(" + strings.Join(conds, " OR ") + ")"
}
