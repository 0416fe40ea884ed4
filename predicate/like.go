package predicate

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/go-gorm/wherex/dialect"
)

const likeEscapeClause = ` ESCAPE '\'`

// CompileLike compiles a `%pattern%` substring match against quotedColumn.
//
//	CompileLike(LikeRequest{Pattern: "jane"}, dialect.PostgreSQL, `"name"`)
//	// {SQL: `"name" ILIKE ?`, Vars: ["%jane%"]}
//
// The pattern is always bound, never written into SQL. SQLite's LOWER and LIKE
// only fold ASCII letters, so on SQLite the pattern is folded the same way and
// non-ASCII letters match in their exact case only.
func CompileLike(req LikeRequest, d dialect.Dialect, quotedColumn string) Fragment {
	pattern := req.Pattern
	if req.EscapeWildcards {
		pattern = EscapeLike(pattern)
	}
	searchValue := "%" + pattern + "%"

	// sqlite and sql server have no default escape character
	var escape string
	if req.EscapeWildcards && (d == dialect.SQLite || d == dialect.SQLServer) {
		escape = likeEscapeClause
	}

	if req.CaseSensitive {
		switch d {
		case dialect.MySQL:
			return Fragment{SQL: quotedColumn + " LIKE BINARY ?", Vars: []interface{}{searchValue}}
		case dialect.SQLite:
			return Fragment{SQL: quotedColumn + " LIKE ? COLLATE BINARY" + escape, Vars: []interface{}{searchValue}}
		case dialect.PostgreSQL, dialect.SQLServer:
			return Fragment{SQL: quotedColumn + " LIKE ?" + escape, Vars: []interface{}{searchValue}}
		default:
			return Fragment{SQL: quotedColumn + " LIKE ?", Vars: []interface{}{searchValue}}
		}
	}

	switch d {
	case dialect.PostgreSQL:
		return Fragment{SQL: quotedColumn + " ILIKE ?", Vars: []interface{}{searchValue}}
	case dialect.SQLite:
		return Fragment{SQL: "LOWER(" + quotedColumn + ") LIKE ?" + escape, Vars: []interface{}{lowerASCII(searchValue)}}
	case dialect.MySQL, dialect.SQLServer:
		return Fragment{SQL: "LOWER(" + quotedColumn + ") LIKE ?" + escape, Vars: []interface{}{lower(searchValue)}}
	default:
		return Fragment{SQL: "LOWER(" + quotedColumn + ") LIKE ?", Vars: []interface{}{lower(searchValue)}}
	}
}

// a Caser is stateful, don't share it between calls
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + 'a' - 'A'
		}
		return r
	}, s)
}
