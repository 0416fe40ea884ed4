package clause

import (
	"fmt"
	"strings"

	"github.com/go-gorm/wherex/predicate"
)

// Like `%pattern%` substring match compiled for the builder's dialect
//
//	clause.Like{Column: "name", Pattern: "jane"}
//	// postgres: "name" ILIKE $1
//	// mysql:    LOWER(`name`) LIKE ?
type Like struct {
	Column          interface{}
	Pattern         string
	CaseSensitive   bool
	EscapeWildcards bool
}

func (like Like) Build(builder Builder) {
	name, raw := columnName(like.Column)
	req := predicate.LikeRequest{
		Column:          name,
		Pattern:         like.Pattern,
		CaseSensitive:   like.CaseSensitive,
		EscapeWildcards: like.EscapeWildcards,
	}

	if !raw {
		if err := req.Validate(); err != nil {
			builder.AddError(err)
			Expr{SQL: predicate.False.SQL}.Build(builder)
			return
		}
	}

	buildFragment(builder, predicate.CompileLike(req, builder.Dialect(), quoteColumn(builder, like.Column)))
}

// JSONContainsAny matches rows whose JSON array column contains any of Values,
// an empty Values never matches
type JSONContainsAny struct {
	Column interface{}
	Values []interface{}
}

func (json JSONContainsAny) Build(builder Builder) {
	name, raw := columnName(json.Column)
	req := predicate.JSONAnyRequest{Column: name, Values: json.Values}

	var err error
	if !raw {
		err = req.Validate()
	}

	var fragment predicate.Fragment
	if err == nil {
		fragment, err = predicate.CompileJSONAny(req, builder.Dialect(), quoteColumn(builder, json.Column))
	}

	if err != nil {
		builder.AddError(err)
		fragment = predicate.False
	}

	buildFragment(builder, fragment)
}

func buildFragment(builder Builder, fragment predicate.Fragment) {
	Expr{SQL: fragment.SQL, Vars: fragment.Vars}.Build(builder)
}

// quoteColumn escapes question marks of raw columns, e.g. data->>'a?', so they aren't read as placeholders
func quoteColumn(builder Builder, column interface{}) string {
	return strings.ReplaceAll(builder.Quote(column), "?", "??")
}

func columnName(column interface{}) (name string, raw bool) {
	switch v := column.(type) {
	case string:
		return v, false
	case Column:
		return v.String(), v.Raw
	default:
		return fmt.Sprint(v), false
	}
}
