package clause_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-gorm/wherex"
	"github.com/go-gorm/wherex/clause"
	"github.com/go-gorm/wherex/dialect"
	"github.com/go-gorm/wherex/logger"
	"github.com/go-gorm/wherex/predicate"
)

func newStatement(d dialect.Dialect) *wherex.Statement {
	return &wherex.Statement{DB: wherex.ForDialect(d, &wherex.Config{Logger: logger.Discard})}
}

func checkBuild(t *testing.T, d dialect.Dialect, expr clause.Expression, sql string, vars []interface{}) {
	t.Helper()

	stmt := newStatement(d)
	expr.Build(stmt)
	assert.NoError(t, stmt.DB.Error)
	assert.Equal(t, sql, stmt.SQL.String())
	assert.Equal(t, vars, stmt.Vars)
}

func TestExpr(t *testing.T) {
	results := []struct {
		Expr clause.Expression
		SQL  string
		Vars []interface{}
	}{
		{clause.Expr{SQL: "price > ?", Vars: []interface{}{10}}, "price > $1", []interface{}{10}},
		{clause.Expr{SQL: "tags ??| array[?, ?]", Vars: []interface{}{"a", "b"}}, "tags ?| array[$1, $2]", []interface{}{"a", "b"}},
		{clause.Expr{SQL: "id IN (?)", Vars: []interface{}{[]int{1, 2, 3}}}, "id IN ($1,$2,$3)", []interface{}{1, 2, 3}},
		{clause.Expr{SQL: "id IN (?)", Vars: []interface{}{[]int{}}}, "id IN (NULL)", nil},
		{clause.Expr{SQL: "? = ?", Vars: []interface{}{clause.Column{Name: "a"}}}, `"a" = ?`, nil},
	}

	for idx, result := range results {
		stmt := newStatement(dialect.PostgreSQL)
		result.Expr.Build(stmt)
		assert.Equal(t, result.SQL, stmt.SQL.String(), "#%d", idx)
		assert.Equal(t, result.Vars, stmt.Vars, "#%d", idx)
	}
}

func TestWhere(t *testing.T) {
	results := []struct {
		Where clause.Where
		SQL   string
		Vars  []interface{}
	}{
		{
			clause.Where{Exprs: []clause.Expression{clause.Eq{Column: "id", Value: 1}, clause.Gt{Column: "age", Value: 18}, clause.Or(clause.Neq{Column: "name", Value: "jinzhu"})}},
			"`id` = ? AND `age` > ? OR `name` <> ?",
			[]interface{}{1, 18, "jinzhu"},
		},
		{
			clause.Where{Exprs: []clause.Expression{clause.Or(clause.Neq{Column: "name", Value: "jinzhu"}), clause.Eq{Column: "id", Value: 1}}},
			"`id` = ? OR `name` <> ?",
			[]interface{}{1, "jinzhu"},
		},
		{
			clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "a = ? OR b = ?", Vars: []interface{}{1, 2}}, clause.Lt{Column: "c", Value: 3}}},
			"(a = ? OR b = ?) AND `c` < ?",
			[]interface{}{1, 2, 3},
		},
		{
			clause.Where{Exprs: []clause.Expression{clause.Not(clause.Eq{Column: "id", Value: 1}, clause.IN{Column: "role", Values: []interface{}{"a", "b"}})}},
			"(`id` <> ? AND `role` NOT IN (?,?))",
			[]interface{}{1, "a", "b"},
		},
		{
			clause.Where{Exprs: []clause.Expression{clause.And(clause.Gte{Column: "age", Value: 18}, clause.Lte{Column: "age", Value: 65})}},
			"(`age` >= ? AND `age` <= ?)",
			[]interface{}{18, 65},
		},
		{
			clause.Where{Exprs: []clause.Expression{clause.Not(clause.Expr{SQL: "a = 1 OR b = 2"})}},
			"NOT (a = 1 OR b = 2)",
			nil,
		},
		{
			clause.Where{Exprs: []clause.Expression{clause.Eq{Column: "deleted_at", Value: nil}, clause.IN{Column: "id"}}},
			"`deleted_at` IS NULL AND `id` IN (NULL)",
			nil,
		},
	}

	for idx, result := range results {
		stmt := newStatement(dialect.MySQL)
		result.Where.Build(stmt)
		assert.Equal(t, result.SQL, stmt.SQL.String(), "#%d", idx)
		assert.Equal(t, result.Vars, stmt.Vars, "#%d", idx)
	}
}

func TestMergeWhere(t *testing.T) {
	where := clause.Where{Exprs: []clause.Expression{clause.Eq{Column: "a", Value: 1}}}
	merged := where.MergeWhere(clause.Where{Exprs: []clause.Expression{clause.Eq{Column: "b", Value: 2}}})

	assert.Len(t, where.Exprs, 1)
	checkBuild(t, dialect.SQLite, merged, "`a` = ? AND `b` = ?", []interface{}{1, 2})
}

func TestLike(t *testing.T) {
	checkBuild(t, dialect.PostgreSQL, clause.Like{Column: "name", Pattern: "jane"}, `"name" ILIKE $1`, []interface{}{"%jane%"})
	checkBuild(t, dialect.MySQL, clause.Like{Column: clause.Column{Table: "users", Name: "name"}, Pattern: "JaNe"}, "LOWER(`users`.`name`) LIKE ?", []interface{}{"%jane%"})
	checkBuild(t, dialect.SQLServer, clause.Like{Column: "code", Pattern: "a%", EscapeWildcards: true, CaseSensitive: true}, `[code] LIKE @p1 ESCAPE '\'`, []interface{}{`%a\%%`})
	checkBuild(t, dialect.SQLite, clause.Like{Column: clause.Column{Name: "first || last", Raw: true}, Pattern: "x"}, `LOWER(first || last) LIKE ?`, []interface{}{"%x%"})
	checkBuild(t, dialect.MySQL, clause.Not(clause.Like{Column: "name", Pattern: "x"}), "NOT LOWER(`name`) LIKE ?", []interface{}{"%x%"})
	checkBuild(t, dialect.PostgreSQL, clause.Like{Column: clause.Column{Name: "data->>'a?'", Raw: true}, Pattern: "x"}, `data->>'a?' ILIKE $1`, []interface{}{"%x%"})
	checkBuild(t, dialect.MySQL, clause.Like{Column: clause.Column{Name: "data->>'$.a?'", Raw: true}, Pattern: "X"}, "LOWER(data->>'$.a?') LIKE ?", []interface{}{"%x%"})
}

func TestJSONContainsAny(t *testing.T) {
	checkBuild(t, dialect.PostgreSQL, clause.JSONContainsAny{Column: "tags", Values: []interface{}{"a", 1}},
		`("tags"::jsonb ?| array[$1, $2]::text[])`, []interface{}{"a", "1"})
	checkBuild(t, dialect.MySQL, clause.JSONContainsAny{Column: "tags", Values: []interface{}{"a"}},
		"(JSON_CONTAINS(`tags`, ?))", []interface{}{`"a"`})
	checkBuild(t, dialect.SQLServer, clause.JSONContainsAny{Column: "tags", Values: []interface{}{false}},
		"(EXISTS (SELECT 1 FROM OPENJSON([tags]) WHERE value = @p1))", []interface{}{"false"})
	checkBuild(t, dialect.SQLite, clause.JSONContainsAny{Column: "tags"}, "1 = 0", nil)
	checkBuild(t, dialect.PostgreSQL, clause.JSONContainsAny{Column: clause.Column{Name: "data->'tags?'", Raw: true}, Values: []interface{}{"a"}},
		`(data->'tags?'::jsonb ?| array[$1]::text[])`, []interface{}{"a"})
}

func TestInvalidPredicates(t *testing.T) {
	tests := []clause.Expression{
		clause.Like{Column: "name) OR (1=1", Pattern: "x"},
		clause.JSONContainsAny{Column: "tags", Values: []interface{}{[]string{"nested"}}},
		clause.JSONContainsAny{Column: "", Values: []interface{}{"a"}},
	}

	for idx, expr := range tests {
		stmt := newStatement(dialect.MySQL)
		expr.Build(stmt)
		assert.True(t, errors.Is(stmt.DB.Error, predicate.ErrInvalidArgument), "#%d: %v", idx, stmt.DB.Error)
		assert.Equal(t, "1 = 0", stmt.SQL.String(), "#%d", idx)
		assert.Empty(t, stmt.Vars, "#%d", idx)
	}
}
