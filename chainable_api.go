package wherex

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-gorm/wherex/clause"
	"github.com/go-gorm/wherex/logger"
	"github.com/go-gorm/wherex/predicate"
)

// Model specify the model you would like to query, the table name is derived from it
//
//	// SELECT * FROM `products`
//	db.Model(&Product{}).Find(&results)
func (db *DB) Model(value interface{}) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.Model = value
	return
}

// Table specify the table you would like to query
func (db *DB) Table(name string) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.Table = name
	return
}

// Select specify fields that you want when querying
func (db *DB) Select(columns ...string) (tx *DB) {
	tx = db.getInstance()

	if len(columns) == 1 && strings.ContainsRune(columns[0], ',') {
		columns = strings.FieldsFunc(columns[0], func(c rune) bool { return c == ',' })
		for idx, column := range columns {
			columns[idx] = strings.TrimSpace(column)
		}
	}
	tx.Statement.Selects = columns
	return
}

// Where add conditions
//
//	db.Where("price > ?", 10)
//	db.Where(map[string]interface{}{"category": "books"})
//	db.Where(clause.Like{Column: "name", Pattern: "jane"})
func (db *DB) Where(query interface{}, args ...interface{}) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.AddWhere(false, tx.Statement.BuildCondition(query, args...)...)
	return
}

// Not add NOT conditions
func (db *DB) Not(query interface{}, args ...interface{}) (tx *DB) {
	tx = db.getInstance()
	if conds := tx.Statement.BuildCondition(query, args...); len(conds) > 0 {
		tx.Statement.AddWhere(false, clause.Not(conds...))
	}
	return
}

// Or add OR conditions
func (db *DB) Or(query interface{}, args ...interface{}) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.AddWhere(true, tx.Statement.BuildCondition(query, args...)...)
	return
}

// LikeOption tunes a WhereLike condition
type LikeOption func(*predicate.LikeRequest)

// CaseSensitive matches the pattern with the column's case as is
func CaseSensitive() LikeOption {
	return func(req *predicate.LikeRequest) { req.CaseSensitive = true }
}

// EscapeWildcards matches `%`, `_` and `\` in the pattern literally
func EscapeWildcards() LikeOption {
	return func(req *predicate.LikeRequest) { req.EscapeWildcards = true }
}

// WhereLike add a `%pattern%` condition, case insensitive unless CaseSensitive is given
//
//	// postgres: SELECT * FROM "users" WHERE "name" ILIKE $1
//	db.Table("users").WhereLike("name", "jane")
func (db *DB) WhereLike(column, pattern string, opts ...LikeOption) (tx *DB) {
	return db.Like(likeRequest(column, pattern, false, opts))
}

// OrWhereLike add a `%pattern%` condition joined with OR
func (db *DB) OrWhereLike(column, pattern string, opts ...LikeOption) (tx *DB) {
	return db.Like(likeRequest(column, pattern, true, opts))
}

func likeRequest(column, pattern string, disjunctive bool, opts []LikeOption) predicate.LikeRequest {
	req := predicate.LikeRequest{Column: column, Pattern: pattern, Disjunctive: disjunctive}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

// Like add the condition described by req
func (db *DB) Like(req predicate.LikeRequest) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.AddWhere(req.Disjunctive, clause.Like{
		Column:          req.Column,
		Pattern:         req.Pattern,
		CaseSensitive:   req.CaseSensitive,
		EscapeWildcards: req.EscapeWildcards,
	})
	return
}

// WhereJSONContainsAny add a condition matching rows whose JSON array column holds any of values,
// a single slice argument is expanded
//
//	db.Table("products").WhereJSONContainsAny("tags", "electronics", "books")
//	db.Table("products").WhereJSONContainsAny("tags", []string{"electronics", "books"})
func (db *DB) WhereJSONContainsAny(column string, values ...interface{}) (tx *DB) {
	return db.JSONContainsAny(predicate.JSONAnyRequest{Column: column, Values: expandValues(values)})
}

// OrWhereJSONContainsAny add a JSON contains any condition joined with OR
func (db *DB) OrWhereJSONContainsAny(column string, values ...interface{}) (tx *DB) {
	return db.JSONContainsAny(predicate.JSONAnyRequest{Column: column, Values: expandValues(values), Disjunctive: true})
}

// JSONContainsAny add the condition described by req
func (db *DB) JSONContainsAny(req predicate.JSONAnyRequest) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.AddWhere(req.Disjunctive, clause.JSONContainsAny{Column: req.Column, Values: req.Values})
	return
}

func expandValues(values []interface{}) []interface{} {
	if len(values) != 1 || values[0] == nil {
		return values
	}

	switch v := values[0].(type) {
	case []byte, string:
		return values
	case []interface{}:
		return v
	}

	rv := reflect.ValueOf(values[0])
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return values
	}

	expanded := make([]interface{}, rv.Len())
	for i := range expanded {
		expanded[i] = rv.Index(i).Interface()
	}
	return expanded
}

// Order specify order when retrieve records from database
//
//	db.Order("name DESC")
func (db *DB) Order(value interface{}) (tx *DB) {
	tx = db.getInstance()

	switch v := value.(type) {
	case string:
		tx.Statement.Orders = append(tx.Statement.Orders, v)
	case clause.Column:
		tx.Statement.Orders = append(tx.Statement.Orders, tx.Statement.Quote(v))
	default:
		tx.AddError(fmt.Errorf("unsupported order %v", value))
	}
	return
}

// Limit specify the number of records to be retrieved, a negative limit removes it
func (db *DB) Limit(limit int) (tx *DB) {
	tx = db.getInstance()
	if limit < 0 {
		tx.Statement.Limit = nil
	} else {
		tx.Statement.Limit = &limit
	}
	return
}

// Scopes pass current database connection to arguments `func(DB) DB`, which could be used to add conditions dynamically
//
//	func Tagged(tags ...interface{}) func(*wherex.DB) *wherex.DB {
//		return func(db *wherex.DB) *wherex.DB {
//			return db.WhereJSONContainsAny("tags", tags...)
//		}
//	}
//
//	db.Scopes(Tagged("electronics", "books")).Find(&products)
func (db *DB) Scopes(funcs ...func(*DB) *DB) *DB {
	for _, f := range funcs {
		db = f(db)
	}
	return db
}

// WithContext change current instance db's context to ctx
func (db *DB) WithContext(ctx context.Context) (tx *DB) {
	tx = db.getInstance()
	tx.Statement.Context = ctx
	return
}

// Debug start debug mode
func (db *DB) Debug() (tx *DB) {
	tx = db.getInstance()
	config := *tx.Config
	config.Logger = config.Logger.LogMode(logger.Info)
	tx.Config = &config
	return
}
